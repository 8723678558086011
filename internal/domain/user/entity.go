package user

// User represents a user record in the system.
type User struct {
	ID    string // ID is the store-assigned identifier, rendered as text
	Name  string // Name is the display name of the user
	Email string // Email is expected to be unique by convention only
	Age   int    // Age in years
}
