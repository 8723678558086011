package user

// SeedUsersResponse represents the result of a seeding run.
type SeedUsersResponse struct {
	Inserted int64
	Message  string
}

// ListUsersRequest represents the request payload for listing users.
// Page and Limit are coerced to their defaults when not positive.
type ListUsersRequest struct {
	Page  int64
	Limit int64
}

// ListUsersResponse represents one page of users plus totals.
type ListUsersResponse struct {
	TotalUsers  int64
	TotalPages  int64
	CurrentPage int64
	Users       []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID    string
	Name  string
	Email string
	Age   int
}
