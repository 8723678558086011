package user

import (
	"fmt"

	domain "paginated-user-service/internal/domain/user"
)

// SeedCount is the number of records written by one seeding run.
const SeedCount = 100

// SeedMessage is returned to clients after a successful seeding run.
const SeedMessage = "Dummy users inserted!"

// GenerateSeedUsers builds the deterministic synthetic user set, numbered 1..SeedCount.
func GenerateSeedUsers() []domain.User {
	users := make([]domain.User, 0, SeedCount)
	for i := 1; i <= SeedCount; i++ {
		users = append(users, domain.User{
			Name:  fmt.Sprintf("Yopmail User %d", i),
			Email: fmt.Sprintf("user%d@yopmail.com", i),
			Age:   20 + (i % 10),
		})
	}
	return users
}
