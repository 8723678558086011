package user

import "context"

// UserUsecase defines the interface for user business logic operations.
type UserUsecase interface {
	SeedUsers(ctx context.Context) (*SeedUsersResponse, error)
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
}

var _ UserUsecase = (*Usecase)(nil)
