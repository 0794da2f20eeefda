package service

import (
	"context"

	"go-gin-blog/internal/domain"
)

// UserAuthorResolver resolves authors against the users table.
type UserAuthorResolver struct {
	users domain.UserRepository
}

func NewAuthorResolver(users domain.UserRepository) *UserAuthorResolver {
	return &UserAuthorResolver{users: users}
}

var _ domain.AuthorResolver = (*UserAuthorResolver)(nil)

func (r *UserAuthorResolver) ResolveByEmail(ctx context.Context, email string) (string, error) {
	u, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.ID, nil
}
