package testfixtures

import (
	"context"

	"roompla/internal/model"
	"roompla/internal/repository"
)

// Users is an in-memory implementation of auth.UserSource keyed by user ID.
type Users map[string]*model.User

func (u Users) FindByID(ctx context.Context, id string) (*model.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}
