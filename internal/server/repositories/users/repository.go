// Package users provides persistence for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/projboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
