package users

import (
	"context"

	"github.com/antonk9218/paybuddy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	UpdatePassword(ctx context.Context, email string, hashed string) error
}
