package connections

import (
	"context"

	"github.com/antonk9218/paybuddy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, conn *models.Connection) error
	Delete(ctx context.Context, userID, connectionID int64) error
	Exists(ctx context.Context, userID, connectionID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Connection, error)
}
