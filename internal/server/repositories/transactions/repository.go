package transactions

import (
	"context"

	"github.com/antonk9218/paybuddy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	GetAll(ctx context.Context) ([]*models.Transaction, error)
	GetBySender(ctx context.Context, senderID int64) ([]*models.Transaction, error)
	GetByReceiver(ctx context.Context, receiverID int64) ([]*models.Transaction, error)
}
