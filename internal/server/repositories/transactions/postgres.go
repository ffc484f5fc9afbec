package transactions

import (
	"context"
	"fmt"

	"github.com/antonk9218/paybuddy/internal/dbx"
	"github.com/antonk9218/paybuddy/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {

	query :=
		`INSERT INTO transactions (sender_id, receiver_id, description, amount, fee_percent)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		tx.SenderID, tx.ReceiverID, tx.Description, tx.Amount, tx.FeePercent).Scan(&tx.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tx, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Transaction, error) {
	query := `SELECT id, sender_id, receiver_id, description, amount, fee_percent FROM transactions`

	return r.query(ctx, query)
}

func (r *PostgresRepository) GetBySender(ctx context.Context, senderID int64) ([]*models.Transaction, error) {
	query :=
		`SELECT id, sender_id, receiver_id, description, amount, fee_percent FROM transactions
		 WHERE sender_id = $1
		 `

	return r.query(ctx, query, senderID)
}

func (r *PostgresRepository) GetByReceiver(ctx context.Context, receiverID int64) ([]*models.Transaction, error) {
	query :=
		`SELECT id, sender_id, receiver_id, description, amount, fee_percent FROM transactions
		 WHERE receiver_id = $1
		 `

	return r.query(ctx, query, receiverID)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		tx := &models.Transaction{}
		if err := rows.Scan(&tx.ID, &tx.SenderID, &tx.ReceiverID, &tx.Description, &tx.Amount, &tx.FeePercent); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, tx)
	}

	return result, rows.Err()
}
