package connections

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/antonk9218/paybuddy/internal/common"
	"github.com/antonk9218/paybuddy/internal/dbx"
	"github.com/antonk9218/paybuddy/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, conn *models.Connection) error {

	query :=
		`INSERT INTO connections (user_id, connection_id)
         VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, conn.UserID, conn.ConnectionID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.AlreadyExistsf("connection between %d and %d", conn.UserID, conn.ConnectionID)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, connectionID int64) error {
	query :=
		`DELETE FROM connections
		 WHERE user_id = $1 AND connection_id = $2
		 `

	result, err := r.db.ExecContext(ctx, query, userID, connectionID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.NotFoundf("connection between %d and %d", userID, connectionID)
	}

	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, connectionID int64) (bool, error) {
	query :=
		`SELECT EXISTS (
		    SELECT 1 FROM connections WHERE user_id = $1 AND connection_id = $2
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, connectionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Connection, error) {
	query :=
		`SELECT user_id, connection_id FROM connections
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Connection
	for rows.Next() {
		conn := &models.Connection{}
		if err := rows.Scan(&conn.UserID, &conn.ConnectionID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, conn)
	}

	return result, rows.Err()
}
