package transactions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/antonk9218/paybuddy/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const createQuery = `(?s)^INSERT\s+INTO\s+transactions\s*\(sender_id,\s*receiver_id,\s*description,\s*amount,\s*fee_percent\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(createQuery).
		WithArgs(int64(1), int64(2), "lunch", decimal.RequireFromString("12.50"), models.DefaultFeePercent).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	tx := &models.Transaction{
		SenderID:    1,
		ReceiverID:  2,
		Description: "lunch",
		Amount:      decimal.RequireFromString("12.50"),
		FeePercent:  models.DefaultFeePercent,
	}
	got, err := repo.Create(context.Background(), tx)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("unexpected transaction: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(createQuery).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Transaction{
		SenderID:   1,
		ReceiverID: 2,
		Amount:     decimal.NewFromInt(1),
		FeePercent: models.DefaultFeePercent,
	})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetBySender(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*sender_id,\s*receiver_id,\s*description,\s*amount,\s*fee_percent\s+FROM\s+transactions\s+WHERE\s+sender_id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "description", "amount", "fee_percent"}).
		AddRow(7, 1, 2, "lunch", "12.50", "0.50")
	mock.ExpectQuery(q).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	got, err := repo.GetBySender(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetBySender error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 transaction, got %d", len(got))
	}
	if !got[0].Amount.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("unexpected amount: %s", got[0].Amount)
	}
}

func TestGetAll_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*sender_id,\s*receiver_id,\s*description,\s*amount,\s*fee_percent\s+FROM\s+transactions\s*$`

	mock.ExpectQuery(q).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "description", "amount", "fee_percent"}))

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty result, got %+v", got)
	}
}
