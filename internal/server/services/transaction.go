package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/antonk9218/paybuddy/internal/common"
	"github.com/antonk9218/paybuddy/internal/dbx"
	"github.com/antonk9218/paybuddy/internal/server/models"
	"github.com/antonk9218/paybuddy/internal/server/repositories/repomanager"
	"github.com/antonk9218/paybuddy/internal/server/repositories/users"
	"github.com/antonk9218/paybuddy/internal/server/views"
)

// ReceiverRef identifies the receiver of a transfer either by user id or by
// email. Exactly one addressing mode is carried per value.
type ReceiverRef interface {
	resolve(ctx context.Context, repo users.Repository) (*models.User, error)
}

// ReceiverByID addresses the receiver by user id.
type ReceiverByID int64

// ReceiverByEmail addresses the receiver by email.
type ReceiverByEmail string

func (r ReceiverByID) resolve(ctx context.Context, repo users.Repository) (*models.User, error) {
	return repo.GetByID(ctx, int64(r))
}

func (r ReceiverByEmail) resolve(ctx context.Context, repo users.Repository) (*models.User, error) {
	return repo.GetByEmail(ctx, string(r))
}

// TransactionService records transfers between users and serves the enriched
// ledger projections. Recording a transfer never moves money; the ledger is
// an authorization-checked journal, and the stored fee percent is informational.
type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTransactionService constructs a TransactionService.
func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager) *TransactionService {
	return &TransactionService{db: db, repomanager: m}
}

// CreateTransaction records a transfer from senderID to the user addressed by
// receiver. Validation runs in a fixed order: sender existence, receiver
// existence, then the amount, which must be positive and fit the ledger's
// two-decimal scale. Descriptions longer than models.MaxDescriptionLength
// characters are truncated, and a nil feePercent falls back to
// models.DefaultFeePercent.
func (s *TransactionService) CreateTransaction(ctx context.Context, senderID int64, receiver ReceiverRef, description string, amount decimal.Decimal, feePercent *decimal.Decimal) (*models.Transaction, error) {
	var created *models.Transaction
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		usersRepo := s.repomanager.Users(tx)

		if _, err := usersRepo.GetByID(ctx, senderID); err != nil {
			return fmt.Errorf("sender: %w", err)
		}
		receiverUser, err := receiver.resolve(ctx, usersRepo)
		if err != nil {
			return fmt.Errorf("receiver: %w", err)
		}
		if !amount.IsPositive() {
			return common.Validationf("amount must be positive, got %s", amount)
		}
		if !amount.Equal(amount.Round(2)) {
			return common.Validationf("amount must have at most two decimal places, got %s", amount)
		}

		// character count, not bytes: a byte slice could split a rune
		if runes := []rune(description); len(runes) > models.MaxDescriptionLength {
			description = string(runes[:models.MaxDescriptionLength])
		}
		fee := models.DefaultFeePercent
		if feePercent != nil {
			fee = *feePercent
		}

		created, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			SenderID:    senderID,
			ReceiverID:  receiverUser.ID,
			Description: description,
			Amount:      amount,
			FeePercent:  fee,
		})
		return err
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// ListAll returns the whole ledger, enriched with receiver emails.
func (s *TransactionService) ListAll(ctx context.Context) ([]views.Transaction, error) {
	txs, err := s.repomanager.Transactions(s.db).GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, txs)
}

// ListBySender returns the transfers sent by senderID, enriched with
// receiver emails. The keyed user must exist.
func (s *TransactionService) ListBySender(ctx context.Context, senderID int64) ([]views.Transaction, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, senderID); err != nil {
		return nil, err
	}

	txs, err := s.repomanager.Transactions(s.db).GetBySender(ctx, senderID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, txs)
}

// ListByReceiver returns the transfers received by receiverID, enriched with
// receiver emails. The keyed user must exist.
func (s *TransactionService) ListByReceiver(ctx context.Context, receiverID int64) ([]views.Transaction, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	txs, err := s.repomanager.Transactions(s.db).GetByReceiver(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, txs)
}

// enrich resolves each row's receiver id to an email at read time. A receiver
// that no longer resolves is rendered as views.UnknownReceiver rather than
// failing the whole listing.
func (s *TransactionService) enrich(ctx context.Context, txs []*models.Transaction) ([]views.Transaction, error) {
	usersRepo := s.repomanager.Users(s.db)
	emails := make(map[int64]string)

	result := make([]views.Transaction, 0, len(txs))
	for _, tx := range txs {
		email, ok := emails[tx.ReceiverID]
		if !ok {
			receiver, err := usersRepo.GetByID(ctx, tx.ReceiverID)
			switch {
			case err == nil:
				email = receiver.Email
			case errors.Is(err, common.ErrNotFound):
				email = views.UnknownReceiver
			default:
				return nil, err
			}
			emails[tx.ReceiverID] = email
		}
		result = append(result, views.Transaction{
			ID:            tx.ID,
			SenderID:      tx.SenderID,
			ReceiverEmail: email,
			Description:   tx.Description,
			Amount:        tx.Amount,
			FeePercent:    tx.FeePercent,
		})
	}
	return result, nil
}
