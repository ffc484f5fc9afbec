package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/antonk9218/paybuddy/internal/common"
	"github.com/antonk9218/paybuddy/internal/dbx"
	"github.com/antonk9218/paybuddy/internal/server/models"
	"github.com/antonk9218/paybuddy/internal/server/repositories/repomanager"
	"github.com/antonk9218/paybuddy/internal/server/views"
)

// ConnectionService manages the directed may-pay edges between users.
// An edge from A to B authorizes A to send money to B; it says nothing
// about the reverse direction.
type ConnectionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewConnectionService constructs a ConnectionService.
func NewConnectionService(db *sql.DB, m repomanager.RepositoryManager) *ConnectionService {
	return &ConnectionService{db: db, repomanager: m}
}

// AddConnection creates the edge userID -> connectionID. Self-edges are
// rejected before any lookup; both endpoints must exist and the edge must
// not already be present.
func (s *ConnectionService) AddConnection(ctx context.Context, userID, connectionID int64) error {
	if userID == connectionID {
		return common.Validationf("cannot connect user %d to itself", userID)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		usersRepo := s.repomanager.Users(tx)
		if _, err := usersRepo.GetByID(ctx, userID); err != nil {
			return err
		}
		if _, err := usersRepo.GetByID(ctx, connectionID); err != nil {
			return err
		}

		connRepo := s.repomanager.Connections(tx)
		exists, err := connRepo.Exists(ctx, userID, connectionID)
		if err != nil {
			return fmt.Errorf("error checking connection: %w", err)
		}
		if exists {
			return common.AlreadyExistsf("connection between %d and %d", userID, connectionID)
		}
		return connRepo.Create(ctx, &models.Connection{UserID: userID, ConnectionID: connectionID})
	})
}

// RemoveConnection deletes the edge userID -> connectionID. Missing endpoint
// users and a missing edge are both not-found, with distinct messages; the
// reverse edge, if present, is untouched.
func (s *ConnectionService) RemoveConnection(ctx context.Context, userID, connectionID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		usersRepo := s.repomanager.Users(tx)
		if _, err := usersRepo.GetByID(ctx, userID); err != nil {
			return err
		}
		if _, err := usersRepo.GetByID(ctx, connectionID); err != nil {
			return err
		}
		return s.repomanager.Connections(tx).Delete(ctx, userID, connectionID)
	})
}

// ListConnections returns the enriched outgoing edges of userID: each edge
// carries the owner's username plus the counterparty's email and username.
// A counterparty row that cannot be resolved fails the listing with
// not-found; the FK on the edge table makes that unreachable in practice.
func (s *ConnectionService) ListConnections(ctx context.Context, userID int64) ([]views.Connection, error) {
	usersRepo := s.repomanager.Users(s.db)

	owner, err := usersRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edges, err := s.repomanager.Connections(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]views.Connection, 0, len(edges))
	for _, edge := range edges {
		friend, err := usersRepo.GetByID(ctx, edge.ConnectionID)
		if err != nil {
			return nil, err
		}
		result = append(result, views.Connection{
			UserID:         edge.UserID,
			ConnectionID:   edge.ConnectionID,
			MyUsername:     owner.Username,
			FriendEmail:    friend.Email,
			FriendUsername: friend.Username,
		})
	}
	return result, nil
}
