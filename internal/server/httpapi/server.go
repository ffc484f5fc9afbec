// Package httpapi exposes the service layer over HTTP/JSON. It is a pure
// translation layer: decode the request, call the service, encode the result
// or map the error to a status code.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/antonk9218/paybuddy/internal/logging"
	"github.com/antonk9218/paybuddy/internal/server/models"
	"github.com/antonk9218/paybuddy/internal/server/services"
	"github.com/antonk9218/paybuddy/internal/server/views"
)

// UserService is the slice of the user service the HTTP layer needs.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ChangePassword(ctx context.Context, email, currentPassword, newPassword, confirmPassword string) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindAll(ctx context.Context) ([]views.User, error)
	Profile(ctx context.Context, userID int64) (*views.User, error)
}

// ConnectionService is the slice of the connection service the HTTP layer needs.
type ConnectionService interface {
	AddConnection(ctx context.Context, userID, connectionID int64) error
	RemoveConnection(ctx context.Context, userID, connectionID int64) error
	ListConnections(ctx context.Context, userID int64) ([]views.Connection, error)
}

// TransactionService is the slice of the transaction service the HTTP layer needs.
type TransactionService interface {
	CreateTransaction(ctx context.Context, senderID int64, receiver services.ReceiverRef, description string, amount decimal.Decimal, feePercent *decimal.Decimal) (*models.Transaction, error)
	ListAll(ctx context.Context) ([]views.Transaction, error)
	ListBySender(ctx context.Context, senderID int64) ([]views.Transaction, error)
	ListByReceiver(ctx context.Context, receiverID int64) ([]views.Transaction, error)
}

// Server serves the public HTTP endpoint.
type Server struct {
	address      string
	logger       logging.Logger
	users        UserService
	connections  ConnectionService
	transactions TransactionService
	jwtSecret    []byte
}

// NewServer constructs an HTTP server bound to the given services.
func NewServer(address string, l logging.Logger, us UserService, cs ConnectionService, ts TransactionService, secretKey string) *Server {
	return &Server{
		address:      address,
		logger:       l.With("module", "http_server"),
		users:        us,
		connections:  cs,
		transactions: ts,
		jwtSecret:    []byte(secretKey),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Get("/users", s.handleListUsers)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/profile", s.handleProfile)
			r.Post("/profile/password", s.handleChangePassword)

			r.Post("/connections", s.handleAddConnection)
			r.Delete("/connections/{connectionID}", s.handleRemoveConnection)
			r.Get("/connections/{userID}", s.handleListConnections)

			r.Post("/transactions", s.handleCreateTransaction)
			r.Get("/transactions", s.handleListTransactions)
			r.Get("/transactions/sender/{id}", s.handleListTransactionsBySender)
			r.Get("/transactions/receiver/{id}", s.handleListTransactionsByReceiver)
		})
	})

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
