// Package server initializes and runs the application server. It opens the
// database, runs migrations, wires the services, and starts the HTTP endpoint
// with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/antonk9218/paybuddy/internal/logging"
	"github.com/antonk9218/paybuddy/internal/server/config"
	"github.com/antonk9218/paybuddy/internal/server/hashing"
	"github.com/antonk9218/paybuddy/internal/server/httpapi"
	"github.com/antonk9218/paybuddy/internal/server/repositories/repomanager"
	"github.com/antonk9218/paybuddy/internal/server/services"
)

type App struct {
	config             *config.Config
	logger             logging.Logger
	db                 *sql.DB
	repomanager        repomanager.RepositoryManager
	userService        *services.UserService
	connectionService  *services.ConnectionService
	transactionService *services.TransactionService
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	hasher := hashing.NewBcryptHasher(cfg.BcryptCost)

	us := services.NewUserService(db, rm, hasher, cfg)
	cs := services.NewConnectionService(db, rm)
	ts := services.NewTransactionService(db, rm)

	return &App{
		config:             cfg,
		logger:             logger,
		db:                 db,
		repomanager:        rm,
		userService:        us,
		connectionService:  cs,
		transactionService: ts,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(
		app.config.EndpointAddrHTTP,
		app.logger,
		app.userService,
		app.connectionService,
		app.transactionService,
		app.config.SecretKey,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migration error", "error", err.Error())
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
