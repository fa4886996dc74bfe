// Package server initializes and runs the backend: it opens the database,
// applies migrations, wires the auth layer, the services, and the HTTP API,
// and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/GTBioPortal/BioPortal-Backend/internal/logging"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/auth"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/blob"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/config"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/httpapi"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/password"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/repositories/repomanager"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	blobs, err := blob.NewS3Store(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	hasher := password.NewHasher()
	codec := auth.NewCodecWithTTL([]byte(cfg.SecretKey), cfg.TokenValidityDuration)

	accounts := services.NewAccountService(db, repos, hasher, codec, blobs, logger)
	postings := services.NewPostingService(db, repos, logger)
	applications := services.NewApplicationService(db, repos, logger)
	files := services.NewFileService(db, repos, blobs, logger)

	resolver := auth.NewResolver(codec, accounts)
	api := httpapi.NewServer(resolver, accounts, postings, applications, files, logger)

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		handler: api.Handler(),
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
	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing db", "error", err.Error())
	}
}
