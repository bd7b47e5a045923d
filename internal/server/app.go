// Package server initializes and runs the Cortex server: it loads
// configuration, opens the database, applies migrations, wires services to
// repositories, and starts the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cortex-chat/cortex-server/internal/logging"
	"github.com/cortex-chat/cortex-server/internal/server/config"
	"github.com/cortex-chat/cortex-server/internal/server/httpapi"
	"github.com/cortex-chat/cortex-server/internal/server/repositories/repomanager"
	"github.com/cortex-chat/cortex-server/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	userService := services.NewUserService(db, rm, cfg)
	keysService := services.NewKeysService(db, rm)
	noteService := services.NewNoteService(db, rm)
	folderService := services.NewFolderService(db, rm)
	promptService := services.NewPromptService(db, rm)
	chatService := services.NewChatService(db, rm)
	credentialService := services.NewCredentialService(db, rm)

	server := httpapi.NewServer(cfg, logger,
		userService, keysService, noteService, folderService,
		promptService, chatService, credentialService)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server error", "error", err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
