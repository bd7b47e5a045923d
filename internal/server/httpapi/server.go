// Package httpapi exposes the Cortex server's HTTP/JSON API over echo:
// route definitions, request/response shaping, and the access-control
// middleware resolving bearer tokens to users.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nrednav/cuid2"

	"github.com/cortex-chat/cortex-server/internal/logging"
	"github.com/cortex-chat/cortex-server/internal/server/config"
	"github.com/cortex-chat/cortex-server/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Server wires the echo engine to the service layer.
type Server struct {
	echo        *echo.Echo
	address     string
	logger      logging.Logger
	users       *services.UserService
	keys        *services.KeysService
	notes       *services.NoteService
	folders     *services.FolderService
	prompts     *services.PromptService
	chats       *services.ChatService
	credentials *services.CredentialService
}

// NewServer builds the echo engine with middlewares and routes registered.
func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	users *services.UserService,
	keys *services.KeysService,
	notes *services.NoteService,
	folders *services.FolderService,
	prompts *services.PromptService,
	chats *services.ChatService,
	credentials *services.CredentialService,
) *Server {
	s := &Server{
		echo:        echo.New(),
		address:     cfg.EndpointAddr,
		logger:      logger.With("module", "httpapi"),
		users:       users,
		keys:        keys,
		notes:       notes,
		folders:     folders,
		prompts:     prompts,
		chats:       chats,
		credentials: credentials,
	}

	e := s.echo
	e.HideBanner = true
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	e.Use(echoprometheus.NewMiddleware("cortex"))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.GET("/health", s.health)
	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", s.signup)
	authGroup.POST("/login", s.login)

	keys := api.Group("/user-keys", s.requireAuth)
	keys.GET("/check", s.checkUserKeys)
	keys.GET("", s.getUserKeys)
	keys.POST("", s.createUserKeys)
	keys.POST("/update", s.updateUserKeys)

	notes := api.Group("/notes", s.requireAuth)
	notes.GET("", s.listNotes)
	notes.GET("/:id", s.getNote)
	notes.POST("", s.createNote)
	notes.PUT("/:id", s.updateNote)
	notes.DELETE("/:id", s.deleteNote)

	folders := api.Group("/folders", s.requireAuth)
	folders.GET("", s.listFolders)
	folders.GET("/:id", s.getFolder)
	folders.POST("", s.createFolder)
	folders.PUT("/:id", s.updateFolder)
	folders.DELETE("/:id", s.deleteFolder)

	prompts := api.Group("/prompts", s.requireAuth)
	prompts.GET("", s.listPrompts)
	prompts.GET("/:id", s.getPrompt)
	prompts.POST("", s.createPrompt)
	prompts.PUT("/:id", s.updatePrompt)
	prompts.DELETE("/:id", s.deletePrompt)

	chats := api.Group("/chats", s.requireAuth)
	chats.GET("", s.listChats)
	chats.GET("/:id", s.getChat)
	chats.POST("/new", s.createChat)
	chats.PUT("/:id", s.updateChat)
	chats.DELETE("/:id", s.deleteChat)

	creds := api.Group("/credentials", s.requireAuth)
	creds.GET("", s.listCredentials)
	creds.POST("", s.createCredential)
	creds.POST("/:id", s.updateCredential)
	creds.DELETE("/:id", s.deleteCredential)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}
