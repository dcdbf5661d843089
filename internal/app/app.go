package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"omnichat/backend/internal/api"
	"omnichat/backend/internal/config"
	"omnichat/backend/internal/database"
	"omnichat/backend/internal/model"
	"omnichat/backend/internal/repository"
	"omnichat/backend/internal/service"
	"omnichat/backend/internal/store"
	"omnichat/backend/internal/upstream"
)

// App wires the whole service together: config, storage, the in-memory
// conversation store hydrated from disk, and the HTTP surface.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Server *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	setupLogger(cfg.LogLevel)

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.")

	repo := repository.NewSQLiteRepository(db)
	client := upstream.NewClient(cfg.UpstreamURL)

	st := store.New()
	if err := hydrateStore(context.Background(), st, repo); err != nil {
		slog.Warn("Failed to hydrate conversation store, starting empty.", "error", err)
	}
	slog.Info("Conversation store ready.", "conversations", st.Len())

	errState := service.NewErrorState()
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	selectionService := service.NewSelectionService(repo)
	if err := selectionService.Init(context.Background(), cfg.DefaultProvider); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize selection: %w", err)
	}

	credentialService := service.NewCredentialService(repo, client)
	if err := credentialService.Load(context.Background()); err != nil {
		slog.Warn("Failed to load stored credential.", "error", err)
	}

	chatService := service.NewChatService(st, repo, client, selectionService, credentialService, errState, cfg.DefaultProvider, timeout)
	uploadService := service.NewUploadService(st, repo, client, selectionService, errState, timeout)

	chatHandler := api.NewChatHandler(chatService)
	settingsHandler := api.NewSettingsHandler(selectionService, credentialService)
	uploadHandler := api.NewUploadHandler(uploadService, cfg.UploadMaxBytes)
	router := api.NewRouter(chatHandler, settingsHandler, uploadHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &App{Config: cfg, DB: db, Server: server}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to build application", "error", err)
		return 1
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	logConfigSource()

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

// hydrateStore loads the persisted conversations into the in-memory store.
// The repository lists most-recent-first and the store inserts at the back,
// so the ordering survives the round trip. No conversation becomes active.
func hydrateStore(ctx context.Context, st *store.Store, repo repository.Repository) error {
	conversations, err := repo.ListConversations(ctx)
	if err != nil {
		return err
	}
	for _, conv := range conversations {
		messages, err := repo.GetMessages(ctx, conv.ID)
		if err != nil {
			return err
		}
		full := model.FullConversation{Conversation: conv, Messages: messages}
		if err := st.Insert(full); err != nil {
			return err
		}
	}
	return nil
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
