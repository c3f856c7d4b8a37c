package main

import (
	"context"
	"log"
	"time"

	"amana-travel/cmd"
	"amana-travel/internal/catalog"
	"amana-travel/internal/data/repository"
	"amana-travel/internal/session"
	"amana-travel/internal/wire"
	"amana-travel/pkg/database"
	"amana-travel/pkg/remote"
	"amana-travel/pkg/utils"

	"go.uber.org/zap"
)

const (
	restoreConcurrency = 8
	cleanupInterval    = time.Hour
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("remote_api", config.Remote.BaseURL),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	client := remote.NewClient(config.Remote, logger)
	sealer := utils.NewSealer(config.Session.Secret)

	// Initialize all repositories
	repos := repository.NewRepository(db, client, sealer, logger)
	if err := repos.Session.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to prepare session table", zap.Error(err))
	}

	store := catalog.NewStore(repos.Catalog, config.Catalog.TTL, logger)
	sessions := session.NewManager(repos.Auth, repos.Session, config.Session.TTL, logger)

	// Persisted sessions are checked against the remote API before use
	if _, err := sessions.Restore(ctx, restoreConcurrency); err != nil {
		logger.Error("Failed to restore sessions", zap.Error(err))
	}

	go cleanExpiredSessions(ctx, repos.Session, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, store, sessions, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}

func cleanExpiredSessions(ctx context.Context, repo repository.SessionRepository, logger *zap.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.CleanExpiredSessions(ctx)
			if err != nil {
				logger.Error("Failed to clean expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("Expired sessions cleaned", zap.Int64("count", n))
			}
		}
	}
}
