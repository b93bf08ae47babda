package main

import (
	"log"

	"cinema-listing/cmd"
	"cinema-listing/internal/data/repository"
	"cinema-listing/internal/wire"
	"cinema-listing/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("feed_url", config.Feed.URL),
		zap.Duration("feed_timeout", config.Feed.Timeout),
		zap.String("static_root", config.Static.Root),
	)

	repos := repository.NewRepository(config, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	srv := cmd.NewHTTPServer(app.Router, config.App.Port, config.Feed.Timeout)
	if err := cmd.APIServer(srv, config.App.ShutdownTimeout, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
