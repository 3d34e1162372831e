package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type application struct {
	config      *Config
	logger      *common.Logger
	userService *userservice.UserService
	blogService *blogservice.BlogService
}

func main() {
	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		common.NewLogger("server", zerolog.InfoLevel).Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if cfg.Environment == "development" {
		level = zerolog.DebugLevel
	}
	logger := common.NewLogger("server", level)

	// Initialize the database
	db, err := common.NewDB(cfg.DB.URI, cfg.DB.Name, 10, 0, 15*time.Minute)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to the database")
		os.Exit(1)
	}
	defer common.CloseDB(db)

	err = common.Migrate(db)
	if err != nil {
		logger.Error().Err(err).Msg("failed to apply migrations")
		common.CloseDB(db)
		os.Exit(1)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, cfg.Secret, cfg.TokenTTL),
		blogService: blogservice.NewBlogService(db),
	}

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start the server")
		common.CloseDB(db)
		os.Exit(1)
	}
}
