package main

import (
	"fmt"
	"os"

	_ "gardenbuild/docs"
	"gardenbuild/internal/adapter/http/routes"
	"gardenbuild/internal/config"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title           GardenBuild Quoting API
// @version         1.0
// @description     Quote and configuration engine for garden rooms, extensions and house builds.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting gardenbuild api")

	routes.Run(cfg)
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
