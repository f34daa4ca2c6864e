package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/aswin1661/looms-petals/internal/app"
	"github.com/aswin1661/looms-petals/internal/config"
	"github.com/aswin1661/looms-petals/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	if err := app.Run(cfg, lg); err != nil {
		lg.Fatal().Err(err).Msg("app exited")
	}
}
