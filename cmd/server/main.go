package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/GTBioPortal/BioPortal-Backend/internal/server"
	"github.com/GTBioPortal/BioPortal-Backend/internal/server/config"
)

func main() {
	// A missing .env is fine; the environment and flags still apply.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
