package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/notesafe/notesafe/internal/config"
	"github.com/notesafe/notesafe/internal/crypto"
	myHTTP "github.com/notesafe/notesafe/internal/handler/http"
	"github.com/notesafe/notesafe/internal/logger"
	"github.com/notesafe/notesafe/internal/server"
	"github.com/notesafe/notesafe/internal/service"
	"github.com/notesafe/notesafe/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// a missing .env file is fine, environment variables still apply
	_ = godotenv.Load()

	log := logger.NewLogger("notesafe-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	// The legacy cipher is optional: without an operator secret the server
	// runs in e2ee-plus-plaintext mode and enc:-marked fields are served raw.
	var legacy *crypto.LegacyCipher
	if cfg.App.LegacyEncryptionKey != "" {
		legacy, err = crypto.NewLegacyCipher(cfg.App.LegacyEncryptionKey)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid legacy encryption key")
		}
	}
	resolver := crypto.NewResolver(legacy)

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, resolver, cfg.App, log)
	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
