package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/verlyx/hub-server/internal/api"
	"github.com/verlyx/hub-server/internal/artifact"
	"github.com/verlyx/hub-server/internal/assistant"
	"github.com/verlyx/hub-server/internal/config"
	"github.com/verlyx/hub-server/internal/docgen"
	"github.com/verlyx/hub-server/internal/events"
	"github.com/verlyx/hub-server/internal/storage"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/hub-server.yml", "path to config file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("env", cfg.Server.Env).
		Str("version", cfg.Server.Version).
		Msg("Verlyx Hub server starting")

	store, err := storage.NewPostgresStore(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer store.Close()

	log.Info().Msg("Connected to database")

	// NATS is optional, events are skipped without it
	var nc *nats.Conn
	if cfg.NATS.URL != "" {
		nc, err = nats.Connect(cfg.NATS.URL,
			nats.Name(cfg.NATS.ClientID),
			nats.UserInfo(cfg.NATS.Username, cfg.NATS.Password),
			nats.ReconnectWait(2*time.Second),
			nats.MaxReconnects(-1),
		)
		if err != nil {
			log.Warn().Err(err).Msg("NATS unavailable, domain events disabled")
		} else {
			defer nc.Close()
			log.Info().Msg("Connected to NATS")
		}
	}
	publisher := events.NewPublisher(nc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	artifacts, err := artifact.NewMinioStore(ctx, &cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to object storage")
	}

	pipeline := docgen.NewPipeline(
		store,
		docgen.NewTemplateLoader(cfg.PDF.TemplateDir),
		docgen.NewChromeRenderer(cfg.PDF.RenderTimeout),
		artifacts,
	)

	assistantSvc := assistant.NewService(store, assistant.NewClient(&cfg.AI), cfg.AI.MaxTokens)

	server := api.NewRESTServer(cfg, store, pipeline, assistantSvc, publisher)

	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	go func() {
		if err := server.ListenAndServe(addr); err != nil {
			log.Error().Err(err).Msg("REST API server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Hub server stopped")
}
