package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordduel/wordduel/internal/config"
	"github.com/wordduel/wordduel/internal/httpapi"
	"github.com/wordduel/wordduel/internal/hub"
	"github.com/wordduel/wordduel/internal/words"
)

func main() {
	cfg := config.LoadServer()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", words.Count()).Msg("word list loaded")

	ctx := context.Background()
	h := hub.NewHub(ctx)

	// Build the router with the hub injected.
	handler := httpapi.SetupRoutes(h, cfg.IdleTimeout)

	log.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
