package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/perttu/commission-console/config"
	"github.com/perttu/commission-console/internal/api"
	"github.com/perttu/commission-console/internal/console"
	"github.com/perttu/commission-console/internal/storage"
)

const tierCacheTTL = 30 * time.Minute

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()
	cfg := config.FromEnv()

	if missing := cfg.Missing(); len(missing) > 0 {
		log.Fatal().Msgf("missing required config: %s", strings.Join(missing, ", "))
	}

	store, err := storage.NewSQLiteStore(cfg.DBPath, storage.DeriveKey(cfg.TokenKey))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize preferences store")
	}
	defer store.Close()
	log.Info().Str("dbPath", cfg.DBPath).Msg("preferences store initialized")

	// The API token comes from the environment when set, otherwise from the
	// encrypted store.
	token := cfg.APIToken
	if token == "" {
		token, err = store.APIToken()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load stored api token")
		}
	} else if err := store.SetAPIToken(token); err != nil {
		log.Warn().Err(err).Msg("failed to persist api token")
	}
	if token == "" {
		log.Fatal().Msg("no api token: set CONSOLE_API_TOKEN")
	}

	client := api.NewClient(api.ClientOpts{
		BaseURL: cfg.APIBaseURL,
		Token:   token,
	})

	// Create context that cancels on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cache := console.NewTierCache(tierCacheTTL)

	g, ctx := errgroup.WithContext(ctx)

	refresher := console.NewRefresher(store, client, cache)
	g.Go(func() error {
		refresher.Run(ctx)
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}
