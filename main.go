//go:build !test

/* main.go
 * The "main" method for running the pick'em service. It starts the game sync scheduler and then the Discord bot, the
 * HTTP API, or both
 * Usage: go run . -bot="true" -web="true"
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nfl-playoff-picks/api/api"
	"nfl-playoff-picks/api/config"
	"nfl-playoff-picks/api/gamesync"
	"nfl-playoff-picks/api/session"
	"nfl-playoff-picks/bot"
	"nfl-playoff-picks/web"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	botPtr := flag.String("bot", "true", "Run the Discord bot: takes true or false as argument")
	webPtr := flag.String("web", "true", "Run the HTTP API: takes true or false as argument")
	flag.Parse()

	setupLogger("info")

	runBot, runWeb, err := parseRunFlags(*botPtr, *webPtr)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	if err := run(runBot, runWeb); err != nil {
		log.Fatal().Err(err).Msg("shutting down after error")
	}
	log.Info().Msg("shut down cleanly")
}

// run starts everything and blocks until SIGINT/SIGTERM or a component fails. Every resource opened here is released
// before it returns
func run(runBot, runWeb bool) error {
	cfg, err := config.Load(time.Now())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := api.NewAPI(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize API: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	var b *bot.Bot
	if runBot {
		b, err = bot.NewBot(cfg.DiscordToken, a, session.NewRegistry())
		if err != nil {
			return fmt.Errorf("failed to create bot: %w", err)
		}
	}

	scheduler, err := gamesync.StartScheduler(ctx, a.Syncer, cfg.SyncInterval)
	if err != nil {
		return fmt.Errorf("failed to start game sync scheduler: %w", err)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("failed to stop game sync scheduler")
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	if runWeb {
		g.Go(func() error {
			return web.Start(gctx, web.Config{Addr: cfg.HTTPAddr, API: a, CORSOrigins: cfg.CORSOrigins})
		})
	}
	if b != nil {
		g.Go(func() error {
			return b.Run(gctx)
		})
	}
	return g.Wait()
}
