//go:build !test

/* main.go
 * The "main" method for running the bracket pool bot and http server
 * Usage: go run . -test=false [-field=<path or url>] [-http]
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"madness-pool/api/api"
	"madness-pool/bot"
	"madness-pool/config"
	"madness-pool/web"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func main() {
	fieldPtr := flag.String("field", "", "Path or URL of a field file (yaml or json). When set the tournament is (re)created from it")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")
	httpPtr := flag.Bool("http", false, "Run the http server alongside the bot")
	flag.Parse()

	useBeta, err := convertStrToBool(*testPtr)
	if err != nil {
		log.Fatalf("Invalid \"test\" flag %q. Should be true or false", *testPtr)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.LogConfiguration()

	discordToken, err := cfg.DiscordToken(useBeta)
	if err != nil {
		log.Fatalf("failed to load discord token: %v", err)
	}

	pool, err := api.NewAPI(cfg.Database.Name, cfg.Database.URI, cfg.Database.TournamentID, cfg.Database.Timeout)
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	pool.Workers = cfg.Scoring.Workers
	defer func() {
		if err := pool.Store.GetClient().Disconnect(context.Background()); err != nil {
			log.Printf("failed to disconnect from mongo: %v", err)
		}
	}()

	if *fieldPtr != "" {
		if err := createTournament(pool, *fieldPtr); err != nil {
			log.Fatalf("failed to create tournament: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	discordBot, err := bot.NewBot(discordToken, pool, cfg.Discord.AdminIDs, rate.Limit(cfg.Discord.CommandRate), cfg.Discord.CommandBurst)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return discordBot.Run(gctx)
	})
	if *httpPtr || cfg.Server.Enabled {
		g.Go(func() error {
			return web.Start(gctx, web.Config{
				Addr:      cfg.Server.Addr,
				API:       pool,
				JWTSecret: cfg.Server.JWTSecret,
			})
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("shutting down: %v", err)
	}
}
