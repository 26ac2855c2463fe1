// Command publish applies the database migrations and mirrors the
// vocabulary cache into PostgreSQL for the documentation site.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/deutschkurs/internal/app"
	"github.com/heartmarshall/deutschkurs/internal/config"
)

func main() {
	cachePath := flag.String("cache", "", "cache file (overrides paths.cache)")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall publish timeout")
	flag.Parse()

	cfg, err := config.Load(config.WithCache(*cachePath))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := app.RunPublish(ctx, cfg, logger)
	if err != nil {
		logger.Error("publish failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("publish completed",
		slog.Int("words", res.Words),
		slog.Int("topics", res.Topics),
		slog.Int("links", res.Links),
	)
}
