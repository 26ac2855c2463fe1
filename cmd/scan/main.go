// Command scan reads every topic directory of the user data folder and
// merges the words it finds into the vocabulary cache. The cache is saved
// after each file, so an interrupted scan is resumed by running it again.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/deutschkurs/internal/app"
	"github.com/heartmarshall/deutschkurs/internal/config"
)

func main() {
	userData := flag.String("userdata", "", "topic directory root (overrides paths.userdata)")
	cachePath := flag.String("cache", "", "cache file (overrides paths.cache)")
	flag.Parse()

	cfg, err := config.Load(config.WithUserData(*userData), config.WithCache(*cachePath))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting scan",
		slog.String("version", app.BuildVersion()),
		slog.String("userdata", cfg.Paths.UserData),
		slog.String("cache", cfg.Paths.Cache),
		slog.String("annotator", cfg.Annotator.Backend),
		slog.String("dictionary", cfg.Dictionary.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := app.RunScan(ctx, cfg, logger)
	logger.Info("vocabulary statistics",
		slog.Int("len_words", report.Stats.LenWords),
		slog.Int("len_topics", report.Stats.LenTopics),
		slog.Int("len_pos", report.Stats.LenPos),
	)
	if err != nil {
		logger.Error("scan failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
