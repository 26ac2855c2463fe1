// Command stats prints statistics of the vocabulary cache as JSON.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/heartmarshall/deutschkurs/internal/app"
	"github.com/heartmarshall/deutschkurs/internal/config"
)

func main() {
	cachePath := flag.String("cache", "", "cache file (overrides paths.cache)")
	compact := flag.Bool("compact", false, "print without indentation")
	flag.Parse()

	cfg, err := config.Load(config.WithCache(*cachePath))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	report, err := app.LoadStats(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("load cache", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	if !*compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		logger.Error("write report", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
