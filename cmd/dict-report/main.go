// Command dict-report lists the words recorded in the personal dictionary,
// split into words with and without a definition. With -probe it instead
// checks that the DICT server serves the configured database.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/deutschkurs/internal/app"
	"github.com/heartmarshall/deutschkurs/internal/config"
)

func main() {
	probe := flag.Bool("probe", false, "check the DICT server and list its databases")
	undefinedOnly := flag.Bool("undefined", false, "only list words without a definition")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *probe {
		names, err := app.ProbeDictionary(ctx, cfg, logger)
		for _, n := range names {
			fmt.Println(n)
		}
		if err != nil {
			logger.Error("probe failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	report, err := app.DictionaryReport(ctx, cfg, logger)
	if err != nil {
		logger.Error("read personal dictionary", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !*undefinedOnly {
		fmt.Println("Words with definitions:")
		for _, e := range report.Defined {
			fmt.Printf("  %s\t%s\n", e.Dictionary, e.Word)
		}
		fmt.Println()
	}
	fmt.Println("Words without definitions:")
	for _, e := range report.Undefined {
		fmt.Printf("  %s\t%s\n", e.Dictionary, e.Word)
	}

	logger.Info("personal dictionary",
		slog.Int("defined", len(report.Defined)),
		slog.Int("undefined", len(report.Undefined)),
	)
}
