package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/chess-vn/enginebench/internal/app/perftcmp"
	"github.com/chess-vn/enginebench/pkg/logging"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg, err := perftcmp.LoadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		logging.Fatal("couldn't load config", zap.Error(err))
	}
	logging.Init(cfg.LogLevel, cfg.Development)
	defer logging.Sync()

	app, err := perftcmp.NewApp(cfg, os.Stdout)
	if err != nil {
		logging.Fatal("couldn't initialize perft tools", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ok, err := app.Run(ctx)
	if err != nil {
		logging.Fatal("perft comparison failed", zap.Error(err))
	}
	if !ok {
		logging.Sync()
		os.Exit(1)
	}
}
