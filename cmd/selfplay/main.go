package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/chess-vn/enginebench/internal/app/selfplay"
	"github.com/chess-vn/enginebench/pkg/logging"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg, err := selfplay.LoadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		logging.Fatal("couldn't load config", zap.Error(err))
	}
	logging.Init(cfg.LogLevel, cfg.Development)
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := selfplay.NewApp(cfg, os.Stdout, os.Stdin).Run(ctx); err != nil {
		logging.Fatal("self-play exited", zap.Error(err))
	}
}
