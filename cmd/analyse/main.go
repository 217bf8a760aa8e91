package main

import (
	"errors"
	"os"

	"github.com/chess-vn/enginebench/internal/app/analyse"
	"github.com/chess-vn/enginebench/pkg/logging"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg, err := analyse.LoadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		logging.Fatal("couldn't load config", zap.Error(err))
	}
	logging.Init(cfg.LogLevel, cfg.Development)
	defer logging.Sync()

	client, err := analyse.NewClient(cfg)
	if err != nil {
		logging.Fatal("couldn't start engine", zap.Error(err))
	}
	defer client.Close()

	if err := analyse.NewApp(cfg, client, os.Stdout).Run(); err != nil {
		client.Close()
		logging.Fatal("analysis failed", zap.Error(err))
	}
}
