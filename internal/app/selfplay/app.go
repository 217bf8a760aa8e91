package selfplay

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chess-vn/enginebench/internal/display"
	"github.com/chess-vn/enginebench/internal/engine"
	"github.com/chess-vn/enginebench/pkg/logging"
	"github.com/chess-vn/enginebench/pkg/pgn"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type App struct {
	cfg Config
	out io.Writer
	in  io.Reader
}

func NewApp(cfg Config, out io.Writer, in io.Reader) *App {
	return &App{
		cfg: cfg,
		out: out,
		in:  in,
	}
}

func (a *App) Limit() engine.Limit {
	if a.cfg.Depth > 0 {
		return engine.Limit{Depth: a.cfg.Depth}
	}
	return engine.Limit{MoveTime: a.cfg.MoveTime}
}

func (a *App) StartFen() (string, error) {
	if a.cfg.OpeningPath != "" {
		fen, err := pgn.LastFen(a.cfg.OpeningPath)
		if err != nil {
			return "", fmt.Errorf("load opening: %w", err)
		}
		return fen, nil
	}
	return a.cfg.Fen, nil
}

func (a *App) engineOptions() []engine.Option {
	var opts []engine.Option
	if a.cfg.Hash > 0 {
		opts = append(opts, engine.Option{Name: "Hash", Value: strconv.Itoa(a.cfg.Hash)})
	}
	if a.cfg.Threads > 0 {
		opts = append(opts, engine.Option{Name: "Threads", Value: strconv.Itoa(a.cfg.Threads)})
	}
	return opts
}

// Run starts the engines and the display, plays one game and shuts
// everything down again.
func (a *App) Run(ctx context.Context) (Outcome, error) {
	startFen, err := a.StartFen()
	if err != nil {
		return Outcome{}, err
	}

	white := engine.NewClient(a.engineOptions()...)
	if err := white.Start(ctx, a.cfg.EnginePath); err != nil {
		return Outcome{}, fmt.Errorf("start %s: %w", a.cfg.EnginePath, err)
	}
	defer white.Stop()

	black := white
	if a.cfg.BlackEnginePath != "" {
		black = engine.NewClient(a.engineOptions()...)
		if err := black.Start(ctx, a.cfg.BlackEnginePath); err != nil {
			return Outcome{}, fmt.Errorf("start %s: %w", a.cfg.BlackEnginePath, err)
		}
		defer black.Stop()
	}

	d, err := display.New(a.cfg.Display, a.cfg.DisplayAddr, a.out, a.in)
	if err != nil {
		return Outcome{}, err
	}
	defer d.Close()

	match, err := NewMatch(MatchConfig{
		Id:       uuid.NewString(),
		StartFen: startFen,
		Limit:    a.Limit(),
		MaxPlies: a.cfg.MaxPlies,
	}, white, black, d)
	if err != nil {
		return Outcome{}, err
	}

	outcome, err := match.Play(ctx)
	if err != nil {
		return outcome, err
	}
	fmt.Fprintf(a.out, "Result: %s (%s) after %d plies\n", outcome.Result, outcome.Method, outcome.Plies)

	if a.cfg.PgnOut != "" {
		pgnText := match.PGN(engineName(white, a.cfg.EnginePath), engineName(black, a.cfg.BlackEnginePath))
		if err := os.WriteFile(a.cfg.PgnOut, []byte(pgnText), 0o644); err != nil {
			return outcome, fmt.Errorf("write pgn: %w", err)
		}
		logging.Info("pgn written", zap.String("path", a.cfg.PgnOut))
	}
	return outcome, nil
}

func engineName(c *engine.Client, path string) string {
	if c.Name() != "" {
		return c.Name()
	}
	return filepath.Base(path)
}
