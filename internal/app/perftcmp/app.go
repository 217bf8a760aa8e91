package perftcmp

import (
	"context"
	"fmt"
	"io"

	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/chess-vn/enginebench/internal/perft"
	"github.com/chess-vn/enginebench/pkg/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type App struct {
	cfg       Config
	validator *perft.Validator
	out       io.Writer
	runId     string
}

func NewApp(cfg Config, out io.Writer) (*App, error) {
	reference, err := perft.NewTool(cfg.Reference, cfg.StockfishPath)
	if err != nil {
		return nil, err
	}
	return NewAppWithTools(cfg, reference, perft.NewArgsTool(cfg.CandidatePath), out), nil
}

func NewAppWithTools(cfg Config, reference, candidate perft.Tool, out io.Writer) *App {
	return &App{
		cfg:       cfg,
		validator: perft.NewValidator(reference, candidate),
		out:       out,
		runId:     uuid.NewString(),
	}
}

// Run performs the configured comparison and reports whether no discrepancy
// was found.
func (a *App) Run(ctx context.Context) (bool, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}
	if a.cfg.SuitePath != "" {
		return a.runSuite(ctx)
	}
	return a.compare(ctx, a.cfg.Query)
}

func (a *App) compare(ctx context.Context, q entities.PerftQuery) (bool, error) {
	logging.Info("comparing perft",
		zap.String("run_id", a.runId),
		zap.Int("depth", q.Depth),
		zap.String("fen", q.FenOrStart()),
		zap.Strings("moves", q.Moves),
	)
	res, err := a.validator.Compare(ctx, q)
	if err != nil {
		return false, err
	}
	if err := perft.WriteDiff(a.out, res.Diff, a.validator.Reference.Name(), a.validator.Candidate.Name()); err != nil {
		return false, err
	}
	if !res.Diff.Empty() {
		logging.Info("perft discrepancy",
			zap.String("run_id", a.runId),
			zap.Strings("only_reference", res.Diff.OnlyReference),
			zap.Strings("only_candidate", res.Diff.OnlyCandidate),
			zap.Int("count_mismatches", len(res.Diff.Mismatches)),
		)
	}
	return res.Diff.Empty(), nil
}

func (a *App) runSuite(ctx context.Context) (bool, error) {
	suite, err := LoadSuite(a.cfg.SuitePath)
	if err != nil {
		return false, err
	}
	cases := Cases(suite)
	passed := 0
	for _, c := range cases {
		if _, err := fmt.Fprintf(a.out, "Position: %s\n", c.Name); err != nil {
			return false, err
		}
		ok, err := a.runCase(ctx, c)
		if err != nil {
			return false, fmt.Errorf("position %s: %w", c.Name, err)
		}
		if ok {
			passed++
		}
	}
	if _, err := fmt.Fprintf(a.out, "passed %d/%d\n", passed, len(cases)); err != nil {
		return false, err
	}
	logging.Info("suite finished",
		zap.String("run_id", a.runId),
		zap.Int("passed", passed),
		zap.Int("total", len(cases)),
	)
	return passed == len(cases), nil
}

func (a *App) runCase(ctx context.Context, c entities.SuiteCase) (bool, error) {
	res, err := a.validator.Compare(ctx, c.Query())
	if err != nil {
		return false, err
	}
	refName := a.validator.Reference.Name()
	candName := a.validator.Candidate.Name()
	if err := perft.WriteDiff(a.out, res.Diff, refName, candName); err != nil {
		return false, err
	}
	ok := res.Diff.Empty()

	expected, has := c.ExpectedTotal()
	if !has {
		return ok, nil
	}
	for _, side := range []struct {
		name  string
		total uint64
	}{
		{refName, res.Reference.Total()},
		{candName, res.Candidate.Total()},
	} {
		if side.total != expected {
			ok = false
			if _, err := fmt.Fprintf(a.out, "%s total %d, expected %d\n", side.name, side.total, expected); err != nil {
				return false, err
			}
		}
	}
	return ok, nil
}
