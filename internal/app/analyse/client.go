package analyse

import (
	"fmt"
	"time"

	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/chess-vn/enginebench/pkg/logging"
	"github.com/chess-vn/enginebench/pkg/pgn"
	"github.com/freeeve/uci"
	"go.uber.org/zap"
)

type Client struct {
	engine *uci.Engine
	cfg    Config
}

func NewClient(cfg Config) (*Client, error) {
	engine, err := uci.NewEngine(cfg.StockfishPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize engine: %w", err)
	}
	err = engine.SetOptions(uci.Options{
		MultiPV: cfg.MultiPV,
		Hash:    cfg.Hash,
		Threads: cfg.Threads,
		Ponder:  false,
		OwnBook: false,
	})
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("couldn't set engine options: %w", err)
	}
	return &Client{
		engine: engine,
		cfg:    cfg,
	}, nil
}

func (client *Client) Evaluate(fen string, depth int) (entities.Evaluation, error) {
	start := time.Now()
	if err := client.engine.SetFEN(fen); err != nil {
		return entities.Evaluation{}, fmt.Errorf("set fen: %w", err)
	}
	resultOpts := uci.HighestDepthOnly | uci.IncludeUpperbounds | uci.IncludeLowerbounds
	results, err := client.engine.GoDepth(depth, resultOpts)
	if err != nil {
		return entities.Evaluation{}, fmt.Errorf("failed to evaluate: %w", err)
	}
	eval := EvaluationFromResults(fen, results)
	logging.Debug("position evaluated",
		zap.String("fen", fen),
		zap.Int("depth", eval.Depth),
		zap.String("best_move", results.BestMove),
		zap.Duration("elapsed", time.Since(start)),
	)
	return eval, nil
}

// Review evaluates every position reached in the games of a PGN file.
func (client *Client) Review(pgnPath string, depth int) ([]entities.Evaluation, error) {
	fenList, err := pgn.PgnParseFromFile(pgnPath)
	if err != nil {
		return nil, err
	}
	evals := make([]entities.Evaluation, 0, len(fenList))
	for i, fen := range fenList {
		eval, err := client.Evaluate(fen, depth)
		if err != nil {
			return evals, fmt.Errorf("ply %d: %w", i+1, err)
		}
		evals = append(evals, eval)
	}
	return evals, nil
}

func (client *Client) Close() {
	client.engine.Close()
}
