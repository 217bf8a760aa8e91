package perft

import (
	"context"
	"fmt"
	"time"

	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/chess-vn/enginebench/pkg/logging"
	"go.uber.org/zap"
)

// Validator cross-checks a candidate perft tool against a reference one.
type Validator struct {
	Reference Tool
	Candidate Tool
}

type Result struct {
	Query     entities.PerftQuery
	Reference Report
	Candidate Report
	Diff      Diff
}

func NewValidator(reference, candidate Tool) *Validator {
	return &Validator{
		Reference: reference,
		Candidate: candidate,
	}
}

// Compare runs the reference tool, then the candidate tool, on the same query
// and diffs their reports. The tools never run concurrently.
func (v *Validator) Compare(ctx context.Context, q entities.PerftQuery) (Result, error) {
	if q.Depth <= 0 {
		return Result{}, ErrInvalidDepth
	}
	q.Fen = q.FenOrStart()

	ref, err := v.runTool(ctx, v.Reference, q)
	if err != nil {
		return Result{}, err
	}
	cand, err := v.runTool(ctx, v.Candidate, q)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Query:     q,
		Reference: ref,
		Candidate: cand,
		Diff:      Compare(ref, cand),
	}, nil
}

func (v *Validator) runTool(ctx context.Context, tool Tool, q entities.PerftQuery) (Report, error) {
	start := time.Now()
	report, err := tool.Run(ctx, q)
	if err != nil {
		return Report{}, fmt.Errorf("perft %s: %w", tool.Name(), err)
	}
	logging.Debug("perft tool finished",
		zap.String("tool", tool.Name()),
		zap.Int("depth", q.Depth),
		zap.Int("moves", report.Len()),
		zap.Uint64("nodes", report.Total()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}
