package analyse

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chess-vn/enginebench/internal/domains/dtos"
	"github.com/chess-vn/enginebench/internal/domains/entities"
)

type evaluator interface {
	Evaluate(fen string, depth int) (entities.Evaluation, error)
	Review(pgnPath string, depth int) ([]entities.Evaluation, error)
}

type App struct {
	cfg    Config
	client evaluator
	out    io.Writer
}

func NewApp(cfg Config, client evaluator, out io.Writer) *App {
	return &App{
		cfg:    cfg,
		client: client,
		out:    out,
	}
}

func (a *App) Run() error {
	var evals []entities.Evaluation
	if a.cfg.PgnPath != "" {
		var err error
		evals, err = a.client.Review(a.cfg.PgnPath, a.cfg.Depth)
		if err != nil {
			return err
		}
	} else {
		eval, err := a.client.Evaluate(a.cfg.Fen, a.cfg.Depth)
		if err != nil {
			return err
		}
		evals = append(evals, eval)
	}

	for _, eval := range evals {
		if err := a.write(eval); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) write(eval entities.Evaluation) error {
	if a.cfg.JSON {
		return json.NewEncoder(a.out).Encode(dtos.EvaluationResponseFromEntity(eval))
	}
	if _, err := fmt.Fprintf(a.out, "%s\ndepth %d knodes %d\n", eval.Fen, eval.Depth, eval.Knodes); err != nil {
		return err
	}
	for i, pv := range eval.Pvs {
		score := fmt.Sprintf("cp %d", pv.Cp)
		if pv.Mate != 0 {
			score = fmt.Sprintf("mate %d", pv.Mate)
		}
		if _, err := fmt.Fprintf(a.out, "  %d. %s: %s\n", i+1, score, pv.Moves); err != nil {
			return err
		}
	}
	return nil
}
