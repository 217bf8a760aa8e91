package analyse

import (
	"strings"

	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/freeeve/uci"
)

// EvaluationFromResults keeps the deepest line of every multipv slot.
func EvaluationFromResults(fen string, results *uci.Results) entities.Evaluation {
	eval := entities.Evaluation{
		Fen: fen,
		Pvs: []entities.Pv{},
	}
	if results == nil {
		return eval
	}

	deepest := make(map[int]uci.ScoreResult)
	var order []int
	for _, r := range results.Results {
		prev, seen := deepest[r.MultiPV]
		if !seen {
			order = append(order, r.MultiPV)
		}
		if !seen || r.Depth >= prev.Depth {
			deepest[r.MultiPV] = r
		}
	}

	for _, slot := range order {
		r := deepest[slot]
		if eval.Depth == 0 {
			eval.Depth = r.Depth
			eval.Knodes = r.Nodes / 1000
		}
		pv := entities.Pv{Moves: strings.Join(r.BestMoves, " ")}
		if r.Mate {
			pv.Mate = r.Score
		} else {
			pv.Cp = r.Score
		}
		eval.Pvs = append(eval.Pvs, pv)
	}
	return eval
}
