package dtos

import (
	"github.com/chess-vn/enginebench/internal/domains/entities"
)

type PvResponse struct {
	Cp    int    `json:"cp"`
	Mate  int    `json:"mate,omitempty"`
	Moves string `json:"moves"`
}

type EvaluationResponse struct {
	Fen    string       `json:"fen"`
	Depth  int          `json:"depth"`
	Knodes int          `json:"knodes"`
	Pvs    []PvResponse `json:"pvs"`
}

func EvaluationResponseFromEntity(eval entities.Evaluation) EvaluationResponse {
	v := EvaluationResponse{
		Fen:    eval.Fen,
		Depth:  eval.Depth,
		Knodes: eval.Knodes,
		Pvs:    make([]PvResponse, 0, len(eval.Pvs)),
	}
	for _, pv := range eval.Pvs {
		v.Pvs = append(v.Pvs, PvResponse{
			Cp:    pv.Cp,
			Mate:  pv.Mate,
			Moves: pv.Moves,
		})
	}
	return v
}
