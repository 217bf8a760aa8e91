package perft

import (
	"context"
	"fmt"
	"strings"

	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// BuiltinTool computes the divide in process with dragontoothmg. It stands in
// for the reference engine on machines without stockfish.
type BuiltinTool struct{}

func NewBuiltinTool() *BuiltinTool {
	return &BuiltinTool{}
}

func (t *BuiltinTool) Name() string {
	return "builtin"
}

func (t *BuiltinTool) Run(ctx context.Context, q entities.PerftQuery) (Report, error) {
	out, err := t.Divide(ctx, q)
	if err != nil {
		return Report{}, err
	}
	return ParseReport(out), nil
}

// Divide prints one "move: nodes" line per legal root move followed by a
// stockfish style "Nodes searched" summary.
func (t *BuiltinTool) Divide(ctx context.Context, q entities.PerftQuery) (string, error) {
	if q.Depth <= 0 {
		return "", ErrInvalidDepth
	}
	board, err := setup(q.FenOrStart(), q.Moves)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var total uint64
	moves := board.GenerateLegalMoves()
	for i := range moves {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		m := moves[i]
		unapply := board.Apply(m)
		n := count(&board, q.Depth-1)
		unapply()
		total += n
		fmt.Fprintf(&sb, "%s: %d\n", m.String(), n)
	}
	fmt.Fprintf(&sb, "\nNodes searched: %d\n", total)
	return sb.String(), nil
}

func setup(fen string, moves []string) (board dragontoothmg.Board, err error) {
	// dragontoothmg panics on malformed input
	if _, err := chess.FEN(fen); err != nil {
		return board, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse fen %q: %v", fen, r)
		}
	}()
	board = dragontoothmg.ParseFen(fen)
	for _, token := range moves {
		if !applyToken(&board, token) {
			return board, fmt.Errorf("%w: %s", ErrIllegalMove, token)
		}
	}
	return board, nil
}

func applyToken(board *dragontoothmg.Board, token string) bool {
	legal := board.GenerateLegalMoves()
	for i := range legal {
		m := legal[i]
		if m.String() == token {
			board.Apply(m)
			return true
		}
	}
	return false
}

func count(board *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := board.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := board.Apply(m)
		nodes += count(board, depth-1)
		unapply()
	}
	return nodes
}
