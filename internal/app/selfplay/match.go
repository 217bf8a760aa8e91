package selfplay

import (
	"context"
	"errors"
	"fmt"

	"github.com/chess-vn/enginebench/internal/display"
	"github.com/chess-vn/enginebench/internal/domains/entities"
	"github.com/chess-vn/enginebench/internal/engine"
	"github.com/chess-vn/enginebench/pkg/logging"
	"github.com/notnil/chess"
	"go.uber.org/zap"
)

// Engine is the part of the UCI client a match needs.
type Engine interface {
	NewGame() error
	SetPosition(fen string, moves ...string) error
	Search(ctx context.Context, limit engine.Limit) (engine.Result, error)
}

type Match struct {
	id       string
	startFen string
	game     *chess.Game
	engines  [2]Engine
	display  display.Display
	limit    engine.Limit
	maxPlies int
	moves    []string
}

type MatchConfig struct {
	Id       string
	StartFen string
	Limit    engine.Limit
	MaxPlies int
}

type Outcome struct {
	Result  string
	Method  string
	Plies   int
	Stopped bool
}

func NewMatch(cfg MatchConfig, white, black Engine, d display.Display) (*Match, error) {
	startFen := cfg.StartFen
	if startFen == "" {
		startFen = entities.StartFen
	}
	withFen, err := chess.FEN(startFen)
	if err != nil {
		return nil, fmt.Errorf("invalid start position: %w", err)
	}
	game := chess.NewGame(
		withFen,
		chess.UseNotation(chess.UCINotation{}),
	)
	if d == nil {
		d = display.None{}
	}
	return &Match{
		id:       cfg.Id,
		startFen: startFen,
		game:     game,
		engines:  [2]Engine{white, black},
		display:  d,
		limit:    cfg.Limit,
		maxPlies: cfg.MaxPlies,
	}, nil
}

// Play asks the side to move for a move until the game ends, the display
// requests a stop, the ply cap is reached or ctx is cancelled.
func (m *Match) Play(ctx context.Context) (Outcome, error) {
	for i, e := range m.engines {
		if i == 1 && e == m.engines[0] {
			break
		}
		if err := e.NewGame(); err != nil {
			return Outcome{}, fmt.Errorf("new game: %w", err)
		}
	}
	if err := m.display.Update(m.game.FEN()); err != nil {
		return Outcome{}, fmt.Errorf("update display: %w", err)
	}

	stopped := false
	for m.game.Outcome() == chess.NoOutcome {
		if m.maxPlies > 0 && len(m.moves) >= m.maxPlies {
			logging.Info("ply limit reached", zap.String("game_id", m.id), zap.Int("plies", len(m.moves)))
			stopped = true
			break
		}
		if ctx.Err() != nil {
			stopped = true
			break
		}

		move, err := m.nextMove(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			stopped = true
			break
		}
		if err != nil {
			return m.outcome(true), err
		}

		if err := m.display.Update(m.game.FEN()); err != nil {
			return m.outcome(true), fmt.Errorf("update display: %w", err)
		}
		if m.display.QuitRequested() {
			logging.Info("quit requested", zap.String("game_id", m.id), zap.String("last_move", move))
			stopped = true
			break
		}
	}

	out := m.outcome(stopped)
	logging.Info("game finished",
		zap.String("game_id", m.id),
		zap.String("result", out.Result),
		zap.String("method", out.Method),
		zap.Int("plies", out.Plies),
	)
	return out, nil
}

func (m *Match) nextMove(ctx context.Context) (string, error) {
	side := m.game.Position().Turn()
	eng := m.engines[0]
	if side == chess.Black {
		eng = m.engines[1]
	}
	if err := eng.SetPosition(m.startFen, m.moves...); err != nil {
		return "", fmt.Errorf("set position: %w", err)
	}
	res, err := eng.Search(ctx, m.limit)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}
	if err := m.game.MoveStr(res.BestMove); err != nil {
		return "", fmt.Errorf("%w: %s by %s: %v", ErrIllegalMove, res.BestMove, side, err)
	}
	m.moves = append(m.moves, res.BestMove)

	logging.Info("move",
		zap.String("game_id", m.id),
		zap.Int("ply", len(m.moves)),
		zap.String("side", side.Name()),
		zap.String("move", res.BestMove),
		zap.Int("depth", res.Info.Depth),
		zap.Int("score_cp", res.Info.Cp),
		zap.Int("score_mate", res.Info.Mate),
	)
	return res.BestMove, nil
}

func (m *Match) outcome(stopped bool) Outcome {
	return Outcome{
		Result:  m.game.Outcome().String(),
		Method:  m.game.Method().String(),
		Plies:   len(m.moves),
		Stopped: stopped,
	}
}

func (m *Match) Moves() []string {
	return m.moves
}

func (m *Match) FEN() string {
	return m.game.FEN()
}

// PGN renders the game with the given player names.
func (m *Match) PGN(white, black string) string {
	m.game.AddTagPair("Event", "selfplay "+m.id)
	m.game.AddTagPair("White", white)
	m.game.AddTagPair("Black", black)
	if m.startFen != entities.StartFen {
		m.game.AddTagPair("SetUp", "1")
		m.game.AddTagPair("FEN", m.startFen)
	}
	return m.game.String()
}
