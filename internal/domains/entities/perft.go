package entities

import "strings"

const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// PerftQuery is the (depth, position, moves) triple both perft tools are run
// against. Reports are only comparable when produced from the same query.
type PerftQuery struct {
	Depth int
	Fen   string
	Moves []string
}

func (q PerftQuery) FenOrStart() string {
	if strings.TrimSpace(q.Fen) == "" {
		return StartFen
	}
	return q.Fen
}

type SuiteCase struct {
	Name     string   `yaml:"name"`
	Fen      string   `yaml:"fen"`
	Moves    []string `yaml:"moves,omitempty"`
	Depth    int      `yaml:"depth"`
	Expected []uint64 `yaml:"expected,omitempty"`
}

func (c SuiteCase) Query() PerftQuery {
	return PerftQuery{
		Depth: c.Depth,
		Fen:   c.Fen,
		Moves: c.Moves,
	}
}

// ExpectedTotal returns the expected node total at the case depth, if the
// suite lists one.
func (c SuiteCase) ExpectedTotal() (uint64, bool) {
	if c.Depth <= 0 || c.Depth > len(c.Expected) {
		return 0, false
	}
	return c.Expected[c.Depth-1], true
}

type Suite struct {
	Positions []SuiteCase `yaml:"positions"`
	Exclude   []string    `yaml:"exclude,omitempty"`
}
