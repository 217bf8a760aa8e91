package pgn

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/freeeve/pgn.v1"
)

// PgnParseFromString replays every game in pgnString and returns the FEN
// after each move, games concatenated in order.
func PgnParseFromString(pgnString string) ([]string, error) {
	return parse(strings.NewReader(pgnString))
}

func PgnParseFromFile(filepath string) ([]string, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

// LastFen returns the position reached at the end of the first game.
func LastFen(filepath string) (string, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	ps := pgn.NewPGNScanner(f)
	if !ps.Next() {
		return "", fmt.Errorf("no game in %s", filepath)
	}
	game, err := ps.Scan()
	if err != nil {
		return "", fmt.Errorf("scan game: %w", err)
	}
	b := pgn.NewBoard()
	for i, move := range game.Moves {
		if err := b.MakeMove(move); err != nil {
			return "", fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return b.String(), nil
}

func parse(r io.Reader) ([]string, error) {
	ps := pgn.NewPGNScanner(r)

	var fenList []string
	for ps.Next() {
		game, err := ps.Scan()
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}

		b := pgn.NewBoard()
		for i, move := range game.Moves {
			if err := b.MakeMove(move); err != nil {
				return nil, fmt.Errorf("move %d: %w", i+1, err)
			}
			fenList = append(fenList, b.String())
		}
	}
	return fenList, nil
}
