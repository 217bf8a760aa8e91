package perft

import (
	"fmt"
	"io"
	"sort"
)

type Mismatch struct {
	Reference Entry
	Candidate Entry
}

// Diff holds every discrepancy between two reports of the same query.
// Move-set differences and count differences are always both computed, so a
// stray line in one report does not hide a count mismatch in the other moves.
type Diff struct {
	OnlyReference []string
	OnlyCandidate []string
	Mismatches    []Mismatch
}

func (d Diff) Empty() bool {
	return len(d.OnlyReference) == 0 &&
		len(d.OnlyCandidate) == 0 &&
		len(d.Mismatches) == 0
}

func (d Diff) MoveSetDiffers() bool {
	return len(d.OnlyReference) > 0 || len(d.OnlyCandidate) > 0
}

func Compare(reference, candidate Report) Diff {
	refMoves := reference.Moves()
	candMoves := candidate.Moves()

	var diff Diff
	diff.OnlyReference = difference(refMoves, candMoves)
	diff.OnlyCandidate = difference(candMoves, refMoves)

	seen := make(map[string]bool, len(refMoves))
	for _, ref := range reference.Entries {
		if seen[ref.Move] {
			continue
		}
		seen[ref.Move] = true
		ref = refMoves[ref.Move]
		cand, ok := candMoves[ref.Move]
		if !ok || cand.Line == ref.Line {
			continue
		}
		diff.Mismatches = append(diff.Mismatches, Mismatch{
			Reference: ref,
			Candidate: cand,
		})
	}
	return diff
}

func difference(a, b map[string]Entry) []string {
	var moves []string
	for move := range a {
		if _, ok := b[move]; !ok {
			moves = append(moves, move)
		}
	}
	sort.Strings(moves)
	return moves
}

// WriteDiff prints d the way a person reads it at a terminal. An empty diff
// writes nothing.
func WriteDiff(w io.Writer, d Diff, referenceName, candidateName string) error {
	if d.MoveSetDiffers() {
		if _, err := fmt.Fprintf(w, "%s unique moves: %v\n", candidateName, d.OnlyCandidate); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s unique moves: %v\n", referenceName, d.OnlyReference); err != nil {
			return err
		}
	}
	if len(d.Mismatches) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s | %s\n", referenceName, candidateName); err != nil {
		return err
	}
	for _, m := range d.Mismatches {
		if _, err := fmt.Fprintf(w, "%s | %s\n", m.Reference.Line, m.Candidate.Line); err != nil {
			return err
		}
	}
	return nil
}
