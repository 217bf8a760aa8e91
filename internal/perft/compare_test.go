package perft

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareIdenticalReportsPrintsNothing(t *testing.T) {
	out := "a2a3: 380\nb2b3: 420\ng1f3: 440\n"
	diff := Compare(ParseReport(out), ParseReport(out))

	assert.True(t, diff.Empty())

	var buf bytes.Buffer
	require.NoError(t, WriteDiff(&buf, diff, "stockfish", "perft"))
	assert.Empty(t, buf.String())
}

func TestCompareCountMismatch(t *testing.T) {
	ref := ParseReport("a2a3: 380\nb2b3: 420\ng1f3: 440\n")
	cand := ParseReport("a2a3: 380\nb2b3: 421\ng1f3: 440\n")

	diff := Compare(ref, cand)

	assert.False(t, diff.MoveSetDiffers())
	require.Len(t, diff.Mismatches, 1)
	assert.Equal(t, "b2b3: 420", diff.Mismatches[0].Reference.Line)
	assert.Equal(t, "b2b3: 421", diff.Mismatches[0].Candidate.Line)

	var buf bytes.Buffer
	require.NoError(t, WriteDiff(&buf, diff, "stockfish", "perft"))
	assert.Equal(t, "stockfish | perft\nb2b3: 420 | b2b3: 421\n", buf.String())
}

func TestCompareMoveOnlyInOneReport(t *testing.T) {
	ref := ParseReport("a2a3: 1\nb2b3: 1\n")
	cand := ParseReport("a2a3: 1\nb2b3: 1\nc8g4: 1\n")

	diff := Compare(ref, cand)

	assert.Equal(t, []string{"c8g4"}, diff.OnlyCandidate)
	assert.Empty(t, diff.OnlyReference)
	assert.Empty(t, diff.Mismatches)

	var buf bytes.Buffer
	require.NoError(t, WriteDiff(&buf, diff, "stockfish", "perft"))
	assert.Equal(t, "perft unique moves: [c8g4]\nstockfish unique moves: []\n", buf.String())
}

func TestCompareReportsCountsEvenWhenLengthsDiffer(t *testing.T) {
	ref := ParseReport("a2a3: 380\nb2b3: 420\n")
	cand := ParseReport("a2a3: 381\nb2b3: 420\nh1 garbage\n")

	diff := Compare(ref, cand)

	assert.Equal(t, []string{"h1"}, diff.OnlyCandidate)
	require.Len(t, diff.Mismatches, 1)
	assert.Equal(t, "a2a3", diff.Mismatches[0].Reference.Move)
}

func TestCompareBothSidesMissingMoves(t *testing.T) {
	ref := ParseReport("a2a3: 1\ne1g1: 1\n")
	cand := ParseReport("a2a3: 1\ne1c1: 1\n")

	diff := Compare(ref, cand)

	assert.Equal(t, []string{"e1g1"}, diff.OnlyReference)
	assert.Equal(t, []string{"e1c1"}, diff.OnlyCandidate)
}

func TestCompareEmptyCandidate(t *testing.T) {
	ref := ParseReport("a2a3: 1\nb2b3: 1\n")

	diff := Compare(ref, Report{})

	assert.Equal(t, []string{"a2a3", "b2b3"}, diff.OnlyReference)
	assert.Empty(t, diff.OnlyCandidate)
}

func TestWriteDiffMoveSetAndCounts(t *testing.T) {
	ref := ParseReport("a2a3: 380\nb2b3: 420\ne1g1: 5\n")
	cand := ParseReport("a2a3: 381\nb2b3: 420\ne1c1: 7\n")

	var buf bytes.Buffer
	require.NoError(t, WriteDiff(&buf, Compare(ref, cand), "stockfish", "perft"))

	assert.Equal(t, "perft unique moves: [e1c1]\n"+
		"stockfish unique moves: [e1g1]\n"+
		"stockfish | perft\n"+
		"a2a3: 380 | a2a3: 381\n", buf.String())
}
