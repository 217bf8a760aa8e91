package perft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportFiltersNonMoveLines(t *testing.T) {
	output := "info string NNUE evaluation enabled\n" +
		"e2e4: 20\n" +
		"\n" +
		"d2d4: 20\n" +
		"Nodes searched: 400\n"

	report := ParseReport(output)

	assert.Equal(t, []string{"d2d4: 20", "e2e4: 20"}, report.Lines())
	assert.Equal(t, uint64(40), report.Total())
}

func TestParseReportSortsLexicographically(t *testing.T) {
	a := ParseReport("e2e4: 20\nd2d4: 20\n")
	b := ParseReport("d2d4: 20\ne2e4: 20\n")

	assert.Equal(t, a.Lines(), b.Lines())
	assert.True(t, Compare(a, b).Empty())
}

func TestParseReportNormalizesSpacing(t *testing.T) {
	report := ParseReport("a2a3:  380\r\nb1c3 440\ne7e8q:1\n")

	require.Equal(t, 3, report.Len())
	assert.Equal(t, []string{"a2a3: 380", "b1c3: 440", "e7e8q: 1"}, report.Lines())

	moves := report.Moves()
	assert.Equal(t, uint64(440), moves["b1c3"].Nodes)
	assert.True(t, moves["e7e8q"].Counted)
}

func TestParseReportComparesCountsByValue(t *testing.T) {
	ref := ParseReport("e2e4: 20\n")
	for _, out := range []string{"e2e4: 020\n", "e2e4 20\n", "e2e4:20\n"} {
		cand := ParseReport(out)
		assert.Equal(t, []string{"e2e4: 20"}, cand.Lines(), out)
		assert.True(t, Compare(ref, cand).Empty(), out)
	}
}

func TestParseReportKeepsUncountedLines(t *testing.T) {
	report := ParseReport("a1 is a corner square\n")

	require.Equal(t, 1, report.Len())
	entry := report.Entries[0]
	assert.Equal(t, "a1", entry.Move)
	assert.False(t, entry.Counted)
	assert.Equal(t, "a1 is a corner square", entry.Line)
}

func TestParseReportEmptyOutput(t *testing.T) {
	report := ParseReport("Unknown command: 'go perft 3'\n")

	assert.Zero(t, report.Len())
	assert.Zero(t, report.Total())
	assert.Empty(t, report.String())
}
