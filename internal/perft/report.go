package perft

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// moveLineRe matches report lines that start with a square coordinate,
// e.g. "e2e4: 20". Headers and totals ("Nodes searched: 400") don't.
var moveLineRe = regexp.MustCompile(`^[a-h][1-8]`)

// Entry is one canonical report line. Counted lines are rewritten as
// "<move>: <n>", so "e2e4 20" and "e2e4: 020" both read "e2e4: 20".
type Entry struct {
	Move  string
	Nodes uint64
	Line  string
	// Counted is false when the count after the move could not be parsed;
	// Line then holds the trimmed raw text.
	Counted bool
}

// Report is a canonical perft divide: move lines only, sorted by line text.
type Report struct {
	Entries []Entry
}

func ParseReport(output string) Report {
	var entries []Entry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r \t")
		if !moveLineRe.MatchString(line) {
			continue
		}
		entries = append(entries, parseEntry(line))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Line < entries[j].Line
	})
	return Report{Entries: entries}
}

func parseEntry(line string) Entry {
	move := line
	rest := ""
	if idx := strings.IndexAny(line, ": \t"); idx >= 0 {
		move = line[:idx]
		rest = strings.TrimLeft(line[idx:], ": \t")
	}
	if fields := strings.Fields(rest); len(fields) > 0 {
		if n, err := strconv.ParseUint(fields[0], 10, 64); err == nil {
			return Entry{
				Move:    move,
				Nodes:   n,
				Line:    fmt.Sprintf("%s: %d", move, n),
				Counted: true,
			}
		}
	}
	return Entry{
		Move: move,
		Line: strings.TrimSpace(line),
	}
}

func (r Report) Lines() []string {
	lines := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		lines = append(lines, e.Line)
	}
	return lines
}

func (r Report) Len() int {
	return len(r.Entries)
}

// Moves indexes the report by first-move token. A duplicated move keeps its
// last line.
func (r Report) Moves() map[string]Entry {
	moves := make(map[string]Entry, len(r.Entries))
	for _, e := range r.Entries {
		moves[e.Move] = e
	}
	return moves
}

func (r Report) Total() uint64 {
	var total uint64
	for _, e := range r.Entries {
		total += e.Nodes
	}
	return total
}

func (r Report) String() string {
	return strings.Join(r.Lines(), "\n")
}
