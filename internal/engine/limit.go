package engine

import (
	"fmt"
	"strings"
	"time"
)

// Limit bounds a search. Zero fields are left out of the go command; an
// all-zero Limit searches with plain "go".
type Limit struct {
	Depth     int
	Nodes     int
	Mate      int
	MoveTime  time.Duration
	WTime     time.Duration
	BTime     time.Duration
	WInc      time.Duration
	BInc      time.Duration
	MovesToGo int
	Infinite  bool
}

func (l Limit) Command() string {
	parts := []string{"go"}
	addInt := func(name string, v int) {
		if v > 0 {
			parts = append(parts, name, fmt.Sprint(v))
		}
	}
	addMs := func(name string, d time.Duration) {
		if d > 0 {
			parts = append(parts, name, fmt.Sprint(d.Milliseconds()))
		}
	}
	addMs("wtime", l.WTime)
	addMs("btime", l.BTime)
	addMs("winc", l.WInc)
	addMs("binc", l.BInc)
	addInt("movestogo", l.MovesToGo)
	addInt("depth", l.Depth)
	addInt("nodes", l.Nodes)
	addInt("mate", l.Mate)
	addMs("movetime", l.MoveTime)
	if l.Infinite {
		parts = append(parts, "infinite")
	}
	return strings.Join(parts, " ")
}
