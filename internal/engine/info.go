package engine

import (
	"strconv"
	"strings"
)

// Info is the part of a UCI "info" line the harness cares about.
type Info struct {
	Depth    int
	SelDepth int
	MultiPV  int
	Cp       int
	Mate     int
	Scored   bool
	Nodes    int64
	Nps      int64
	Time     int
	Pv       []string
}

// ParseInfo parses an "info ..." line. ok is false for lines that are not
// info lines or carry only a "string" message.
func ParseInfo(line string) (info Info, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "info" || fields[1] == "string" {
		return Info{}, false
	}
	atoi := func(i int) int {
		if i >= len(fields) {
			return 0
		}
		n, _ := strconv.Atoi(fields[i])
		return n
	}
	atoi64 := func(i int) int64 {
		if i >= len(fields) {
			return 0
		}
		n, _ := strconv.ParseInt(fields[i], 10, 64)
		return n
	}
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			i++
			info.Depth = atoi(i)
		case "seldepth":
			i++
			info.SelDepth = atoi(i)
		case "multipv":
			i++
			info.MultiPV = atoi(i)
		case "nodes":
			i++
			info.Nodes = atoi64(i)
		case "nps":
			i++
			info.Nps = atoi64(i)
		case "time":
			i++
			info.Time = atoi(i)
		case "score":
			if i+2 < len(fields) {
				info.Scored = true
				switch fields[i+1] {
				case "cp":
					info.Cp = atoi(i + 2)
				case "mate":
					info.Mate = atoi(i + 2)
				}
				i += 2
			}
		case "pv":
			info.Pv = append([]string(nil), fields[i+1:]...)
			i = len(fields)
		case "string":
			i = len(fields)
		}
	}
	return info, true
}
