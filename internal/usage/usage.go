// Package usage turns a live nethogs trace into per-account bandwidth
// totals.
package usage

import (
	"errors"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrTraceFile means the trace could not be read at all.
var ErrTraceFile = errors.New("cannot read bandwidth trace file")

// lineRe captures the usage columns after the program/pid/user triple of a
// nethogs trace line.
var lineRe = regexp.MustCompile(`.+/.+/\w+[\s\t]+(.+)`)

// Totals sums the traced usage per username. A line counts toward a user
// when it mentions the name anywhere; usage tokens that fail to parse
// contribute 0 rather than failing the query, tolerating sparse or
// truncated logs.
func Totals(tracePath string, users []string) (map[string]float64, error) {
	content, err := os.ReadFile(tracePath)
	if err != nil {
		return nil, ErrTraceFile
	}
	lines := strings.Split(string(content), "\n")

	totals := make(map[string]float64, len(users))
	for _, user := range users {
		var total float64
		for _, line := range lines {
			if !strings.Contains(line, user) {
				continue
			}

			caps := lineRe.FindStringSubmatch(line)
			if caps == nil {
				continue
			}
			for _, tok := range strings.Split(caps[1], "\t") {
				v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
				if err != nil {
					continue
				}
				total += v
			}
		}
		totals[user] = total
	}

	return totals, nil
}
