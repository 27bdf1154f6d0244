package table

import (
	"fmt"
	"strings"
)

// Action is a player decision on the playing hand
type Action int

const (
	Hit Action = iota
	Stand
	Surrender
	Split
	Double
)

// Actions lists every action in display order
var Actions = []Action{Hit, Stand, Surrender, Split, Double}

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Surrender:
		return "surrender"
	case Split:
		return "split"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// ParseAction parses a command such as "hit" or "double"
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range Actions {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action: %q", s)
}
