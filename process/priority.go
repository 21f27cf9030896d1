package process

import (
	"fmt"
	"strings"
)

// Priority is an OS scheduling priority class.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityLowest
	PriorityBelowNormal
	PriorityAboveNormal
	PriorityHighest
	// PriorityRealtime needs elevated privileges on every supported OS.
	PriorityRealtime
)

var priorityNames = map[Priority]string{
	PriorityLowest:      "lowest",
	PriorityBelowNormal: "below_normal",
	PriorityNormal:      "normal",
	PriorityAboveNormal: "above_normal",
	PriorityHighest:     "highest",
	PriorityRealtime:    "realtime",
}

// String returns the configuration name of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// ParsePriority parses a priority name as written in configuration. Dashes
// and underscores are interchangeable and case is ignored. An empty string
// is normal.
func ParsePriority(s string) (Priority, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if name == "" {
		return PriorityNormal, nil
	}
	for p, n := range priorityNames {
		if n == name {
			return p, nil
		}
	}
	return PriorityNormal, fmt.Errorf("unknown priority %q", s)
}

// niceValues maps priorities onto unix nice values.
var niceValues = map[Priority]int{
	PriorityLowest:      19,
	PriorityBelowNormal: 10,
	PriorityNormal:      0,
	PriorityAboveNormal: -5,
	PriorityHighest:     -10,
	PriorityRealtime:    -20,
}

// priorityFromNice buckets a nice value into the closest priority.
func priorityFromNice(nice int) Priority {
	switch {
	case nice >= 15:
		return PriorityLowest
	case nice >= 5:
		return PriorityBelowNormal
	case nice > -5:
		return PriorityNormal
	case nice > -10:
		return PriorityAboveNormal
	case nice > -20:
		return PriorityHighest
	default:
		return PriorityRealtime
	}
}
