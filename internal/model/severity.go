package model

// Level represents how much attention a change or a whole document needs.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Level int

const (
	// LevelInfo marks a change with little or no legal weight on its own.
	// Examples: a wording tweak that scored no rule beyond the base risk.
	LevelInfo Level = iota

	// LevelLow marks a document whose changes are unlikely to alter obligations.
	LevelLow

	// LevelModerate marks changes that deserve a careful read.
	// Examples: a removed sentence, a rewritten clause without keywords.
	LevelModerate

	// LevelHigh marks changes that likely alter money, liability or exit terms.
	// Examples: a changed amount, a dropped liability clause.
	LevelHigh
)

const (
	// documentHighAbove is the document risk above which the status is high.
	documentHighAbove = 8
	// documentModerateAbove is the document risk above which the status is moderate.
	documentModerateAbove = 3

	// changeHighFrom is the change risk from which a change badge is high.
	changeHighFrom = 7
	// changeModerateFrom is the change risk from which a change badge is moderate.
	changeModerateFrom = 3
)

// String returns a human-readable representation of the level.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelLow:
		return "LOW"
	case LevelModerate:
		return "MODERATE"
	case LevelHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON carries the label.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Label returns the reviewer-facing status line for a document level.
func (l Level) Label() string {
	switch l {
	case LevelHigh:
		return "High Risk Changes"
	case LevelModerate:
		return "Moderate Risk Changes"
	default:
		return "Low Risk"
	}
}

// DocumentLevel maps a document risk sum to a status level.
func DocumentLevel(risk int) Level {
	switch {
	case risk > documentHighAbove:
		return LevelHigh
	case risk > documentModerateAbove:
		return LevelModerate
	default:
		return LevelLow
	}
}

// ChangeLevel maps the risk of a single change to its badge level.
func ChangeLevel(risk int) Level {
	switch {
	case risk >= changeHighFrom:
		return LevelHigh
	case risk >= changeModerateFrom:
		return LevelModerate
	default:
		return LevelInfo
	}
}
