package eventroute

import "fmt"

// Level is the severity of an event. The set is closed.
type Level string

const (
	// LevelInfo marks informational events (navigation, interaction).
	LevelInfo Level = "info"

	// LevelWarning marks events that deserve attention but are not failures.
	LevelWarning Level = "warning"

	// LevelError marks failures, including forwarded uncaught errors.
	LevelError Level = "error"
)

var allLevels = []Level{LevelInfo, LevelWarning, LevelError}

// Levels returns every recognised level in a stable order.
func Levels() []Level {
	out := make([]Level, len(allLevels))
	copy(out, allLevels)
	return out
}

// Valid reports whether l is one of the recognised levels.
func (l Level) Valid() bool {
	switch l {
	case LevelInfo, LevelWarning, LevelError:
		return true
	default:
		return false
	}
}

// String returns the level name.
func (l Level) String() string {
	return string(l)
}

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}
