package sm2

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Stage is a coarse learning stage derived from an item's scheduling state.
type Stage int

const (
	Unreviewed Stage = iota + 1 // Never reviewed.
	Young                       // Reviewed, interval shorter than MatureIntervalDays.
	Mature                      // Interval of at least MatureIntervalDays.
	Mastered                    // Mastery ceiling reached; excluded from selection.
)

// MatureIntervalDays is the interval from which a reviewed item counts as Mature.
const MatureIntervalDays = 21

var (
	stageNames  = [...]string{Unreviewed: "Unreviewed", Young: "Young", Mature: "Mature", Mastered: "Mastered"}
	stageByName = map[string]Stage{
		"Unreviewed": Unreviewed,
		"Young":      Young,
		"Mature":     Mature,
		"Mastered":   Mastered,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Stage(0)
	_ json.Marshaler           = Stage(0)
	_ json.Unmarshaler         = (*Stage)(nil)
	_ encoding.TextMarshaler   = Stage(0)
	_ encoding.TextUnmarshaler = (*Stage)(nil)
)

// StageOf classifies an item. Mastery takes precedence over review history.
func StageOf(it ReviewItem) Stage {
	switch {
	case it.IsMastered():
		return Mastered
	case it.ReviewCount == 0:
		return Unreviewed
	case it.IntervalDays >= MatureIntervalDays:
		return Mature
	default:
		return Young
	}
}

func (s Stage) isValid() bool {
	return s >= Unreviewed && s <= Mastered
}

// String returns the name of the stage. For invalid values it returns "Stage(n)".
func (s Stage) String() string {
	if s.isValid() {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.isValid() {
		return nil, fmt.Errorf("sm2: invalid stage: %d", int(s))
	}
	return []byte(stageNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stage) UnmarshalText(text []byte) error {
	v, ok := stageByName[string(text)]
	if !ok {
		return fmt.Errorf("sm2: invalid stage: %q", text)
	}
	*s = v
	return nil
}

// MarshalJSON implements json.Marshaler. Stage serializes as a JSON string.
func (s Stage) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("sm2: invalid stage: %s", data)
	}
	return s.UnmarshalText([]byte(str))
}
