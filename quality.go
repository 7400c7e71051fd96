package sm2

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strconv"
)

// Quality grades how well the learner recalled an item, from 0 to 5.
type Quality int

const (
	Blackout          Quality = iota // Complete failure to recall.
	Incorrect                        // Wrong, but the answer was recognized.
	IncorrectFamiliar                // Wrong, but the answer felt easy once shown.
	Difficult                        // Correct with serious difficulty.
	Hesitant                         // Correct after hesitation.
	Perfect                          // Correct and effortless.
)

// PassingQuality is the lowest quality counted as a successful recall.
const PassingQuality = Difficult

var (
	qualityNames = [...]string{
		Blackout:          "Blackout",
		Incorrect:         "Incorrect",
		IncorrectFamiliar: "IncorrectFamiliar",
		Difficult:         "Difficult",
		Hesitant:          "Hesitant",
		Perfect:           "Perfect",
	}
	qualityByName = map[string]Quality{
		"Blackout":          Blackout,
		"Incorrect":         Incorrect,
		"IncorrectFamiliar": IncorrectFamiliar,
		"Difficult":         Difficult,
		"Hesitant":          Hesitant,
		"Perfect":           Perfect,
	}
)

// Qualities lists every valid quality in ascending order.
var Qualities = [...]Quality{Blackout, Incorrect, IncorrectFamiliar, Difficult, Hesitant, Perfect}

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Quality(0)
	_ json.Marshaler           = Quality(0)
	_ json.Unmarshaler         = (*Quality)(nil)
	_ encoding.TextMarshaler   = Quality(0)
	_ encoding.TextUnmarshaler = (*Quality)(nil)
)

// ParseQuality parses a quality name ("Hesitant") or digit ("4").
func ParseQuality(s string) (Quality, error) {
	var q Quality
	if err := q.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return q, nil
}

// String returns the name of the quality. For invalid values it returns "Quality(n)".
func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// IsValid reports whether q is within [Blackout, Perfect].
func (q Quality) IsValid() bool {
	return q >= Blackout && q <= Perfect
}

// Passed reports whether q counts as a successful recall.
func (q Quality) Passed() bool {
	return q >= PassingQuality
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	if !q.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}
	return []byte(qualityNames[q]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Both names and the digits "0" through "5" are accepted.
func (q *Quality) UnmarshalText(text []byte) error {
	if v, ok := qualityByName[string(text)]; ok {
		*q = v
		return nil
	}
	n, err := strconv.Atoi(string(text))
	if err != nil || !Quality(n).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuality, text)
	}
	*q = Quality(n)
	return nil
}

// MarshalJSON implements json.Marshaler. Quality serializes as a JSON string.
func (q Quality) MarshalJSON() ([]byte, error) {
	text, err := q.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (q *Quality) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidQuality, data)
	}
	return q.UnmarshalText([]byte(s))
}
