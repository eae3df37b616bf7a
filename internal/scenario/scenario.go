package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/radwaste/internal/dataset"
)

// Onset is the time containment fails and leaching of the glass matrix starts.
type Onset int

const (
	Onset1000 Onset = iota
	Onset2000
	Onset3000
	Onset5000
	numOnsets
)

var onsetYears = [numOnsets]int{1000, 2000, 3000, 5000}

// Completion is the time the glass matrix is fully leached.
type Completion int

const (
	Completion1M Completion = iota
	Completion2M
	Completion5M
	Completion10M
	numCompletions
)

var completionMillions = [numCompletions]int{1, 2, 5, 10}

func Onsets() []Onset { return []Onset{Onset1000, Onset2000, Onset3000, Onset5000} }

func Completions() []Completion {
	return []Completion{Completion1M, Completion2M, Completion5M, Completion10M}
}

func (o Onset) Valid() bool { return o >= 0 && o < numOnsets }

func (o Onset) Years() int {
	if !o.Valid() {
		return 0
	}
	return onsetYears[o]
}

// Code is the short form used in result file names, e.g. "2k".
func (o Onset) Code() string { return fmt.Sprintf("%dk", o.Years()/1000) }

func (o Onset) Label() string { return fmt.Sprintf("%d years", o.Years()) }

func (o Onset) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Onset(%d)", int(o))
	}
	return o.Code()
}

func (c Completion) Valid() bool { return c >= 0 && c < numCompletions }

func (c Completion) Years() int {
	if !c.Valid() {
		return 0
	}
	return completionMillions[c] * 1_000_000
}

func (c Completion) Code() string { return fmt.Sprintf("%dM", c.Years()/1_000_000) }

func (c Completion) Label() string { return fmt.Sprintf("%d Million years", c.Years()/1_000_000) }

func (c Completion) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Completion(%d)", int(c))
	}
	return c.Code()
}

// ParseOnset accepts a year count ("2000"), a code ("2k") or a label ("2000 years").
func ParseOnset(s string) (Onset, error) {
	for _, o := range Onsets() {
		if matches(s, o.Years(), o.Code(), o.Label()) {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: onset %q", dataset.ErrSelectionOutOfRange, s)
}

// ParseCompletion accepts a year count ("5000000"), a code ("5M") or a label
// ("5 Million years").
func ParseCompletion(s string) (Completion, error) {
	for _, c := range Completions() {
		if matches(s, c.Years(), c.Code(), c.Label()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: completion %q", dataset.ErrSelectionOutOfRange, s)
}

func matches(s string, years int, code, label string) bool {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n == years
	}
	return strings.EqualFold(s, code) || strings.EqualFold(s, label)
}

// Key identifies one precomputed scenario.
type Key struct {
	Onset      Onset      `json:"onset"`
	Completion Completion `json:"completion"`
}

func (k Key) Valid() bool { return k.Onset.Valid() && k.Completion.Valid() }

func (k Key) String() string { return "tc" + k.Onset.String() + "_tl" + k.Completion.String() }

// All lists the sixteen scenarios, onset-major.
func All() []Key {
	keys := make([]Key, 0, int(numOnsets)*int(numCompletions))
	for _, o := range Onsets() {
		for _, c := range Completions() {
			keys = append(keys, Key{o, c})
		}
	}
	return keys
}

func (o Onset) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %s", dataset.ErrSelectionOutOfRange, o)
	}
	return []byte(o.Code()), nil
}

func (o *Onset) UnmarshalText(text []byte) error {
	v, err := ParseOnset(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (c Completion) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %s", dataset.ErrSelectionOutOfRange, c)
	}
	return []byte(c.Code()), nil
}

func (c *Completion) UnmarshalText(text []byte) error {
	v, err := ParseCompletion(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
