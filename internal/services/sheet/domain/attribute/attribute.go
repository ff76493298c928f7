// Package attribute models the nine character attributes and their dot ranges.
package attribute

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
)

// Name identifies one attribute.
type Name string

const (
	Strength     Name = "strength"
	Dexterity    Name = "dexterity"
	Stamina      Name = "stamina"
	Charisma     Name = "charisma"
	Manipulation Name = "manipulation"
	Appearance   Name = "appearance"
	Perception   Name = "perception"
	Intelligence Name = "intelligence"
	Wits         Name = "wits"
)

const (
	MinDots = 1
	MaxDots = 5
)

var (
	// ErrUnknown indicates a name outside the nine attributes.
	ErrUnknown = apperrors.New(apperrors.CodeAttributeUnknown, "unknown attribute")
	// ErrInvalidRating indicates dots outside [MinDots, MaxDots].
	ErrInvalidRating = apperrors.New(apperrors.CodeAttributeInvalidRating, "attribute dots out of range")
)

// Names lists the attributes in sheet order (physical, social, mental).
func Names() []Name {
	return []Name{
		Strength, Dexterity, Stamina,
		Charisma, Manipulation, Appearance,
		Perception, Intelligence, Wits,
	}
}

// Parse normalizes a user-supplied attribute name.
func Parse(value string) (Name, error) {
	name := Name(strings.ToLower(strings.TrimSpace(value)))
	if !name.Valid() {
		return "", ErrUnknown.With("attribute", value)
	}
	return name, nil
}

// Valid reports whether n is one of the nine attributes.
func (n Name) Valid() bool {
	switch n {
	case Strength, Dexterity, Stamina, Charisma, Manipulation, Appearance, Perception, Intelligence, Wits:
		return true
	}
	return false
}

// Set holds the dots of every attribute. The zero value is not a valid set; use NewSet.
type Set struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Stamina      int `json:"stamina"`
	Charisma     int `json:"charisma"`
	Manipulation int `json:"manipulation"`
	Appearance   int `json:"appearance"`
	Perception   int `json:"perception"`
	Intelligence int `json:"intelligence"`
	Wits         int `json:"wits"`
}

// NewSet returns a set with every attribute at the minimum.
func NewSet() Set {
	var s Set
	for _, name := range Names() {
		*s.field(name) = MinDots
	}
	return s
}

// Get returns the dots of name, or 0 for an unknown name.
func (s Set) Get(name Name) int {
	if p := s.field(name); p != nil {
		return *p
	}
	return 0
}

// CheckSet validates setting name to dots.
func (s Set) CheckSet(name Name, dots int) error {
	if !name.Valid() {
		return ErrUnknown.With("attribute", string(name))
	}
	if dots < MinDots || dots > MaxDots {
		return ErrInvalidRating.With("attribute", string(name)).With("dots", strconv.Itoa(dots))
	}
	return nil
}

// Set writes dots to name. Callers validate with CheckSet first.
func (s *Set) Set(name Name, dots int) {
	if p := s.field(name); p != nil {
		*p = dots
	}
}

// Verify reports the first attribute outside its range.
func (s Set) Verify() error {
	for _, name := range Names() {
		if err := s.CheckSet(name, s.Get(name)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) field(name Name) *int {
	switch name {
	case Strength:
		return &s.Strength
	case Dexterity:
		return &s.Dexterity
	case Stamina:
		return &s.Stamina
	case Charisma:
		return &s.Charisma
	case Manipulation:
		return &s.Manipulation
	case Appearance:
		return &s.Appearance
	case Perception:
		return &s.Perception
	case Intelligence:
		return &s.Intelligence
	case Wits:
		return &s.Wits
	}
	return nil
}
