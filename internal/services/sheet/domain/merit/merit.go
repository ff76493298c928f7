// Package merit models merits keyed by name and optional detail, with
// prerequisite groups checked against attributes and abilities.
package merit

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/ability"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/attribute"
)

// MartialArtist unlocks Martial Arts styles.
const MartialArtist = "Martial Artist"

const (
	MinDots = 0
	MaxDots = 5
)

var (
	ErrInvalid       = apperrors.New(apperrors.CodeMeritInvalid, "merit definition is incomplete")
	ErrInvalidRating = apperrors.New(apperrors.CodeMeritInvalidRating, "merit dots out of range")
	ErrDuplicate     = apperrors.New(apperrors.CodeMeritDuplicate, "merit already present")
	ErrNotFound      = apperrors.New(apperrors.CodeMeritNotFound, "merit not found")
	ErrPrerequisites = apperrors.New(apperrors.CodeMeritPrerequisites, "merit prerequisites not met")
	ErrInvariant     = apperrors.New(apperrors.CodeInvariantViolation, "merit invariant violated")
)

// Kind says how a merit was gained.
type Kind string

const (
	Innate    Kind = "innate"
	Purchased Kind = "purchased"
	Story     Kind = "story"
)

// Valid reports whether k is a known merit kind.
func (k Kind) Valid() bool {
	return k == Innate || k == Purchased || k == Story
}

// Requirement asks for a minimum rating in one attribute or vanilla ability.
type Requirement struct {
	Attribute attribute.Name `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Ability   ability.Name   `json:"ability,omitempty" yaml:"ability,omitempty"`
	Min       int            `json:"min" yaml:"min"`
}

// Met reports whether the traits satisfy r.
func (r Requirement) Met(attributes attribute.Set, abilities ability.Set) bool {
	if r.Attribute != "" {
		return attributes.Get(r.Attribute) >= r.Min
	}
	return abilities.HighestDots(r.Ability) >= r.Min
}

func (r Requirement) check() bool {
	if (r.Attribute == "") == (r.Ability == "") {
		return false
	}
	if r.Attribute != "" && !r.Attribute.Valid() {
		return false
	}
	if r.Ability != "" && !r.Ability.Valid() {
		return false
	}
	return r.Min >= 0 && r.Min <= 5
}

// Merit is one merit on a sheet.
type Merit struct {
	Name          string          `json:"name"`
	Detail        string          `json:"detail,omitempty"`
	Dots          int             `json:"dots"`
	Kind          Kind            `json:"kind"`
	Description   string          `json:"description,omitempty"`
	Prerequisites [][]Requirement `json:"prerequisites,omitempty"`
}

// Key identifies the merit within a set: "name" or "name (detail)".
func (m Merit) Key() string {
	return Key(m.Name, m.Detail)
}

// Key builds a merit key.
func Key(name, detail string) string {
	if detail == "" {
		return name
	}
	return name + " (" + detail + ")"
}

// Check reports a merit with a missing field or out-of-range dots.
func (m Merit) Check() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrInvalid.With("field", "name")
	}
	if !m.Kind.Valid() {
		return ErrInvalid.With("merit", m.Key()).With("field", "kind")
	}
	for _, group := range m.Prerequisites {
		if len(group) == 0 || !allValid(group) {
			return ErrInvalid.With("merit", m.Key()).With("field", "prerequisites")
		}
	}
	if m.Dots < MinDots || m.Dots > MaxDots {
		return ErrInvalidRating.With("merit", m.Key()).With("dots", strconv.Itoa(m.Dots))
	}
	return nil
}

// PrerequisitesMet is true when every group has at least one satisfied requirement.
func (m Merit) PrerequisitesMet(attributes attribute.Set, abilities ability.Set) bool {
	for _, group := range m.Prerequisites {
		if !slices.ContainsFunc(group, func(r Requirement) bool { return r.Met(attributes, abilities) }) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (m Merit) Clone() Merit {
	if m.Prerequisites != nil {
		groups := make([][]Requirement, len(m.Prerequisites))
		for i, group := range m.Prerequisites {
			groups[i] = slices.Clone(group)
		}
		m.Prerequisites = groups
	}
	return m
}

func allValid(group []Requirement) bool {
	for _, r := range group {
		if !r.check() {
			return false
		}
	}
	return true
}

// Builder assembles a Merit and enforces its required fields on Build.
type Builder struct {
	merit Merit
}

// NewBuilder starts a purchased merit named name.
func NewBuilder(name string) *Builder {
	return &Builder{merit: Merit{Name: strings.TrimSpace(name), Kind: Purchased}}
}

func (b *Builder) Detail(detail string) *Builder {
	b.merit.Detail = strings.TrimSpace(detail)
	return b
}

func (b *Builder) Dots(dots int) *Builder {
	b.merit.Dots = dots
	return b
}

func (b *Builder) Kind(kind Kind) *Builder {
	b.merit.Kind = kind
	return b
}

func (b *Builder) Description(text string) *Builder {
	b.merit.Description = text
	return b
}

// RequireAny adds a prerequisite group satisfied by any of requirements.
func (b *Builder) RequireAny(requirements ...Requirement) *Builder {
	b.merit.Prerequisites = append(b.merit.Prerequisites, slices.Clone(requirements))
	return b
}

// Build returns the merit or the first validation error.
func (b *Builder) Build() (Merit, error) {
	merit := b.merit.Clone()
	if err := merit.Check(); err != nil {
		return Merit{}, err
	}
	return merit, nil
}

// Set holds a character's merits by key.
type Set map[string]Merit

// Has reports whether any merit is named name, whatever its detail.
func (s Set) Has(name string) bool {
	for _, merit := range s {
		if merit.Name == name {
			return true
		}
	}
	return false
}

// Keys lists merit keys in order.
func (s Set) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// CheckAdd validates adding merit given the character's traits.
func (s Set) CheckAdd(merit Merit, attributes attribute.Set, abilities ability.Set) error {
	if err := merit.Check(); err != nil {
		return err
	}
	if _, ok := s[merit.Key()]; ok {
		return ErrDuplicate.With("merit", merit.Key())
	}
	if !merit.PrerequisitesMet(attributes, abilities) {
		return ErrPrerequisites.With("merit", merit.Key())
	}
	return nil
}

// Add stores merit.
func (s *Set) Add(merit Merit) {
	if *s == nil {
		*s = make(Set)
	}
	(*s)[merit.Key()] = merit.Clone()
}

// CheckRemove validates removing the merit stored under key.
func (s Set) CheckRemove(key string) error {
	if _, ok := s[key]; !ok {
		return ErrNotFound.With("merit", key)
	}
	return nil
}

// Remove deletes the merit stored under key.
func (s Set) Remove(key string) error {
	if _, ok := s[key]; !ok {
		return ErrInvariant.With("merit", key)
	}
	delete(s, key)
	return nil
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	cloned := make(Set, len(s))
	for key, merit := range s {
		cloned[key] = merit.Clone()
	}
	return cloned
}

// Verify checks every merit is well formed and stored under its own key.
func (s Set) Verify() error {
	for key, merit := range s {
		if merit.Key() != key || merit.Check() != nil {
			return ErrInvariant.With("merit", key)
		}
	}
	return nil
}
