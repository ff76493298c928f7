// Package exaltation holds the supernatural side of a character: mortal or
// an exalt with a caste, an essence rating with its mote pool, and charms.
package exaltation

import (
	"slices"
	"strconv"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/ability"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/pool"
)

const (
	MinEssence = 1
	MaxEssence = 5
)

var (
	ErrInvalidType          = apperrors.New(apperrors.CodeExaltationInvalidType, "unknown exalt type")
	ErrInvalidCaste         = apperrors.New(apperrors.CodeExaltationInvalidCaste, "caste does not belong to the exalt type")
	ErrUnchanged            = apperrors.New(apperrors.CodeExaltationUnchanged, "exaltation already matches")
	ErrEssenceInvalidRating = apperrors.New(apperrors.CodeEssenceInvalidRating, "essence rating out of range")
	ErrEssenceUnchanged     = apperrors.New(apperrors.CodeEssenceUnchanged, "essence rating already matches")
	ErrWrongExaltType       = apperrors.New(apperrors.CodeEssenceWrongExaltType, "mortals have no essence pool")
	ErrInvariant            = apperrors.New(apperrors.CodeInvariantViolation, "exaltation invariant violated")
)

// Type is an exalt type, or Mortal.
type Type string

const (
	Mortal        Type = "mortal"
	Solar         Type = "solar"
	Lunar         Type = "lunar"
	DragonBlooded Type = "dragon_blooded"
)

// Caste is a caste (or aspect) within an exalt type.
type Caste string

var castes = map[Type][]Caste{
	Solar:         {"dawn", "zenith", "twilight", "night", "eclipse"},
	Lunar:         {"full_moon", "changing_moon", "no_moon", "casteless"},
	DragonBlooded: {"air", "earth", "fire", "water", "wood"},
}

// Exalted reports whether t is an exalt type.
func (t Type) Exalted() bool {
	_, ok := castes[t]
	return ok
}

// Castes lists the castes of t.
func (t Type) Castes() []Caste {
	return slices.Clone(castes[t])
}

// Capacity returns the mote capacity of t at essence rating.
func (t Type) Capacity(rating int) pool.Capacity {
	switch t {
	case Solar:
		return pool.Capacity{Peripheral: 7*rating + 26, Personal: 3*rating + 10}
	case Lunar:
		return pool.Capacity{Peripheral: 4*rating + 34, Personal: rating + 15}
	case DragonBlooded:
		return pool.Capacity{Peripheral: 4*rating + 23, Personal: rating + 11}
	}
	return pool.Capacity{}
}

// Essence is the essence rating and the mote pool it governs.
type Essence struct {
	Rating int        `json:"rating"`
	Motes  pool.Motes `json:"motes"`
}

// Exalt is the exalted half of State.
type Exalt struct {
	Type            Type             `json:"type"`
	Caste           Caste            `json:"caste"`
	SupernalAbility ability.Name     `json:"supernal_ability,omitempty"`
	Essence         Essence          `json:"essence"`
	Charms          map[string]Charm `json:"charms,omitempty"`
}

// State is Mortal when Exalt is nil.
type State struct {
	Exalt *Exalt `json:"exalt,omitempty"`
}

// Type returns the exalt type, Mortal for mortals.
func (s State) Type() Type {
	if s.Exalt == nil {
		return Mortal
	}
	return s.Exalt.Type
}

// EssenceRating returns the essence rating; mortals report 1.
func (s State) EssenceRating() int {
	if s.Exalt == nil {
		return MinEssence
	}
	return s.Exalt.Essence.Rating
}

// Capacity returns the mote capacity at the current rating.
func (s State) Capacity() pool.Capacity {
	if s.Exalt == nil {
		return pool.Capacity{}
	}
	return s.Exalt.Type.Capacity(s.Exalt.Essence.Rating)
}

// Motes returns the mote pool, or ErrWrongExaltType for mortals.
func (s State) Motes() (pool.Motes, error) {
	if s.Exalt == nil {
		return pool.Motes{}, ErrWrongExaltType
	}
	return s.Exalt.Essence.Motes.Clone(), nil
}

// MutableMotes exposes the pool for apply steps. It is nil for mortals.
func (s State) MutableMotes() *pool.Motes {
	if s.Exalt == nil {
		return nil
	}
	return &s.Exalt.Essence.Motes
}

// Target describes the exaltation a character should change to.
type Target struct {
	Type            Type         `json:"type"`
	Caste           Caste        `json:"caste,omitempty"`
	SupernalAbility ability.Name `json:"supernal_ability,omitempty"`
}

// CheckChange validates switching to target.
func (s State) CheckChange(target Target) error {
	switch {
	case target.Type == Mortal:
		if target.Caste != "" || target.SupernalAbility != "" {
			return ErrInvalidCaste.With("type", string(target.Type)).With("caste", string(target.Caste))
		}
		if s.Exalt == nil {
			return ErrUnchanged.With("type", string(Mortal))
		}
		return nil
	case !target.Type.Exalted():
		return ErrInvalidType.With("type", string(target.Type))
	case !slices.Contains(castes[target.Type], target.Caste):
		return ErrInvalidCaste.With("type", string(target.Type)).With("caste", string(target.Caste))
	}
	if target.SupernalAbility != "" {
		if target.Type != Solar || !slices.Contains(ability.VanillaNames(), target.SupernalAbility) {
			return ErrInvalidCaste.With("type", string(target.Type)).With("caste", string(target.Caste))
		}
	}
	if s.Exalt != nil && s.Exalt.Type == target.Type && s.Exalt.Caste == target.Caste &&
		s.Exalt.SupernalAbility == target.SupernalAbility {
		return ErrUnchanged.With("type", string(target.Type))
	}
	return nil
}

// Change switches to target. Becoming an exalt keeps the essence rating when
// already exalted (1 otherwise), refills the pool and drops every charm.
// It returns the names of the commitments it released.
func (s *State) Change(target Target) []string {
	var released []string
	if s.Exalt != nil {
		released = s.Exalt.Essence.Motes.CommitmentNames()
	}
	if target.Type == Mortal {
		s.Exalt = nil
		return released
	}
	rating := MinEssence
	if s.Exalt != nil {
		rating = s.Exalt.Essence.Rating
	}
	s.Exalt = &Exalt{
		Type:            target.Type,
		Caste:           target.Caste,
		SupernalAbility: target.SupernalAbility,
		Essence: Essence{
			Rating: rating,
			Motes:  pool.Full(target.Type.Capacity(rating)),
		},
	}
	return released
}

// CheckSetEssence validates a new essence rating.
func (s State) CheckSetEssence(rating int) error {
	if s.Exalt == nil {
		return ErrWrongExaltType
	}
	if rating < MinEssence || rating > MaxEssence {
		return ErrEssenceInvalidRating.With("rating", strconv.Itoa(rating))
	}
	if rating == s.Exalt.Essence.Rating {
		return ErrEssenceUnchanged.With("rating", strconv.Itoa(rating))
	}
	return nil
}

// SetEssence changes the rating, force-uncommitting every commitment and
// refilling both sub-pools. It returns the released commitment names.
func (s *State) SetEssence(rating int) ([]string, error) {
	if s.Exalt == nil {
		return nil, ErrInvariant.With("operation", "set essence")
	}
	s.Exalt.Essence.Rating = rating
	return s.Exalt.Essence.Motes.Reset(s.Exalt.Type.Capacity(rating)), nil
}

// Clone returns a deep copy.
func (s State) Clone() State {
	if s.Exalt == nil {
		return State{}
	}
	exalt := *s.Exalt
	exalt.Essence.Motes = s.Exalt.Essence.Motes.Clone()
	if s.Exalt.Charms != nil {
		exalt.Charms = make(map[string]Charm, len(s.Exalt.Charms))
		for name, charm := range s.Exalt.Charms {
			exalt.Charms[name] = charm.Clone()
		}
	}
	return State{Exalt: &exalt}
}

// Verify checks type, caste, rating, pool capacity and charm ownership.
func (s State) Verify() error {
	if s.Exalt == nil {
		return nil
	}
	exalt := s.Exalt
	if !exalt.Type.Exalted() || !slices.Contains(castes[exalt.Type], exalt.Caste) {
		return ErrInvariant.With("type", string(exalt.Type))
	}
	if exalt.Essence.Rating < MinEssence || exalt.Essence.Rating > MaxEssence {
		return ErrInvariant.With("essence", strconv.Itoa(exalt.Essence.Rating))
	}
	if err := exalt.Essence.Motes.Verify(s.Capacity()); err != nil {
		return err
	}
	for name, charm := range exalt.Charms {
		if charm.Name != name || charm.Type != exalt.Type {
			return ErrInvariant.With("charm", name)
		}
	}
	return nil
}
