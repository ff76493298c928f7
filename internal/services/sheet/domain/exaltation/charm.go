package exaltation

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/ability"
)

var (
	ErrCharmInvalid        = apperrors.New(apperrors.CodeCharmInvalid, "charm definition is incomplete")
	ErrCharmDuplicate      = apperrors.New(apperrors.CodeCharmDuplicate, "charm already known")
	ErrCharmNotFound       = apperrors.New(apperrors.CodeCharmNotFound, "charm not known")
	ErrCharmWrongExaltType = apperrors.New(apperrors.CodeCharmWrongExaltType, "charm belongs to another exalt type")
	ErrCharmPrerequisites  = apperrors.New(apperrors.CodeCharmPrerequisites, "charm prerequisites not met")
)

// Charm is a supernatural power tied to an exalt type and an ability.
type Charm struct {
	Name        string       `json:"name" yaml:"name"`
	Type        Type         `json:"type" yaml:"type"`
	Ability     ability.Name `json:"ability" yaml:"ability"`
	MinAbility  int          `json:"min_ability" yaml:"min_ability"`
	MinEssence  int          `json:"min_essence" yaml:"min_essence"`
	Cost        string       `json:"cost,omitempty" yaml:"cost,omitempty"`
	Keywords    []string     `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
}

// Check reports a charm with a missing or out-of-range field.
func (c Charm) Check() error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return ErrCharmInvalid.With("field", "name")
	case !c.Type.Exalted():
		return ErrCharmInvalid.With("charm", c.Name).With("field", "type")
	case !c.Ability.Valid():
		return ErrCharmInvalid.With("charm", c.Name).With("field", "ability")
	case c.MinAbility < 0 || c.MinAbility > ability.MaxDots:
		return ErrCharmInvalid.With("charm", c.Name).With("field", "min_ability")
	case c.MinEssence < 0 || c.MinEssence > MaxEssence:
		return ErrCharmInvalid.With("charm", c.Name).With("field", "min_essence")
	}
	return nil
}

// Clone returns a copy sharing no slices with c.
func (c Charm) Clone() Charm {
	c.Keywords = slices.Clone(c.Keywords)
	return c
}

// CharmNames lists known charms in order.
func (s State) CharmNames() []string {
	if s.Exalt == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.Exalt.Charms))
}

// CheckAddCharm validates learning charm with the given abilities. Solars
// ignore the essence minimum on charms of their supernal ability.
func (s State) CheckAddCharm(charm Charm, abilities ability.Set) error {
	if err := charm.Check(); err != nil {
		return err
	}
	if s.Exalt == nil || s.Exalt.Type != charm.Type {
		return ErrCharmWrongExaltType.With("charm", charm.Name).With("type", string(s.Type()))
	}
	if _, ok := s.Exalt.Charms[charm.Name]; ok {
		return ErrCharmDuplicate.With("charm", charm.Name)
	}
	if abilities.HighestDots(charm.Ability) < charm.MinAbility {
		return ErrCharmPrerequisites.With("charm", charm.Name).
			With("ability", string(charm.Ability)).
			With("min", strconv.Itoa(charm.MinAbility))
	}
	supernal := s.Exalt.Type == Solar && s.Exalt.SupernalAbility == charm.Ability
	if !supernal && s.Exalt.Essence.Rating < charm.MinEssence {
		return ErrCharmPrerequisites.With("charm", charm.Name).
			With("ability", "essence").
			With("min", strconv.Itoa(charm.MinEssence))
	}
	return nil
}

// AddCharm records charm.
func (s *State) AddCharm(charm Charm) error {
	if s.Exalt == nil {
		return ErrInvariant.With("charm", charm.Name)
	}
	if s.Exalt.Charms == nil {
		s.Exalt.Charms = make(map[string]Charm)
	}
	s.Exalt.Charms[charm.Name] = charm.Clone()
	return nil
}

// CheckRemoveCharm validates forgetting name.
func (s State) CheckRemoveCharm(name string) error {
	if s.Exalt == nil {
		return ErrCharmWrongExaltType.With("charm", name).With("type", string(Mortal))
	}
	if _, ok := s.Exalt.Charms[name]; !ok {
		return ErrCharmNotFound.With("charm", name)
	}
	return nil
}

// RemoveCharm forgets name.
func (s *State) RemoveCharm(name string) error {
	if s.Exalt == nil {
		return ErrInvariant.With("charm", name)
	}
	if _, ok := s.Exalt.Charms[name]; !ok {
		return ErrInvariant.With("charm", name)
	}
	delete(s.Exalt.Charms, name)
	return nil
}
