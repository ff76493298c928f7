package equipment

import (
	"slices"
	"strconv"
	"strings"
)

// Armor is an immutable armor definition.
type Armor struct {
	Name            string      `json:"name"`
	Weight          WeightClass `json:"weight"`
	Soak            int         `json:"soak"`
	Hardness        int         `json:"hardness"`
	MobilityPenalty int         `json:"mobility_penalty"`
	Tags            []string    `json:"tags,omitempty"`
	Artifact        bool        `json:"artifact,omitempty"`
	Natural         bool        `json:"natural,omitempty"`
	MinStrength     int         `json:"min_strength,omitempty"`
}

// Check reports a definition missing a required field.
func (a Armor) Check() error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return ErrArmorInvalid.With("field", "name")
	case !a.Weight.Valid():
		return ErrArmorInvalid.With("armor", a.Name).With("field", "weight")
	case a.Soak < 0 || a.Hardness < 0 || a.MobilityPenalty < 0:
		return ErrArmorInvalid.With("armor", a.Name).With("field", "stats")
	case a.MinStrength < 0 || a.MinStrength > 5:
		return ErrArmorInvalid.With("armor", a.Name).With("field", "min_strength")
	}
	return nil
}

// Equal reports whether two definitions describe the same armor.
func (a Armor) Equal(other Armor) bool {
	return a.Name == other.Name &&
		a.Weight == other.Weight &&
		a.Soak == other.Soak &&
		a.Hardness == other.Hardness &&
		a.MobilityPenalty == other.MobilityPenalty &&
		a.Artifact == other.Artifact &&
		a.Natural == other.Natural &&
		a.MinStrength == other.MinStrength &&
		slices.Equal(a.Tags, other.Tags)
}

// Clone returns a copy that shares no slices with a.
func (a Armor) Clone() Armor {
	a.Tags = slices.Clone(a.Tags)
	return a
}

// ArmorBuilder assembles an Armor and enforces its required fields on Build.
type ArmorBuilder struct {
	armor Armor
}

// NewArmorBuilder starts an armor named name.
func NewArmorBuilder(name string) *ArmorBuilder {
	return &ArmorBuilder{armor: Armor{Name: strings.TrimSpace(name)}}
}

func (b *ArmorBuilder) Weight(weight WeightClass) *ArmorBuilder {
	b.armor.Weight = weight
	return b
}

// Stats sets soak, hardness and mobility penalty.
func (b *ArmorBuilder) Stats(soak, hardness, mobilityPenalty int) *ArmorBuilder {
	b.armor.Soak, b.armor.Hardness, b.armor.MobilityPenalty = soak, hardness, mobilityPenalty
	return b
}

func (b *ArmorBuilder) Tag(tags ...string) *ArmorBuilder {
	b.armor.Tags = append(b.armor.Tags, tags...)
	return b
}

func (b *ArmorBuilder) Artifact() *ArmorBuilder {
	b.armor.Artifact = true
	return b
}

func (b *ArmorBuilder) Natural() *ArmorBuilder {
	b.armor.Natural = true
	return b
}

func (b *ArmorBuilder) MinStrength(dots int) *ArmorBuilder {
	b.armor.MinStrength = dots
	return b
}

// Build returns the armor or ErrArmorInvalid naming the missing field.
func (b *ArmorBuilder) Build() (Armor, error) {
	armor := b.armor.Clone()
	if err := armor.Check(); err != nil {
		return Armor{}, err
	}
	return armor, nil
}

// ArmorSet holds armor definitions, unequipped inventory, the single worn
// slot and the natural set.
type ArmorSet struct {
	Defs       map[string]Armor `json:"defs,omitempty"`
	Unequipped map[string]int   `json:"unequipped,omitempty"`
	Worn       string           `json:"worn,omitempty"`
	Natural    []string         `json:"natural,omitempty"`
}

// Def returns a copy of the definition named name.
func (s ArmorSet) Def(name string) (Armor, bool) {
	armor, ok := s.Defs[name]
	return armor.Clone(), ok
}

// IsNatural reports whether name is in the natural set.
func (s ArmorSet) IsNatural(name string) bool {
	_, found := slices.BinarySearch(s.Natural, name)
	return found
}

// CheckAdd validates adding one copy of armor.
func (s ArmorSet) CheckAdd(armor Armor) error {
	if err := armor.Check(); err != nil {
		return err
	}
	if existing, ok := s.Defs[armor.Name]; ok && (!existing.Equal(armor) || armor.Natural) {
		return ErrArmorDuplicate.With("armor", armor.Name)
	}
	return nil
}

// Add stores one unequipped copy; natural armor joins the natural set instead.
func (s *ArmorSet) Add(armor Armor) {
	if s.Defs == nil {
		s.Defs = make(map[string]Armor)
	}
	s.Defs[armor.Name] = armor.Clone()
	if armor.Natural {
		s.Natural = insertSorted(s.Natural, armor.Name)
		return
	}
	stash(&s.Unequipped, armor.Name)
}

// CheckRemove validates removing one unequipped copy of name.
func (s ArmorSet) CheckRemove(name string) error {
	if _, ok := s.Defs[name]; !ok {
		return ErrArmorNotFound.With("armor", name)
	}
	if s.IsNatural(name) {
		return ErrArmorUnequipNatural.With("armor", name)
	}
	if s.Unequipped[name] == 0 {
		return ErrArmorAlreadyEquipped.With("armor", name)
	}
	return nil
}

// Remove drops one unequipped copy; the definition goes with the last copy.
func (s *ArmorSet) Remove(name string) error {
	if !take(s.Unequipped, name) {
		return ErrInvariant.With("operation", "remove armor").With("armor", name)
	}
	if s.Unequipped[name] == 0 && s.Worn != name {
		delete(s.Defs, name)
	}
	return nil
}

// CheckEquip validates wearing name given the current Strength.
func (s ArmorSet) CheckEquip(name string, strength int) error {
	armor, ok := s.Defs[name]
	if !ok {
		return ErrArmorNotFound.With("armor", name)
	}
	if armor.Natural || s.Unequipped[name] == 0 {
		return ErrArmorAlreadyEquipped.With("armor", name)
	}
	if armor.MinStrength > strength {
		return ErrArmorPrerequisites.With("armor", name).
			With("attribute", "strength").
			With("min", strconv.Itoa(armor.MinStrength))
	}
	return nil
}

// Equip wears name, returning any previously worn armor to storage.
func (s *ArmorSet) Equip(name string) error {
	if _, ok := s.Defs[name]; !ok || !take(s.Unequipped, name) {
		return ErrInvariant.With("operation", "equip armor").With("armor", name)
	}
	s.takeOff()
	s.Worn = name
	return nil
}

// CheckUnequip validates taking off name.
func (s ArmorSet) CheckUnequip(name string) error {
	if _, ok := s.Defs[name]; !ok {
		return ErrArmorNotFound.With("armor", name)
	}
	if s.IsNatural(name) {
		return ErrArmorUnequipNatural.With("armor", name)
	}
	if s.Worn != name {
		return ErrArmorNotEquipped.With("armor", name)
	}
	return nil
}

// Unequip returns the worn armor to storage.
func (s *ArmorSet) Unequip(name string) error {
	if s.Worn != name || name == "" {
		return ErrInvariant.With("operation", "unequip armor").With("armor", name)
	}
	s.takeOff()
	return nil
}

// UnequipForStrength takes off worn armor whose minimum Strength exceeds strength.
func (s *ArmorSet) UnequipForStrength(strength int) []string {
	if s.Worn == "" || s.Defs[s.Worn].MinStrength <= strength {
		return nil
	}
	removed := []string{s.Worn}
	s.takeOff()
	return removed
}

// Clone returns a deep copy.
func (s ArmorSet) Clone() ArmorSet {
	cloned := s
	if s.Defs != nil {
		cloned.Defs = make(map[string]Armor, len(s.Defs))
		for name, armor := range s.Defs {
			cloned.Defs[name] = armor.Clone()
		}
	}
	cloned.Unequipped = cloneCounts(s.Unequipped)
	cloned.Natural = slices.Clone(s.Natural)
	return cloned
}

// Verify checks that the worn slot and natural set reference matching definitions.
func (s ArmorSet) Verify() error {
	if s.Worn != "" {
		if armor, ok := s.Defs[s.Worn]; !ok || armor.Natural {
			return ErrInvariant.With("armor", s.Worn)
		}
	}
	for _, name := range s.Natural {
		if armor, ok := s.Defs[name]; !ok || !armor.Natural {
			return ErrInvariant.With("armor", name)
		}
	}
	if !slices.IsSorted(s.Natural) {
		return ErrInvariant.With("armor", "natural")
	}
	for name, count := range s.Unequipped {
		if armor, ok := s.Defs[name]; !ok || count <= 0 || armor.Natural {
			return ErrInvariant.With("armor", name)
		}
	}
	for name, armor := range s.Defs {
		if !armor.Natural && s.Worn != name && s.Unequipped[name] == 0 {
			return ErrInvariant.With("armor", name)
		}
	}
	return nil
}

func (s *ArmorSet) takeOff() {
	if s.Worn == "" {
		return
	}
	stash(&s.Unequipped, s.Worn)
	s.Worn = ""
}
