package equipment

import (
	"slices"
	"strings"
)

// Handedness says how a weapon is carried.
type Handedness string

const (
	OneHanded Handedness = "one_handed"
	TwoHanded Handedness = "two_handed"
	Worn      Handedness = "worn"
	Natural   Handedness = "natural"
)

// Valid reports whether h is a known handedness.
func (h Handedness) Valid() bool {
	switch h {
	case OneHanded, TwoHanded, Worn, Natural:
		return true
	}
	return false
}

// WeightClass is the light/medium/heavy category shared by weapons and armor.
type WeightClass string

const (
	Light  WeightClass = "light"
	Medium WeightClass = "medium"
	Heavy  WeightClass = "heavy"
)

// Valid reports whether w is a known weight class.
func (w WeightClass) Valid() bool {
	return w == Light || w == Medium || w == Heavy
}

// UnarmedName is the natural weapon every character starts with.
const UnarmedName = "Unarmed"

// Weapon is an immutable weapon definition.
type Weapon struct {
	Name        string      `json:"name"`
	Handedness  Handedness  `json:"handedness"`
	Weight      WeightClass `json:"weight"`
	Accuracy    int         `json:"accuracy"`
	Damage      int         `json:"damage"`
	Defense     int         `json:"defense"`
	Tags        []string    `json:"tags,omitempty"`
	Artifact    bool        `json:"artifact,omitempty"`
	MinStrength int         `json:"min_strength,omitempty"`
}

// Check reports a definition missing a required field.
func (w Weapon) Check() error {
	switch {
	case strings.TrimSpace(w.Name) == "":
		return ErrWeaponInvalid.With("field", "name")
	case !w.Handedness.Valid():
		return ErrWeaponInvalid.With("weapon", w.Name).With("field", "handedness")
	case !w.Weight.Valid():
		return ErrWeaponInvalid.With("weapon", w.Name).With("field", "weight")
	case w.MinStrength < 0 || w.MinStrength > 5:
		return ErrWeaponInvalid.With("weapon", w.Name).With("field", "min_strength")
	}
	return nil
}

// Equal reports whether two definitions describe the same weapon.
func (w Weapon) Equal(other Weapon) bool {
	return w.Name == other.Name &&
		w.Handedness == other.Handedness &&
		w.Weight == other.Weight &&
		w.Accuracy == other.Accuracy &&
		w.Damage == other.Damage &&
		w.Defense == other.Defense &&
		w.Artifact == other.Artifact &&
		w.MinStrength == other.MinStrength &&
		slices.Equal(w.Tags, other.Tags)
}

// Clone returns a copy that shares no slices with w.
func (w Weapon) Clone() Weapon {
	w.Tags = slices.Clone(w.Tags)
	return w
}

// Unarmed returns the default natural weapon.
func Unarmed() Weapon {
	return Weapon{
		Name:       UnarmedName,
		Handedness: Natural,
		Weight:     Light,
		Accuracy:   4,
		Damage:     7,
		Defense:    0,
		Tags:       []string{"bashing", "brawl", "grappling", "natural"},
	}
}

// WeaponBuilder assembles a Weapon and enforces its required fields on Build.
type WeaponBuilder struct {
	weapon Weapon
}

// NewWeaponBuilder starts a weapon named name.
func NewWeaponBuilder(name string) *WeaponBuilder {
	return &WeaponBuilder{weapon: Weapon{Name: strings.TrimSpace(name)}}
}

func (b *WeaponBuilder) OneHanded() *WeaponBuilder { b.weapon.Handedness = OneHanded; return b }
func (b *WeaponBuilder) TwoHanded() *WeaponBuilder { b.weapon.Handedness = TwoHanded; return b }
func (b *WeaponBuilder) Worn() *WeaponBuilder      { b.weapon.Handedness = Worn; return b }
func (b *WeaponBuilder) Natural() *WeaponBuilder   { b.weapon.Handedness = Natural; return b }

func (b *WeaponBuilder) Weight(weight WeightClass) *WeaponBuilder {
	b.weapon.Weight = weight
	return b
}

// Stats sets accuracy, damage and defense.
func (b *WeaponBuilder) Stats(accuracy, damage, defense int) *WeaponBuilder {
	b.weapon.Accuracy, b.weapon.Damage, b.weapon.Defense = accuracy, damage, defense
	return b
}

func (b *WeaponBuilder) Tag(tags ...string) *WeaponBuilder {
	b.weapon.Tags = append(b.weapon.Tags, tags...)
	return b
}

func (b *WeaponBuilder) Artifact() *WeaponBuilder {
	b.weapon.Artifact = true
	return b
}

func (b *WeaponBuilder) MinStrength(dots int) *WeaponBuilder {
	b.weapon.MinStrength = dots
	return b
}

// Build returns the weapon or ErrWeaponInvalid naming the missing field.
func (b *WeaponBuilder) Build() (Weapon, error) {
	weapon := b.weapon.Clone()
	if err := weapon.Check(); err != nil {
		return Weapon{}, err
	}
	return weapon, nil
}
