// Package ability models abilities: the vanilla list plus Craft (qualified by a
// focus) and Martial Arts (qualified by a style), each rated 0-5 with specialties.
package ability

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
)

// Name identifies an ability.
type Name string

const (
	Archery       Name = "archery"
	Athletics     Name = "athletics"
	Awareness     Name = "awareness"
	Brawl         Name = "brawl"
	Bureaucracy   Name = "bureaucracy"
	Craft         Name = "craft"
	Dodge         Name = "dodge"
	Integrity     Name = "integrity"
	Investigation Name = "investigation"
	Larceny       Name = "larceny"
	Linguistics   Name = "linguistics"
	Lore          Name = "lore"
	MartialArts   Name = "martial_arts"
	Medicine      Name = "medicine"
	Melee         Name = "melee"
	Occult        Name = "occult"
	Performance   Name = "performance"
	Presence      Name = "presence"
	Resistance    Name = "resistance"
	Ride          Name = "ride"
	Sail          Name = "sail"
	Socialize     Name = "socialize"
	Stealth       Name = "stealth"
	Survival      Name = "survival"
	Thrown        Name = "thrown"
	War           Name = "war"
)

const (
	MinDots = 0
	MaxDots = 5
)

var (
	ErrUnknown            = apperrors.New(apperrors.CodeAbilityUnknown, "unknown ability")
	ErrInvalidRating      = apperrors.New(apperrors.CodeAbilityInvalidRating, "ability dots out of range")
	ErrQualifierRequired  = apperrors.New(apperrors.CodeAbilityQualifierRequired, "ability requires a focus or style")
	ErrNotFound           = apperrors.New(apperrors.CodeAbilityNotFound, "ability has no dots")
	ErrDuplicateSpecialty = apperrors.New(apperrors.CodeAbilityDuplicateSpecialty, "specialty already present")
	ErrInvalidSpecialty   = apperrors.New(apperrors.CodeAbilityInvalidSpecialty, "specialty is blank")
	ErrPrerequisites      = apperrors.New(apperrors.CodeAbilityPrerequisites, "ability prerequisites not met")
)

var vanilla = []Name{
	Archery, Athletics, Awareness, Brawl, Bureaucracy, Dodge, Integrity,
	Investigation, Larceny, Linguistics, Lore, Medicine, Melee, Occult,
	Performance, Presence, Resistance, Ride, Sail, Socialize, Stealth,
	Survival, Thrown, War,
}

// VanillaNames lists the abilities that take no qualifier.
func VanillaNames() []Name {
	return slices.Clone(vanilla)
}

// Valid reports whether n names an ability.
func (n Name) Valid() bool {
	return n.Qualified() || slices.Contains(vanilla, n)
}

// Qualified reports whether n needs a focus (Craft) or style (Martial Arts).
func (n Name) Qualified() bool {
	return n == Craft || n == MartialArts
}

// Ref points at one rating: a vanilla ability, a Craft focus, or a Martial Arts style.
type Ref struct {
	Name      Name   `json:"name"`
	Qualifier string `json:"qualifier,omitempty"`
}

// Vanilla returns a reference to an unqualified ability.
func Vanilla(name Name) Ref { return Ref{Name: name} }

// CraftFocus returns a reference to a Craft focus.
func CraftFocus(focus string) Ref { return Ref{Name: Craft, Qualifier: focus} }

// MartialArtsStyle returns a reference to a Martial Arts style.
func MartialArtsStyle(style string) Ref { return Ref{Name: MartialArts, Qualifier: style} }

// String renders the reference as shown on a sheet, e.g. "craft (artifacts)".
func (r Ref) String() string {
	if r.Qualifier == "" {
		return string(r.Name)
	}
	return string(r.Name) + " (" + r.Qualifier + ")"
}

// Check validates the reference shape.
func (r Ref) Check() error {
	if !r.Name.Valid() {
		return ErrUnknown.With("ability", string(r.Name))
	}
	if r.Name.Qualified() && strings.TrimSpace(r.Qualifier) == "" {
		return ErrQualifierRequired.With("ability", string(r.Name))
	}
	if !r.Name.Qualified() && r.Qualifier != "" {
		return ErrUnknown.With("ability", r.String())
	}
	return nil
}

// Rating is the dots and specialties of one ability.
type Rating struct {
	Dots        int      `json:"dots"`
	Specialties []string `json:"specialties,omitempty"`
}

// Set holds every ability rating. Absent entries have zero dots.
type Set struct {
	Vanilla     map[Name]Rating   `json:"vanilla,omitempty"`
	Craft       map[string]Rating `json:"craft,omitempty"`
	MartialArts map[string]Rating `json:"martial_arts,omitempty"`
}

// Get returns the rating behind ref.
func (s Set) Get(ref Ref) Rating {
	var rating Rating
	switch ref.Name {
	case Craft:
		rating = s.Craft[ref.Qualifier]
	case MartialArts:
		rating = s.MartialArts[ref.Qualifier]
	default:
		rating = s.Vanilla[ref.Name]
	}
	rating.Specialties = slices.Clone(rating.Specialties)
	return rating
}

// Dots returns the dots behind ref.
func (s Set) Dots(ref Ref) int {
	return s.Get(ref).Dots
}

// HighestDots returns the best rating among every qualifier of name, or the
// vanilla rating for unqualified names.
func (s Set) HighestDots(name Name) int {
	var pool map[string]Rating
	switch name {
	case Craft:
		pool = s.Craft
	case MartialArts:
		pool = s.MartialArts
	default:
		return s.Vanilla[name].Dots
	}
	best := 0
	for _, rating := range pool {
		best = max(best, rating.Dots)
	}
	return best
}

// CheckSet validates setting ref to dots.
func (s Set) CheckSet(ref Ref, dots int) error {
	if err := ref.Check(); err != nil {
		return err
	}
	if dots < MinDots || dots > MaxDots {
		return ErrInvalidRating.With("ability", ref.String()).With("dots", strconv.Itoa(dots))
	}
	return nil
}

// Set writes dots to ref. Zero dots removes the rating together with its
// specialties, and for Craft or Martial Arts the focus or style itself.
func (s *Set) Set(ref Ref, dots int) {
	if dots == 0 {
		s.delete(ref)
		return
	}
	rating := s.Get(ref)
	rating.Dots = dots
	s.put(ref, rating)
}

// CheckAddSpecialty validates adding specialty to ref.
func (s Set) CheckAddSpecialty(ref Ref, specialty string) error {
	if err := ref.Check(); err != nil {
		return err
	}
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return ErrInvalidSpecialty.With("ability", ref.String())
	}
	rating := s.Get(ref)
	if rating.Dots < 1 {
		return ErrPrerequisites.With("ability", ref.String()).With("specialty", specialty)
	}
	if slices.Contains(rating.Specialties, specialty) {
		return ErrDuplicateSpecialty.With("ability", ref.String()).With("specialty", specialty)
	}
	return nil
}

// AddSpecialty appends specialty to ref.
func (s *Set) AddSpecialty(ref Ref, specialty string) {
	rating := s.Get(ref)
	rating.Specialties = append(rating.Specialties, strings.TrimSpace(specialty))
	s.put(ref, rating)
}

// CheckRemoveSpecialty validates removing specialty from ref.
func (s Set) CheckRemoveSpecialty(ref Ref, specialty string) error {
	if err := ref.Check(); err != nil {
		return err
	}
	if !slices.Contains(s.Get(ref).Specialties, strings.TrimSpace(specialty)) {
		return ErrNotFound.With("ability", ref.String()).With("specialty", specialty)
	}
	return nil
}

// RemoveSpecialty drops specialty from ref.
func (s *Set) RemoveSpecialty(ref Ref, specialty string) {
	rating := s.Get(ref)
	specialty = strings.TrimSpace(specialty)
	rating.Specialties = slices.DeleteFunc(rating.Specialties, func(v string) bool { return v == specialty })
	if len(rating.Specialties) == 0 {
		rating.Specialties = nil
	}
	s.put(ref, rating)
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	return Set{
		Vanilla:     cloneRatings(s.Vanilla),
		Craft:       cloneRatings(s.Craft),
		MartialArts: cloneRatings(s.MartialArts),
	}
}

// Verify reports the first rating that breaks the dot range or specialty rule.
func (s Set) Verify() error {
	check := func(ref Ref, rating Rating) error {
		if err := s.CheckSet(ref, rating.Dots); err != nil {
			return err
		}
		if rating.Dots == 0 && len(rating.Specialties) > 0 {
			return ErrPrerequisites.With("ability", ref.String())
		}
		return nil
	}
	for name, rating := range s.Vanilla {
		if err := check(Vanilla(name), rating); err != nil {
			return err
		}
	}
	for focus, rating := range s.Craft {
		if err := check(CraftFocus(focus), rating); err != nil {
			return err
		}
	}
	for style, rating := range s.MartialArts {
		if err := check(MartialArtsStyle(style), rating); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) put(ref Ref, rating Rating) {
	switch ref.Name {
	case Craft:
		if s.Craft == nil {
			s.Craft = make(map[string]Rating)
		}
		s.Craft[ref.Qualifier] = rating
	case MartialArts:
		if s.MartialArts == nil {
			s.MartialArts = make(map[string]Rating)
		}
		s.MartialArts[ref.Qualifier] = rating
	default:
		if s.Vanilla == nil {
			s.Vanilla = make(map[Name]Rating)
		}
		s.Vanilla[ref.Name] = rating
	}
}

func (s *Set) delete(ref Ref) {
	switch ref.Name {
	case Craft:
		delete(s.Craft, ref.Qualifier)
	case MartialArts:
		delete(s.MartialArts, ref.Qualifier)
	default:
		delete(s.Vanilla, ref.Name)
	}
}

func cloneRatings[K comparable](source map[K]Rating) map[K]Rating {
	if source == nil {
		return nil
	}
	cloned := maps.Clone(source)
	for key, rating := range cloned {
		rating.Specialties = slices.Clone(rating.Specialties)
		cloned[key] = rating
	}
	return cloned
}
