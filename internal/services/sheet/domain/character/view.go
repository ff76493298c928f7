package character

import (
	"errors"
	"sync/atomic"

	"github.com/louisbranch/charsheet/internal/services/sheet/domain/ability"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/attribute"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/equipment"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/exaltation"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/merit"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/pool"
)

// ErrStaleView is the panic value raised when a View is read after the
// snapshot it was built over has been replaced.
var ErrStaleView = errors.New("character view read after its snapshot was replaced")

// Generation counts snapshot replacements. The engine advances it every time
// it publishes a new snapshot.
type Generation struct {
	n atomic.Uint64
}

// Current returns the current generation.
func (g *Generation) Current() uint64 {
	return g.n.Load()
}

// Advance bumps the generation, invalidating outstanding views.
func (g *Generation) Advance() uint64 {
	return g.n.Add(1)
}

// View is a read-only projection over one published Snapshot. Accessors return
// owned copies and panic with ErrStaleView once the snapshot is replaced.
type View struct {
	snapshot   *Snapshot
	generation uint64
	source     *Generation
}

// NewView projects snapshot at the current generation of source. The snapshot
// must not be written to afterwards. A nil source never goes stale.
func NewView(snapshot *Snapshot, source *Generation) View {
	view := View{snapshot: snapshot, source: source}
	if source != nil {
		view.generation = source.Current()
	}
	return view
}

// ViewAt projects snapshot as published at generation. The view is stale
// from the start when source has already moved past generation.
func ViewAt(snapshot *Snapshot, source *Generation, generation uint64) View {
	return View{snapshot: snapshot, generation: generation, source: source}
}

// Valid reports whether the view may still be read.
func (v View) Valid() bool {
	if v.snapshot == nil {
		return false
	}
	return v.source == nil || v.source.Current() == v.generation
}

// Generation returns the generation the view was built at.
func (v View) Generation() uint64 {
	return v.generation
}

func (v View) live() *Snapshot {
	if !v.Valid() {
		panic(ErrStaleView)
	}
	return v.snapshot
}

func (v View) ID() string   { return v.live().ID }
func (v View) Name() string { return v.live().Name }

// Attribute returns the dots of one attribute.
func (v View) Attribute(name attribute.Name) int {
	return v.live().Attributes.Get(name)
}

func (v View) Attributes() attribute.Set { return v.live().Attributes }

// Ability returns the rating behind ref.
func (v View) Ability(ref ability.Ref) ability.Rating {
	return v.live().Abilities.Get(ref)
}

func (v View) Abilities() ability.Set       { return v.live().Abilities.Clone() }
func (v View) Willpower() pool.Willpower    { return v.live().Willpower }
func (v View) Experience() Experience       { return v.live().Experience }
func (v View) Weapons() equipment.Weapons   { return v.live().Weapons.Clone() }
func (v View) Armor() equipment.ArmorSet    { return v.live().Armor.Clone() }
func (v View) Merits() merit.Set            { return v.live().Merits.Clone() }
func (v View) Exaltation() exaltation.State { return v.live().Exaltation.Clone() }

// HasMerit reports whether any merit is named name.
func (v View) HasMerit(name string) bool {
	return v.live().Merits.Has(name)
}

// Snapshot returns an owned deep copy of the projected snapshot.
func (v View) Snapshot() *Snapshot {
	return v.live().Clone()
}
