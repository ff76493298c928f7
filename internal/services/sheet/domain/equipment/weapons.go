package equipment

import (
	"slices"
	"strconv"
)

// Hand names a weapon slot for one-handed weapons.
type Hand string

const (
	MainHand Hand = "main"
	OffHand  Hand = "off"
)

// HandState summarizes hand occupancy.
type HandState string

const (
	HandsEmpty     HandState = "empty"
	HandsMainOnly  HandState = "main_hand_only"
	HandsOffOnly   HandState = "off_hand_only"
	HandsBoth      HandState = "both"
	HandsTwoHanded HandState = "two_handed"
)

// Hands holds the weapon names occupying each hand slot. A two-handed weapon
// occupies both hands and excludes Main and Off.
type Hands struct {
	Main      string `json:"main,omitempty"`
	Off       string `json:"off,omitempty"`
	TwoHanded string `json:"two_handed,omitempty"`
}

// State derives the hand state.
func (h Hands) State() HandState {
	switch {
	case h.TwoHanded != "":
		return HandsTwoHanded
	case h.Main != "" && h.Off != "":
		return HandsBoth
	case h.Main != "":
		return HandsMainOnly
	case h.Off != "":
		return HandsOffOnly
	}
	return HandsEmpty
}

// Weapons is the weapon slot machine: definitions, unequipped inventory,
// hand occupancy, the worn set and the natural set.
type Weapons struct {
	Defs       map[string]Weapon `json:"defs,omitempty"`
	Unequipped map[string]int    `json:"unequipped,omitempty"`
	Hands      Hands             `json:"hands"`
	Worn       []string          `json:"worn,omitempty"`
	Natural    []string          `json:"natural,omitempty"`
}

// NewWeapons returns the starting state holding only the Unarmed natural weapon.
func NewWeapons() Weapons {
	var weapons Weapons
	weapons.Add(Unarmed())
	return weapons
}

// Def returns a copy of the definition named name.
func (w Weapons) Def(name string) (Weapon, bool) {
	weapon, ok := w.Defs[name]
	return weapon.Clone(), ok
}

// Equipped lists equipped weapon names, natural ones included, in slot order.
func (w Weapons) Equipped() []string {
	var names []string
	for _, name := range []string{w.Hands.TwoHanded, w.Hands.Main, w.Hands.Off} {
		if name != "" {
			names = append(names, name)
		}
	}
	names = append(names, w.Worn...)
	return append(names, w.Natural...)
}

// IsNatural reports whether name is in the natural set.
func (w Weapons) IsNatural(name string) bool {
	_, found := slices.BinarySearch(w.Natural, name)
	return found
}

// CheckAdd validates adding one copy of weapon to the inventory.
func (w Weapons) CheckAdd(weapon Weapon) error {
	if err := weapon.Check(); err != nil {
		return err
	}
	if existing, ok := w.Defs[weapon.Name]; ok {
		if !existing.Equal(weapon) {
			return ErrWeaponDuplicate.With("weapon", weapon.Name)
		}
		if weapon.Handedness == Natural {
			return ErrWeaponDuplicate.With("weapon", weapon.Name)
		}
	}
	return nil
}

// Add stores one unequipped copy of weapon; natural weapons join the natural set instead.
func (w *Weapons) Add(weapon Weapon) {
	if w.Defs == nil {
		w.Defs = make(map[string]Weapon)
	}
	w.Defs[weapon.Name] = weapon.Clone()
	if weapon.Handedness == Natural {
		w.Natural = insertSorted(w.Natural, weapon.Name)
		return
	}
	stash(&w.Unequipped, weapon.Name)
}

// CheckRemove validates removing one unequipped copy of name.
func (w Weapons) CheckRemove(name string) error {
	if _, ok := w.Defs[name]; !ok {
		return ErrWeaponNotFound.With("weapon", name)
	}
	if w.IsNatural(name) {
		return ErrWeaponUnequipNatural.With("weapon", name)
	}
	if w.Unequipped[name] == 0 {
		return ErrWeaponAlreadyEquipped.With("weapon", name)
	}
	return nil
}

// Remove drops one unequipped copy; the definition goes with the last copy.
func (w *Weapons) Remove(name string) error {
	if !take(w.Unequipped, name) {
		return ErrInvariant.With("operation", "remove weapon").With("weapon", name)
	}
	if w.Unequipped[name] == 0 && !slices.Contains(w.Equipped(), name) {
		delete(w.Defs, name)
	}
	return nil
}

// CheckEquip validates equipping name into hand given the current Strength.
// Only one-handed weapons take a hand.
func (w Weapons) CheckEquip(name string, hand Hand, strength int) error {
	weapon, ok := w.Defs[name]
	if !ok {
		return ErrWeaponNotFound.With("weapon", name)
	}
	if weapon.Handedness == Natural {
		return ErrWeaponAlreadyEquipped.With("weapon", name)
	}
	if w.Unequipped[name] == 0 {
		return ErrWeaponAlreadyEquipped.With("weapon", name)
	}
	switch weapon.Handedness {
	case OneHanded:
		if hand != MainHand && hand != OffHand {
			return ErrWeaponInvalidHand.With("weapon", name).With("hand", string(hand))
		}
	default:
		if hand != "" {
			return ErrWeaponInvalidHand.With("weapon", name).With("hand", string(hand))
		}
	}
	if weapon.MinStrength > strength {
		return ErrWeaponPrerequisites.With("weapon", name).
			With("attribute", "strength").
			With("min", strconv.Itoa(weapon.MinStrength))
	}
	return nil
}

// Equip moves one copy of name out of storage. A two-handed weapon vacates
// both hands and a one-handed weapon displaces the occupant of its hand (or a
// two-handed weapon); displaced weapons return to storage.
func (w *Weapons) Equip(name string, hand Hand) error {
	weapon, ok := w.Defs[name]
	if !ok || !take(w.Unequipped, name) {
		return ErrInvariant.With("operation", "equip weapon").With("weapon", name)
	}
	switch weapon.Handedness {
	case TwoHanded:
		w.vacate(&w.Hands.Main)
		w.vacate(&w.Hands.Off)
		w.vacate(&w.Hands.TwoHanded)
		w.Hands.TwoHanded = name
	case OneHanded:
		w.vacate(&w.Hands.TwoHanded)
		slot := &w.Hands.Main
		if hand == OffHand {
			slot = &w.Hands.Off
		}
		w.vacate(slot)
		*slot = name
	case Worn:
		w.Worn = insertSorted(w.Worn, name)
	default:
		return ErrInvariant.With("operation", "equip weapon").With("weapon", name)
	}
	return nil
}

// CheckUnequip validates unequipping name. An empty hand picks the first slot holding it.
func (w Weapons) CheckUnequip(name string, hand Hand) error {
	if _, ok := w.Defs[name]; !ok {
		return ErrWeaponNotFound.With("weapon", name)
	}
	if w.IsNatural(name) {
		return ErrWeaponUnequipNatural.With("weapon", name)
	}
	if hand != "" && hand != MainHand && hand != OffHand {
		return ErrWeaponInvalidHand.With("weapon", name).With("hand", string(hand))
	}
	if w.locate(name, hand) == slotNone {
		return ErrWeaponNotEquipped.With("weapon", name)
	}
	return nil
}

// Unequip returns name to storage.
func (w *Weapons) Unequip(name string, hand Hand) error {
	switch w.locate(name, hand) {
	case slotTwoHanded:
		w.vacate(&w.Hands.TwoHanded)
	case slotMain:
		w.vacate(&w.Hands.Main)
	case slotOff:
		w.vacate(&w.Hands.Off)
	case slotWorn:
		w.Worn = removeSorted(w.Worn, name)
		stash(&w.Unequipped, name)
	default:
		return ErrInvariant.With("operation", "unequip weapon").With("weapon", name)
	}
	return nil
}

// UnequipForStrength moves every equipped non-natural weapon whose minimum
// Strength exceeds strength back to storage and returns their names.
func (w *Weapons) UnequipForStrength(strength int) []string {
	var removed []string
	tooHeavy := func(name string) bool {
		return name != "" && w.Defs[name].MinStrength > strength
	}
	for _, slot := range []*string{&w.Hands.TwoHanded, &w.Hands.Main, &w.Hands.Off} {
		if tooHeavy(*slot) {
			removed = append(removed, *slot)
			w.vacate(slot)
		}
	}
	for _, name := range slices.Clone(w.Worn) {
		if tooHeavy(name) {
			removed = append(removed, name)
			w.Worn = removeSorted(w.Worn, name)
			stash(&w.Unequipped, name)
		}
	}
	return removed
}

// Clone returns a deep copy.
func (w Weapons) Clone() Weapons {
	cloned := w
	if w.Defs != nil {
		cloned.Defs = make(map[string]Weapon, len(w.Defs))
		for name, weapon := range w.Defs {
			cloned.Defs[name] = weapon.Clone()
		}
	}
	cloned.Unequipped = cloneCounts(w.Unequipped)
	cloned.Worn = slices.Clone(w.Worn)
	cloned.Natural = slices.Clone(w.Natural)
	return cloned
}

// Verify checks slot exclusivity and that every slot holds a weapon of the right kind.
func (w Weapons) Verify() error {
	broken := func(name string) error {
		return ErrInvariant.With("weapon", name)
	}
	if w.Hands.TwoHanded != "" && (w.Hands.Main != "" || w.Hands.Off != "") {
		return broken(w.Hands.TwoHanded)
	}
	expect := map[string]Handedness{}
	if w.Hands.TwoHanded != "" {
		expect[w.Hands.TwoHanded] = TwoHanded
	}
	for _, name := range []string{w.Hands.Main, w.Hands.Off} {
		if name != "" {
			expect[name] = OneHanded
		}
	}
	for _, name := range w.Worn {
		expect[name] = Worn
	}
	for _, name := range w.Natural {
		expect[name] = Natural
	}
	for name, handedness := range expect {
		if weapon, ok := w.Defs[name]; !ok || weapon.Handedness != handedness {
			return broken(name)
		}
	}
	for name, count := range w.Unequipped {
		if weapon, ok := w.Defs[name]; !ok || count <= 0 || weapon.Handedness == Natural {
			return broken(name)
		}
	}
	if !slices.IsSorted(w.Worn) || !slices.IsSorted(w.Natural) {
		return ErrInvariant.With("weapon", "sets")
	}
	for name := range w.Defs {
		if _, ok := expect[name]; !ok && w.Unequipped[name] == 0 {
			return broken(name)
		}
	}
	return nil
}

type slot int

const (
	slotNone slot = iota
	slotTwoHanded
	slotMain
	slotOff
	slotWorn
)

func (w Weapons) locate(name string, hand Hand) slot {
	switch {
	case name == "":
		return slotNone
	case hand == MainHand:
		if w.Hands.Main == name {
			return slotMain
		}
		return slotNone
	case hand == OffHand:
		if w.Hands.Off == name {
			return slotOff
		}
		return slotNone
	case w.Hands.TwoHanded == name:
		return slotTwoHanded
	case w.Hands.Main == name:
		return slotMain
	case w.Hands.Off == name:
		return slotOff
	}
	if _, found := slices.BinarySearch(w.Worn, name); found {
		return slotWorn
	}
	return slotNone
}

func (w *Weapons) vacate(slot *string) {
	if *slot == "" {
		return
	}
	stash(&w.Unequipped, *slot)
	*slot = ""
}
