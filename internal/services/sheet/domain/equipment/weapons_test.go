package equipment

import (
	"errors"
	"testing"
)

func mustWeapon(t *testing.T, builder *WeaponBuilder) Weapon {
	t.Helper()
	weapon, err := builder.Build()
	if err != nil {
		t.Fatalf("build weapon: %v", err)
	}
	return weapon
}

func armory(t *testing.T) (Weapons, Weapon, Weapon, Weapon) {
	t.Helper()
	sword := mustWeapon(t, NewWeaponBuilder("Sword").OneHanded().Weight(Medium).Stats(2, 9, 1))
	knife := mustWeapon(t, NewWeaponBuilder("Knife").OneHanded().Weight(Light).Stats(4, 7, 0).Tag("thrown"))
	daiklave := mustWeapon(t, NewWeaponBuilder("Grand Daiklave").TwoHanded().Weight(Heavy).
		Stats(1, 16, -1).Artifact().MinStrength(3))
	weapons := NewWeapons()
	for _, weapon := range []Weapon{sword, knife, daiklave} {
		if err := weapons.CheckAdd(weapon); err != nil {
			t.Fatalf("check add %s: %v", weapon.Name, err)
		}
		weapons.Add(weapon)
	}
	return weapons, sword, knife, daiklave
}

func equip(t *testing.T, weapons *Weapons, name string, hand Hand, strength int) {
	t.Helper()
	if err := weapons.CheckEquip(name, hand, strength); err != nil {
		t.Fatalf("check equip %s: %v", name, err)
	}
	if err := weapons.Equip(name, hand); err != nil {
		t.Fatalf("equip %s: %v", name, err)
	}
	if err := weapons.Verify(); err != nil {
		t.Fatalf("verify after equip %s: %v", name, err)
	}
}

func TestBuilderRequiresFields(t *testing.T) {
	if _, err := NewWeaponBuilder("Axe").Weight(Medium).Build(); !errors.Is(err, ErrWeaponInvalid) {
		t.Fatalf("err = %v, want ErrWeaponInvalid", err)
	}
	if _, err := NewWeaponBuilder(" ").OneHanded().Weight(Light).Build(); !errors.Is(err, ErrWeaponInvalid) {
		t.Fatalf("err = %v, want ErrWeaponInvalid", err)
	}
	if _, err := NewWeaponBuilder("Axe").OneHanded().Build(); !errors.Is(err, ErrWeaponInvalid) {
		t.Fatalf("err = %v, want ErrWeaponInvalid", err)
	}
}

func TestNewWeaponsHoldsUnarmed(t *testing.T) {
	weapons := NewWeapons()
	if !weapons.IsNatural(UnarmedName) {
		t.Fatal("expected Unarmed natural weapon")
	}
	if weapons.Hands.State() != HandsEmpty {
		t.Fatalf("hand state = %s", weapons.Hands.State())
	}
	if err := weapons.CheckUnequip(UnarmedName, ""); !errors.Is(err, ErrWeaponUnequipNatural) {
		t.Fatalf("err = %v, want ErrWeaponUnequipNatural", err)
	}
	if err := weapons.CheckRemove(UnarmedName); !errors.Is(err, ErrWeaponUnequipNatural) {
		t.Fatalf("err = %v, want ErrWeaponUnequipNatural", err)
	}
	if err := weapons.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestTwoHandedVacatesBothHands(t *testing.T) {
	weapons, sword, knife, daiklave := armory(t)
	equip(t, &weapons, sword.Name, MainHand, 3)
	equip(t, &weapons, knife.Name, OffHand, 3)
	if weapons.Hands.State() != HandsBoth {
		t.Fatalf("hand state = %s, want both", weapons.Hands.State())
	}

	equip(t, &weapons, daiklave.Name, "", 3)
	if weapons.Hands.State() != HandsTwoHanded {
		t.Fatalf("hand state = %s, want two_handed", weapons.Hands.State())
	}
	if weapons.Unequipped[sword.Name] != 1 || weapons.Unequipped[knife.Name] != 1 {
		t.Fatalf("unequipped = %v", weapons.Unequipped)
	}
	if weapons.Hands.Main != "" || weapons.Hands.Off != "" {
		t.Fatalf("hands = %+v", weapons.Hands)
	}
}

func TestOneHandedDisplacesOccupant(t *testing.T) {
	weapons, sword, knife, daiklave := armory(t)
	equip(t, &weapons, daiklave.Name, "", 5)
	equip(t, &weapons, sword.Name, OffHand, 5)
	if weapons.Hands.State() != HandsOffOnly {
		t.Fatalf("hand state = %s", weapons.Hands.State())
	}
	if weapons.Unequipped[daiklave.Name] != 1 {
		t.Fatal("expected two-handed weapon back in storage")
	}
	equip(t, &weapons, knife.Name, OffHand, 5)
	if weapons.Hands.Off != knife.Name || weapons.Unequipped[sword.Name] != 1 {
		t.Fatalf("hands = %+v unequipped = %v", weapons.Hands, weapons.Unequipped)
	}
}

func TestCheckEquipRejections(t *testing.T) {
	weapons, sword, _, daiklave := armory(t)
	tests := []struct {
		name   string
		weapon string
		hand   Hand
		str    int
		want   error
	}{
		{name: "missing", weapon: "Bow", hand: MainHand, str: 5, want: ErrWeaponNotFound},
		{name: "natural", weapon: UnarmedName, str: 5, want: ErrWeaponAlreadyEquipped},
		{name: "no hand", weapon: sword.Name, str: 5, want: ErrWeaponInvalidHand},
		{name: "hand on two-handed", weapon: daiklave.Name, hand: MainHand, str: 5, want: ErrWeaponInvalidHand},
		{name: "too weak", weapon: daiklave.Name, str: 2, want: ErrWeaponPrerequisites},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := weapons.CheckEquip(tt.weapon, tt.hand, tt.str); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	equip(t, &weapons, sword.Name, MainHand, 1)
	if err := weapons.CheckEquip(sword.Name, OffHand, 1); !errors.Is(err, ErrWeaponAlreadyEquipped) {
		t.Fatalf("err = %v, want ErrWeaponAlreadyEquipped", err)
	}
	if err := weapons.CheckRemove(sword.Name); !errors.Is(err, ErrWeaponAlreadyEquipped) {
		t.Fatalf("err = %v, want ErrWeaponAlreadyEquipped", err)
	}
}

func TestUnequipAndRemove(t *testing.T) {
	weapons, sword, knife, _ := armory(t)
	equip(t, &weapons, sword.Name, MainHand, 1)
	if err := weapons.CheckUnequip(knife.Name, ""); !errors.Is(err, ErrWeaponNotEquipped) {
		t.Fatalf("err = %v, want ErrWeaponNotEquipped", err)
	}
	if err := weapons.CheckUnequip(sword.Name, OffHand); !errors.Is(err, ErrWeaponNotEquipped) {
		t.Fatalf("err = %v, want ErrWeaponNotEquipped", err)
	}
	if err := weapons.CheckUnequip(sword.Name, ""); err != nil {
		t.Fatalf("check unequip: %v", err)
	}
	if err := weapons.Unequip(sword.Name, ""); err != nil {
		t.Fatalf("unequip: %v", err)
	}
	if err := weapons.CheckRemove(sword.Name); err != nil {
		t.Fatalf("check remove: %v", err)
	}
	if err := weapons.Remove(sword.Name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := weapons.Def(sword.Name); ok {
		t.Fatal("expected definition to go with the last copy")
	}
	if err := weapons.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestWornWeapons(t *testing.T) {
	weapons := NewWeapons()
	claws := mustWeapon(t, NewWeaponBuilder("Tiger Claws").Worn().Weight(Light).Stats(4, 9, 0))
	weapons.Add(claws)
	equip(t, &weapons, claws.Name, "", 1)
	if weapons.Hands.State() != HandsEmpty || len(weapons.Worn) != 1 {
		t.Fatalf("weapons = %+v", weapons)
	}
	if err := weapons.Unequip(claws.Name, ""); err != nil {
		t.Fatalf("unequip: %v", err)
	}
	if weapons.Worn != nil || weapons.Unequipped[claws.Name] != 1 {
		t.Fatalf("weapons = %+v", weapons)
	}
}

func TestUnequipForStrength(t *testing.T) {
	weapons, sword, _, daiklave := armory(t)
	equip(t, &weapons, daiklave.Name, "", 4)
	if removed := weapons.UnequipForStrength(3); len(removed) != 0 {
		t.Fatalf("removed = %v", removed)
	}
	removed := weapons.UnequipForStrength(2)
	if len(removed) != 1 || removed[0] != daiklave.Name {
		t.Fatalf("removed = %v", removed)
	}
	if weapons.Hands.State() != HandsEmpty || !weapons.IsNatural(UnarmedName) {
		t.Fatalf("weapons = %+v", weapons)
	}
	equip(t, &weapons, sword.Name, MainHand, 1)
	if removed := weapons.UnequipForStrength(1); len(removed) != 0 {
		t.Fatalf("removed = %v", removed)
	}
}

func TestAddDuplicateDefinition(t *testing.T) {
	weapons, sword, _, _ := armory(t)
	if err := weapons.CheckAdd(sword); err != nil {
		t.Fatalf("adding a second copy: %v", err)
	}
	heavier := sword
	heavier.Damage++
	if err := weapons.CheckAdd(heavier); !errors.Is(err, ErrWeaponDuplicate) {
		t.Fatalf("err = %v, want ErrWeaponDuplicate", err)
	}
	if err := weapons.CheckAdd(Unarmed()); !errors.Is(err, ErrWeaponDuplicate) {
		t.Fatalf("err = %v, want ErrWeaponDuplicate", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	weapons, sword, _, _ := armory(t)
	cloned := weapons.Clone()
	equip(t, &cloned, sword.Name, MainHand, 1)
	if weapons.Hands.Main != "" || weapons.Unequipped[sword.Name] != 1 {
		t.Fatal("clone write leaked into original")
	}
}
