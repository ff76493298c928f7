package equipment

import (
	"errors"
	"testing"
)

func mustArmor(t *testing.T, builder *ArmorBuilder) Armor {
	t.Helper()
	armor, err := builder.Build()
	if err != nil {
		t.Fatalf("build armor: %v", err)
	}
	return armor
}

func TestArmorWornSlotIsExclusive(t *testing.T) {
	var set ArmorSet
	buff := mustArmor(t, NewArmorBuilder("Buff Jacket").Weight(Light).Stats(3, 0, 0))
	plate := mustArmor(t, NewArmorBuilder("Articulated Plate").Weight(Heavy).Stats(11, 0, 2).MinStrength(3))
	hide := mustArmor(t, NewArmorBuilder("Tough Hide").Weight(Light).Stats(2, 0, 0).Natural())
	for _, armor := range []Armor{buff, plate, hide} {
		if err := set.CheckAdd(armor); err != nil {
			t.Fatalf("check add %s: %v", armor.Name, err)
		}
		set.Add(armor)
	}

	if err := set.Equip(buff.Name); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if err := set.CheckEquip(plate.Name, 2); !errors.Is(err, ErrArmorPrerequisites) {
		t.Fatalf("err = %v, want ErrArmorPrerequisites", err)
	}
	if err := set.CheckEquip(plate.Name, 3); err != nil {
		t.Fatalf("check equip: %v", err)
	}
	if err := set.Equip(plate.Name); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if set.Worn != plate.Name || set.Unequipped[buff.Name] != 1 {
		t.Fatalf("set = %+v", set)
	}
	if err := set.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if err := set.CheckUnequip(hide.Name); !errors.Is(err, ErrArmorUnequipNatural) {
		t.Fatalf("err = %v, want ErrArmorUnequipNatural", err)
	}
	if err := set.CheckUnequip(buff.Name); !errors.Is(err, ErrArmorNotEquipped) {
		t.Fatalf("err = %v, want ErrArmorNotEquipped", err)
	}
	if removed := set.UnequipForStrength(2); len(removed) != 1 || removed[0] != plate.Name {
		t.Fatalf("removed = %v", removed)
	}
	if set.Worn != "" || !set.IsNatural(hide.Name) {
		t.Fatalf("set = %+v", set)
	}
}

func TestArmorRemove(t *testing.T) {
	var set ArmorSet
	buff := mustArmor(t, NewArmorBuilder("Buff Jacket").Weight(Light).Stats(3, 0, 0))
	set.Add(buff)
	if err := set.Equip(buff.Name); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if err := set.CheckRemove(buff.Name); !errors.Is(err, ErrArmorAlreadyEquipped) {
		t.Fatalf("err = %v, want ErrArmorAlreadyEquipped", err)
	}
	if err := set.Unequip(buff.Name); err != nil {
		t.Fatalf("unequip: %v", err)
	}
	if err := set.Remove(buff.Name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(set.Defs) != 0 || len(set.Unequipped) != 0 {
		t.Fatalf("set = %+v", set)
	}
	if err := set.CheckRemove(buff.Name); !errors.Is(err, ErrArmorNotFound) {
		t.Fatalf("err = %v, want ErrArmorNotFound", err)
	}
}

func TestArmorBuilderRequiresWeight(t *testing.T) {
	if _, err := NewArmorBuilder("Robe").Build(); !errors.Is(err, ErrArmorInvalid) {
		t.Fatalf("err = %v, want ErrArmorInvalid", err)
	}
}
