package data

import (
	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

// Form IDs of SampleCatalog items, for cross-package tests.
const (
	SampleIronHelmet   model.FormID = 0x00012E4D
	SampleIronCuirass  model.FormID = 0x00012E49
	SampleIronGauntlet model.FormID = 0x00012E46
	SampleIronBoots    model.FormID = 0x00012E4B
	SampleMageRobe     model.FormID = 0x0010CEE4
	SampleAmulet       model.FormID = 0x0009171B
	SampleIronSword    model.FormID = 0x00012EB7
	SampleIronArrow    model.FormID = 0x0001397D
	SampleCapeHood     model.FormID = 0x01000D62
	SampleCapeCloak    model.FormID = 0x01000D63
)

// SampleCatalog returns a small catalog spread over two files.
// Intended for tests from other packages that need item data.
func SampleCatalog() *model.Catalog {
	defs := []struct {
		id    model.FormID
		name  string
		file  string
		cat   model.Category
		slots slot.Mask
	}{
		{SampleIronHelmet, "Iron Helmet", "Skyrim.esm", model.CategoryArmor, slot.Union(slot.Head, slot.Hair)},
		{SampleIronCuirass, "Iron Armor", "Skyrim.esm", model.CategoryArmor, slot.Body.Bit()},
		{SampleIronGauntlet, "Iron Gauntlets", "Skyrim.esm", model.CategoryArmor, slot.Hands.Bit()},
		{SampleIronBoots, "Iron Boots", "Skyrim.esm", model.CategoryArmor, slot.Feet.Bit()},
		{SampleMageRobe, "Mage Robes", "Skyrim.esm", model.CategoryArmor, slot.Union(slot.Body, slot.Feet)},
		{SampleAmulet, "Amulet of Talos", "Skyrim.esm", model.CategoryArmor, slot.Amulet.Bit()},
		{SampleIronSword, "Iron Sword", "Skyrim.esm", model.CategoryWeapon, 0},
		{SampleIronArrow, "Iron Arrow", "Skyrim.esm", model.CategoryAmmo, 0},
		{SampleCapeHood, "", "Capes.esp", model.CategoryArmor, slot.Union(slot.Head, slot.FX01)},
		{SampleCapeCloak, "Traveler Cloak", "Capes.esp", model.CategoryArmor, slot.Union(slot.Tail, slot.FX01)},
	}

	cat := model.NewCatalog()
	for _, d := range defs {
		item, err := model.NewItem(d.id, d.name, d.file, d.cat, d.slots)
		if err != nil {
			panic(err)
		}
		if err := cat.Add(item); err != nil {
			panic(err)
		}
	}
	return cat
}
