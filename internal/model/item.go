package model

import (
	"fmt"

	"github.com/udisondev/armorbench/internal/slot"
)

// FormID — идентификатор записи каталога (уникален в пределах процесса).
type FormID uint32

// String formats the ID the way the host engine prints it.
func (id FormID) String() string {
	return fmt.Sprintf("%08X", uint32(id))
}

// Category определяет категорию предмета.
type Category int32

const (
	CategoryArmor Category = iota
	CategoryWeapon
	CategoryAmmo
	CategoryOther
)

// String returns human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryArmor:
		return "Armor"
	case CategoryWeapon:
		return "Weapon"
	case CategoryAmmo:
		return "Ammo"
	case CategoryOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// ParseCategory converts a catalog string ("armor", "weapon", ...) into a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "armor", "Armor":
		return CategoryArmor, nil
	case "weapon", "Weapon":
		return CategoryWeapon, nil
	case "ammo", "Ammo":
		return CategoryAmmo, nil
	case "other", "Other", "":
		return CategoryOther, nil
	default:
		return CategoryOther, fmt.Errorf("unknown item category %q", s)
	}
}

// Item — ссылка на запись каталога (броня, оружие, боеприпасы).
// Каталог владеет предметами; ядро только читает и группирует ссылки.
//
// Item is immutable after construction, so accessors take no locks.
type Item struct {
	formID   FormID
	name     string
	file     string // owning plugin file
	category Category
	slots    slot.Mask // armor only
}

// NewItem создаёт новый предмет с валидацией.
//
// Parameters:
//   - formID: catalog ID (must be non-zero)
//   - name: display name (may be empty)
//   - file: owning file name
//   - category: armor/weapon/ammo/other
//   - slots: slot mask, ignored for non-armor categories
func NewItem(formID FormID, name, file string, category Category, slots slot.Mask) (*Item, error) {
	if formID == 0 {
		return nil, fmt.Errorf("form ID cannot be zero")
	}
	if file == "" {
		return nil, fmt.Errorf("item %s: owning file cannot be empty", formID)
	}
	if category != CategoryArmor {
		slots = 0
	}
	return &Item{
		formID:   formID,
		name:     name,
		file:     file,
		category: category,
		slots:    slots,
	}, nil
}

// FormID возвращает ID записи.
func (i *Item) FormID() FormID { return i.formID }

// Name возвращает имя как оно записано в каталоге (может быть пустым).
func (i *Item) Name() string { return i.name }

// File возвращает имя файла-владельца.
func (i *Item) File() string { return i.file }

// Category возвращает категорию предмета.
func (i *Item) Category() Category { return i.category }

// SlotMask возвращает маску слотов (0 для не-брони).
func (i *Item) SlotMask() slot.Mask { return i.slots }

// IsArmor returns true if this item is armor.
func (i *Item) IsArmor() bool { return i.category == CategoryArmor }

// IsWeapon returns true if this item is a weapon.
func (i *Item) IsWeapon() bool { return i.category == CategoryWeapon }

// IsAmmo returns true if this item is ammunition.
func (i *Item) IsAmmo() bool { return i.category == CategoryAmmo }

// DisplayName returns the name shown in lists.
// Unnamed records render as "<file>:<form id>" so they stay distinguishable.
func (i *Item) DisplayName() string {
	if i.name != "" {
		return i.name
	}
	return fmt.Sprintf("%s:%010x", i.file, uint32(i.formID))
}
