package filter

import (
	"sort"
	"strings"

	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

// Mode — режим сопоставления слотов.
type Mode int32

const (
	ModeDisabled Mode = iota
	ModeStandard      // any active slot occupied
	ModeReverse       // some active slot absent
	ModeExact         // occupies exactly one active slot and nothing else
)

// String returns human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "Disabled"
	case ModeStandard:
		return "Standard"
	case ModeReverse:
		return "Reverse"
	case ModeExact:
		return "Exact"
	default:
		return "Unknown"
	}
}

// Criteria — параметры фильтра, пересобираются из состояния UI каждый кадр.
type Criteria struct {
	Name            string // case-insensitive substring, empty = any
	ExcludeModified bool
	Mode            Mode
	Bitwise         bool      // combine active slots into one mask before matching
	Active          slot.Mask // checked slot boxes
}

// ModifiedChecker answers whether an item was already transformed.
type ModifiedChecker interface {
	IsModified(item *model.Item) bool
}

// Apply returns the items that pass criteria, stable-sorted by display name
// (case-insensitive). Nil items are skipped; a nil checker treats nothing as modified.
func Apply(items []*model.Item, c Criteria, modified ModifiedChecker) []*model.Item {
	needle := strings.ToLower(c.Name)

	out := make([]*model.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if c.ExcludeModified && modified != nil && modified.IsModified(it) {
			continue
		}
		if needle != "" && it.Name() != "" && !strings.Contains(strings.ToLower(it.Name()), needle) {
			continue
		}
		if c.Mode != ModeDisabled && it.IsArmor() && !MatchSlots(it.SlotMask(), c) {
			continue
		}
		out = append(out, it)
	}

	Sort(out)
	return out
}

// MatchSlots applies the slot rules of c to an item mask.
// Weapons and other non-armor items never reach this check.
func MatchSlots(m slot.Mask, c Criteria) bool {
	if c.Mode == ModeDisabled {
		return true
	}

	// Пустой набор: Reverse истинен для всех (нет активного слота, который
	// мог бы нарушить условие), остальные режимы не совпадают ни с чем.
	if c.Active == 0 {
		return c.Mode == ModeReverse
	}

	if c.Bitwise {
		a := c.Active
		switch c.Mode {
		case ModeExact:
			return m == a
		case ModeReverse:
			return m&a == 0
		default:
			return m&a == a
		}
	}

	for _, s := range c.Active.Slots() {
		bit := s.Bit()
		switch c.Mode {
		case ModeExact:
			if m == bit {
				return true
			}
		case ModeReverse:
			if m&bit == 0 {
				return true
			}
		default:
			if m&bit != 0 {
				return true
			}
		}
	}
	return false
}

// Sort orders items by display name, case-insensitively, keeping input order for ties.
func Sort(items []*model.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].DisplayName()) < strings.ToLower(items[j].DisplayName())
	})
}
