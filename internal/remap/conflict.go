package remap

import (
	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

// State — производное состояние слота для окна remap (никогда не хранится).
type State int32

const (
	StateUnaffected State = iota
	StateRemapped
	StateUnmappedButAffected // occupied, unhandled, not redirected: silent loss
	StateTargetCollision     // remap traffic lands on an organically occupied slot
)

// String returns human-readable state name.
func (s State) String() string {
	switch s {
	case StateUnaffected:
		return "Unaffected"
	case StateRemapped:
		return "Remapped"
	case StateUnmappedButAffected:
		return "UnmappedButAffected"
	case StateTargetCollision:
		return "TargetCollision"
	default:
		return "Unknown"
	}
}

// IsWarning reports whether the state should be rendered as a warning.
func (s State) IsWarning() bool {
	return s == StateUnmappedButAffected || s == StateTargetCollision
}

// MaskOverrides returns a slot mask recorded by a prior transformation.
type MaskOverrides interface {
	OverrideMask(item *model.Item) (slot.Mask, bool)
}

// EffectiveMask returns the override mask if one is recorded, else the catalog mask.
func EffectiveMask(item *model.Item, overrides MaskOverrides) slot.Mask {
	if overrides != nil {
		if m, ok := overrides.OverrideMask(item); ok {
			return m
		}
	}
	return item.SlotMask()
}

// SlotsUsed unions the effective masks of every armor item in items.
func SlotsUsed(items []*model.Item, overrides MaskOverrides) slot.Mask {
	var used slot.Mask
	for _, it := range items {
		if it == nil || !it.IsArmor() {
			continue
		}
		used |= EffectiveMask(it, overrides)
	}
	return used
}

// Input — исходные данные анализа.
type Input struct {
	Used     slot.Mask // union over the filtered list
	Handled  slot.Mask // slots the transformation recognizes at all
	Affected slot.Mask // slots the pending transformation will alter without remapping
}

// Report — результат анализа конфликтов.
type Report struct {
	Input
	RemappedSrc slot.Mask
	RemappedTar slot.Mask

	Source [slot.Count]State
	Target [slot.Count + 1]State // index slot.Remove is the sentinel row
}

// Analyze derives per-slot conflict states. Precedence is strict, first match wins.
//
// Source column:
//  1. Remapped: slot has an outgoing mapping
//  2. UnmappedButAffected: used, not handled
//  3. TargetCollision: used and targeted by other mappings while not moved away
//  4. Unaffected
//
// Target column: TargetCollision, then Remapped, then Unaffected.
func Analyze(in Input, t *Table) Report {
	r := Report{
		Input:       in,
		RemappedSrc: t.SourceMask(),
		RemappedTar: t.TargetMask(),
	}

	collide := in.Used & (r.RemappedTar &^ r.RemappedSrc)

	for _, s := range slot.Each() {
		switch {
		case r.RemappedSrc.Has(s):
			r.Source[s] = StateRemapped
		case in.Used.Has(s) && !in.Handled.Has(s):
			r.Source[s] = StateUnmappedButAffected
		case collide.Has(s):
			r.Source[s] = StateTargetCollision
		default:
			r.Source[s] = StateUnaffected
		}

		switch {
		case collide.Has(s):
			r.Target[s] = StateTargetCollision
		case r.RemappedTar.Has(s):
			r.Target[s] = StateRemapped
		default:
			r.Target[s] = StateUnaffected
		}
	}

	if t.HasRemoveTarget() {
		r.Target[slot.Remove] = StateRemapped
	}

	return r
}

// SourceEnabled reports whether the source row can be dragged (some item occupies it).
func (r Report) SourceEnabled(s slot.Slot) bool {
	return r.Used.Has(s)
}

// TargetEnabled reports whether the target row accepts drops.
func (r Report) TargetEnabled(s slot.Slot) bool {
	return !TargetDisabled(s, r.Handled)
}

// HasWarnings reports whether any source or target row carries a warning.
func (r Report) HasWarnings() bool {
	for _, st := range r.Source {
		if st.IsWarning() {
			return true
		}
	}
	for _, st := range r.Target {
		if st.IsWarning() {
			return true
		}
	}
	return false
}

// SourceTooltip returns the warning text for a source row, empty if none.
func (r Report) SourceTooltip(s slot.Slot) string {
	if !s.Valid() {
		return ""
	}
	switch r.Source[s] {
	case StateUnmappedButAffected:
		return "Warning: Items in this slot will not be changed unless remapped to another slot."
	case StateTargetCollision:
		return "Warning: Other items are being remapped to this slot.\n" +
			"This will cause conflicts unless this slot is also remapped."
	default:
		return ""
	}
}

// TargetTooltip returns the warning text for a target row, empty if none.
func (r Report) TargetTooltip(s slot.Slot) string {
	if !s.ValidTarget() || r.Target[s] != StateTargetCollision {
		return ""
	}
	return "Warning: Items are being remapped to this slot, but other items are already using this slot."
}

// SlotWarning reports whether some armor item occupies a slot that is neither
// handled nor remapped. Drives the highlight on the "Remap Slots" button.
func SlotWarning(items []*model.Item, overrides MaskOverrides, remappedSrc, handled slot.Mask) bool {
	for _, it := range items {
		if it == nil || !it.IsArmor() {
			continue
		}
		if EffectiveMask(it, overrides)&^handled&^remappedSrc != 0 {
			return true
		}
	}
	return false
}

// ItemsInSlot lists armor items whose effective mask occupies s (the remap window's middle column).
func ItemsInSlot(items []*model.Item, overrides MaskOverrides, s slot.Slot) []*model.Item {
	if !s.Valid() {
		return nil
	}
	var out []*model.Item
	for _, it := range items {
		if it == nil || !it.IsArmor() {
			continue
		}
		if EffectiveMask(it, overrides).Has(s) {
			out = append(out, it)
		}
	}
	return out
}

// Matcher finds a destination record for weapons and ammo.
type Matcher interface {
	FindMatching(item *model.Item) bool
}

// WillBeModified reports whether applying the transformation would touch item.
// Armor is touched if it occupies a remapped or affected slot; weapons and
// ammo if the matcher finds a destination; anything else never.
func WillBeModified(item *model.Item, remappedSrc, affected slot.Mask, matcher Matcher) bool {
	if item == nil {
		return false
	}
	switch item.Category() {
	case model.CategoryArmor:
		return (remappedSrc|affected)&item.SlotMask() != 0
	case model.CategoryWeapon, model.CategoryAmmo:
		return matcher != nil && matcher.FindMatching(item)
	default:
		return false
	}
}
