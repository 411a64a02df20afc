package remap

import (
	"fmt"

	"github.com/udisondev/armorbench/internal/slot"
)

// Drag — состояние drag-and-drop жеста над таблицей.
// Pick-up semantics: as soon as a source is picked up its mapping is revoked,
// so a re-dragged slot shows as unmapped until it is dropped again.
type Drag struct {
	table    *Table
	source   slot.Slot
	dragging bool
}

// NewDrag binds a drag gesture tracker to table.
func NewDrag(table *Table) *Drag {
	return &Drag{table: table}
}

// PickUp starts dragging source and revokes its current mapping.
func (d *Drag) PickUp(source slot.Slot) error {
	if !source.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSource, source)
	}
	d.table.Remove(source)
	d.source = source
	d.dragging = true
	return nil
}

// Dragging returns the slot being dragged, if any.
func (d *Drag) Dragging() (slot.Slot, bool) {
	return d.source, d.dragging
}

// Drop commits the dragged source onto target. A disabled target (a slot the
// transformation does not handle) rejects the drop and keeps the drag alive.
func (d *Drag) Drop(target slot.Slot, disabled bool) error {
	if !d.dragging {
		return ErrNoDrag
	}
	if !target.ValidTarget() {
		return fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}
	if disabled {
		return fmt.Errorf("%w: %s", ErrTargetDisabled, target.Description())
	}
	if err := d.table.Set(d.source, target); err != nil {
		return err
	}
	d.dragging = false
	return nil
}

// Cancel abandons the gesture. The revoked mapping is not restored.
func (d *Drag) Cancel() {
	d.dragging = false
}

// TargetDisabled reports whether target is outside the handled slots.
// The Remove sentinel is always a valid drop target.
func TargetDisabled(target slot.Slot, handled slot.Mask) bool {
	if target == slot.Remove {
		return false
	}
	return !handled.Has(target)
}
