package remap

import (
	"fmt"
	"slices"

	"github.com/udisondev/armorbench/internal/slot"
)

// Entry — одна запись таблицы: источник → цель (цель slot.Remove = удалить слот).
type Entry struct {
	Source slot.Slot
	Target slot.Slot
}

// String formats the entry as "Slot 32 - Body -> Slot 37 - Feet".
func (e Entry) String() string {
	return fmt.Sprintf("%s -> %s", e.Source.Description(), e.Target.Description())
}

// Table — частичное отображение слот-источник → слот-цель.
// Две записи могут указывать на одну цель; это не ошибка, а повод для
// предупреждения ConflictAnalyzer.
//
// Not safe for concurrent use: owned by one session and mutated on the UI tick.
type Table struct {
	targets map[slot.Slot]slot.Slot
}

// NewTable создаёт пустую таблицу.
func NewTable() *Table {
	return &Table{targets: make(map[slot.Slot]slot.Slot)}
}

// Set maps source to target, overwriting any existing mapping for source.
func (t *Table) Set(source, target slot.Slot) error {
	if !source.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSource, source)
	}
	if !target.ValidTarget() {
		return fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}
	t.targets[source] = target
	return nil
}

// Remove drops the mapping for source. Removing an absent mapping is a no-op.
func (t *Table) Remove(source slot.Slot) {
	delete(t.targets, source)
}

// TargetOf returns the target of source, if mapped.
func (t *Table) TargetOf(source slot.Slot) (slot.Slot, bool) {
	target, ok := t.targets[source]
	return target, ok
}

// SourceMask returns the bits of every mapped source, including sources mapped to Remove.
func (t *Table) SourceMask() slot.Mask {
	var m slot.Mask
	for s := range t.targets {
		m |= s.Bit()
	}
	return m
}

// TargetMask returns the bits of every target, excluding the Remove sentinel.
func (t *Table) TargetMask() slot.Mask {
	var m slot.Mask
	for _, target := range t.targets {
		m |= target.Bit()
	}
	return m
}

// HasRemoveTarget reports whether any source is mapped to slot.Remove.
func (t *Table) HasRemoveTarget() bool {
	for _, target := range t.targets {
		if target == slot.Remove {
			return true
		}
	}
	return false
}

// Len returns the number of mappings.
func (t *Table) Len() int {
	return len(t.targets)
}

// Clear removes every mapping.
func (t *Table) Clear() {
	clear(t.targets)
}

// Entries returns all mappings sorted by source.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.targets))
	for s, target := range t.targets {
		out = append(out, Entry{Source: s, Target: target})
	}
	slices.SortFunc(out, func(a, b Entry) int { return int(a.Source) - int(b.Source) })
	return out
}

// Replace swaps the whole table content for entries (session context change).
func (t *Table) Replace(entries []Entry) error {
	next := make(map[slot.Slot]slot.Slot, len(entries))
	for _, e := range entries {
		if !e.Source.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidSource, e.Source)
		}
		if !e.Target.ValidTarget() {
			return fmt.Errorf("%w: %d", ErrInvalidTarget, e.Target)
		}
		next[e.Source] = e.Target
	}
	t.targets = next
	return nil
}

// Clone returns an independent copy.
func (t *Table) Clone() *Table {
	c := NewTable()
	for s, target := range t.targets {
		c.targets[s] = target
	}
	return c
}

// Apply rewrites an item mask through the table: every mapped source bit is
// cleared and its target bit set (nothing for Remove). Unmapped bits stay.
func (t *Table) Apply(m slot.Mask) slot.Mask {
	out := m
	for s := range t.targets {
		out = out.Without(s)
	}
	for s, target := range t.targets {
		if m.Has(s) {
			out |= target.Bit()
		}
	}
	return out
}
