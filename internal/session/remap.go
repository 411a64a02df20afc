package session

import (
	"context"
	"fmt"

	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/remap"
	"github.com/udisondev/armorbench/internal/slot"
)

// PickUp starts dragging source; its mapping is revoked immediately.
// Only slots occupied by some listed item can be dragged.
func (s *Session) PickUp(source slot.Slot) error {
	if source.Valid() && !s.report.SourceEnabled(source) {
		return remap.ErrSourceDisabled
	}
	if err := s.drag.PickUp(source); err != nil {
		return err
	}
	s.analyze()
	return nil
}

// Drop commits the drag onto target. Targets outside the handled slots are refused.
func (s *Session) Drop(target slot.Slot) error {
	if err := s.drag.Drop(target, remap.TargetDisabled(target, s.opts.Handled)); err != nil {
		return err
	}
	s.analyze()
	return nil
}

// CancelDrag abandons the current drag.
func (s *Session) CancelDrag() {
	s.drag.Cancel()
}

// Dragging returns the slot being dragged, if any.
func (s *Session) Dragging() (slot.Slot, bool) {
	return s.drag.Dragging()
}

// ClearRemap drops every mapping.
func (s *Session) ClearRemap() {
	s.drag.Cancel()
	s.table.Clear()
	s.analyze()
}

// Remap returns the current mappings sorted by source.
func (s *Session) Remap() []remap.Entry {
	return s.table.Entries()
}

// ItemsInSlot returns visible armor occupying s, after ledger overrides.
func (s *Session) ItemsInSlot(v slot.Slot) []*model.Item {
	return remap.ItemsInSlot(s.items, s.deps.Ledger, v)
}

// SaveRemap persists the remap table under the session ID.
func (s *Session) SaveRemap(ctx context.Context) error {
	if s.deps.RemapStore == nil {
		return ErrNoRemapStore
	}
	if err := s.deps.RemapStore.Save(ctx, s.id, s.table.Entries()); err != nil {
		return fmt.Errorf("saving remap: %w", err)
	}
	return nil
}

// LoadRemap replaces the remap table with the one persisted under the session ID.
func (s *Session) LoadRemap(ctx context.Context) error {
	if s.deps.RemapStore == nil {
		return ErrNoRemapStore
	}
	entries, err := s.deps.RemapStore.Load(ctx, s.id)
	if err != nil {
		return fmt.Errorf("loading remap: %w", err)
	}
	if err := s.table.Replace(entries); err != nil {
		return fmt.Errorf("restoring remap: %w", err)
	}
	s.drag.Cancel()
	s.analyze()
	return nil
}
