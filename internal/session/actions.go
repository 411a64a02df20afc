package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/armorbench/internal/filter"
	"github.com/udisondev/armorbench/internal/model"
)

// canGive checks the gates shared by give and equip actions.
func (s *Session) canGive() error {
	if s.deps.Host != nil && s.deps.Host.ItemMenuOpen() {
		return ErrModalOpen
	}
	if s.deps.Actor == nil {
		return ErrNoActor
	}
	if s.Source().Kind == filter.SourceWorn {
		return ErrWornSource
	}
	return nil
}

// targets returns the selection, or the whole visible list when nothing is selected.
func (s *Session) targets() []*model.Item {
	if sel := s.Selected(); len(sel) > 0 {
		return sel
	}
	return s.items
}

// Give gives the selected items, or every visible item, to the actor.
func (s *Session) Give() (int, error) {
	if err := s.canGive(); err != nil {
		return 0, err
	}
	items := s.targets()
	for _, it := range items {
		s.throttle.Give(it, false)
	}
	return len(items), nil
}

// Equip unequips the interacted slots, then gives and equips the selected
// items or every visible item. Overlapping equips within a tick are dropped.
// Returns the number of equips scheduled.
func (s *Session) Equip() (int, error) {
	if err := s.canGive(); err != nil {
		return 0, err
	}
	s.throttle.UnequipAll()

	n := 0
	for _, it := range s.targets() {
		if s.throttle.Give(it, true) {
			n++
		}
	}
	return n, nil
}

// EquipOne gives and equips a single item (list double-click).
func (s *Session) EquipOne(item *model.Item) (bool, error) {
	if err := s.canGive(); err != nil {
		return false, err
	}
	return s.throttle.Give(item, true), nil
}

// EquipSet unequips the interacted slots, then gives and equips item's set.
func (s *Session) EquipSet(item *model.Item) (int, error) {
	if err := s.canGive(); err != nil {
		return 0, err
	}
	s.throttle.UnequipAll()

	n := 0
	for _, piece := range s.BuildSet(item) {
		if s.throttle.Give(piece, true) {
			n++
		}
	}
	return n, nil
}

// RemoveGiven takes back everything given since the last mod switch.
func (s *Session) RemoveGiven() error {
	if s.deps.Host != nil && s.deps.Host.ItemMenuOpen() {
		return ErrModalOpen
	}
	s.throttle.RemoveAllGiven()
	return nil
}

// Given returns items given since the last mod switch.
func (s *Session) Given() []*model.Item {
	return s.throttle.Given()
}

// Apply hands the checked items and a remap snapshot to the transformer.
func (s *Session) Apply(ctx context.Context) error {
	if s.deps.Transformer == nil {
		return ErrNoTransformer
	}
	if s.mod == "" {
		return ErrNoModSelected
	}
	items := s.Checked()
	if len(items) == 0 {
		return ErrNothingChecked
	}

	req := Request{Source: s.mod, Items: items, Remap: s.table.Clone()}
	if err := s.deps.Transformer.Apply(ctx, req); err != nil {
		return fmt.Errorf("applying changes to %s: %w", s.mod, err)
	}

	if s.opts.AutoDeleteGiven {
		s.throttle.RemoveAllGiven()
	}
	for k := range HighlightApply {
		s.highlights[k].Touch(s.round)
	}

	slog.Info("changes applied",
		"session", s.id,
		"mod", s.mod,
		"items", len(items),
		"remap", s.table.Len())

	s.Refresh()
	return nil
}

// DeleteChanges deletes every change recorded with file as source.
// confirm must repeat the file name; the deletion holds until restart.
func (s *Session) DeleteChanges(file, confirm string) error {
	if confirm != file {
		return ErrNotConfirmed
	}
	if err := s.deps.Ledger.DeleteAllChanges(file); err != nil {
		return fmt.Errorf("deleting changes of %s: %w", file, err)
	}
	s.Refresh()
	return nil
}
