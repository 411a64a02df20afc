package session

import (
	"strings"

	"github.com/udisondev/armorbench/internal/model"
)

// Modifiers — клавиши-модификаторы в момент клика.
type Modifiers struct {
	Ctrl  bool
	Shift bool
}

// Click applies a list click to the selection.
// Plain click toggles item and drops the rest, ctrl keeps the rest, shift
// selects the visible range between item and the last clicked item.
func (s *Session) Click(item *model.Item, mods Modifiers) {
	if item == nil || !s.visible(item.FormID()) {
		return
	}
	id := item.FormID()
	_, was := s.selected[id]

	if !mods.Ctrl {
		clear(s.selected)
	}

	if !mods.Shift {
		if was {
			delete(s.selected, id)
		} else {
			s.selected[id] = struct{}{}
		}
		s.last, s.hasLast = id, true
		return
	}

	if !s.hasLast {
		return
	}
	s.selectRange(id, s.last)
}

// selectRange selects every visible item between a and b inclusive.
func (s *Session) selectRange(a, b model.FormID) {
	inRange := false
	for _, it := range s.items {
		id := it.FormID()
		edge := id == a || id == b
		if edge && (inRange || a == b) {
			s.selected[id] = struct{}{}
			return
		}
		if edge {
			inRange = true
		}
		if inRange {
			s.selected[id] = struct{}{}
		}
	}
}

// SelectSet selects the armor set of item; with keep the current selection stays.
func (s *Session) SelectSet(item *model.Item, keep bool) {
	if !keep {
		clear(s.selected)
	}
	for _, piece := range s.BuildSet(item) {
		s.selected[piece.FormID()] = struct{}{}
	}
}

// ClearSelection drops the selection.
func (s *Session) ClearSelection() {
	clear(s.selected)
	s.hasLast = false
}

// IsSelected reports whether item is selected.
func (s *Session) IsSelected(item *model.Item) bool {
	if item == nil {
		return false
	}
	_, ok := s.selected[item.FormID()]
	return ok
}

// Selected returns selected items in list order.
func (s *Session) Selected() []*model.Item {
	out := make([]*model.Item, 0, len(s.selected))
	for _, it := range s.items {
		if _, ok := s.selected[it.FormID()]; ok {
			out = append(out, it)
		}
	}
	return out
}

// pruneSelection drops selected items that are no longer visible.
func (s *Session) pruneSelection() {
	visible := make(map[model.FormID]struct{}, len(s.items))
	for _, it := range s.items {
		visible[it.FormID()] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := visible[id]; !ok {
			delete(s.selected, id)
		}
	}
	if _, ok := s.selected[s.last]; !ok {
		s.hasLast = false
	}
}

func (s *Session) visible(id model.FormID) bool {
	for _, it := range s.items {
		if it.FormID() == id {
			return true
		}
	}
	return false
}

// SetChecked sets the apply checkbox of item.
func (s *Session) SetChecked(item *model.Item, checked bool) {
	if item == nil {
		return
	}
	if checked {
		delete(s.unchecked, item.FormID())
	} else {
		s.unchecked[item.FormID()] = struct{}{}
	}
	s.analyze()
}

// IsChecked reports whether item takes part in apply.
func (s *Session) IsChecked(item *model.Item) bool {
	if item == nil {
		return false
	}
	_, off := s.unchecked[item.FormID()]
	return !off
}

// EnableAll checks every item, visible or not.
func (s *Session) EnableAll() {
	clear(s.unchecked)
	s.analyze()
}

// DisableAll unchecks every visible item.
func (s *Session) DisableAll() {
	for _, it := range s.items {
		s.unchecked[it.FormID()] = struct{}{}
	}
	s.analyze()
}

// EnableSelected checks selected items.
func (s *Session) EnableSelected() {
	for id := range s.selected {
		delete(s.unchecked, id)
	}
	s.analyze()
}

// DisableSelected unchecks selected items.
func (s *Session) DisableSelected() {
	for id := range s.selected {
		s.unchecked[id] = struct{}{}
	}
	s.analyze()
}

// Checked returns visible checked items in list order: the apply set.
func (s *Session) Checked() []*model.Item {
	out := make([]*model.Item, 0, len(s.items))
	for _, it := range s.items {
		if _, off := s.unchecked[it.FormID()]; !off {
			out = append(out, it)
		}
	}
	return out
}

// BuildSet returns the visible armor from item's file whose display name
// starts with the same word as item's, item itself included.
func (s *Session) BuildSet(item *model.Item) []*model.Item {
	if item == nil || !item.IsArmor() {
		return nil
	}
	stem := setStem(item)

	out := []*model.Item{item}
	for _, it := range s.items {
		if it == item || !it.IsArmor() || it.File() != item.File() {
			continue
		}
		if setStem(it) == stem {
			out = append(out, it)
		}
	}
	return out
}

func setStem(item *model.Item) string {
	name := strings.ToLower(strings.TrimSpace(item.Name()))
	if name == "" {
		return item.DisplayName()
	}
	stem, _, _ := strings.Cut(name, " ")
	return stem
}
