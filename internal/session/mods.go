package session

import (
	"log/slog"
	"slices"

	"github.com/udisondev/armorbench/internal/ledger"
)

// ModEntry — строка списка модов.
type ModEntry struct {
	File     string
	Status   ledger.FileStatus
	Selected bool
}

// Mods lists catalog files with their ledger status. With hide-modified on,
// files that are changed, shared or deleted are left out.
func (s *Session) Mods() []ModEntry {
	files := s.deps.Catalog.Files()
	out := make([]ModEntry, 0, len(files))
	for _, f := range files {
		st := s.deps.Ledger.FileStatus(f)
		if s.hideModifiedMods && st != ledger.FileUnchanged {
			continue
		}
		out = append(out, ModEntry{File: f, Status: st, Selected: f == s.mod})
	}
	return out
}

// SetHideModifiedMods toggles hiding modified files in Mods.
func (s *Session) SetHideModifiedMods(hide bool) {
	s.hideModifiedMods = hide
}

// Mod returns the selected mod file, empty if none.
func (s *Session) Mod() string {
	return s.mod
}

// SelectMod switches the mod being edited. An empty file deselects.
// Switching forgets given items, clears the selection, resets sliders and
// remap per options, and starts a new highlight round.
func (s *Session) SelectMod(file string) error {
	if file != "" && !slices.Contains(s.deps.Catalog.Files(), file) {
		return ErrUnknownMod
	}

	s.mod = file
	s.throttle.ForgetGiven()
	s.ClearSelection()

	if s.opts.ResetSliders && s.deps.Transformer != nil {
		s.deps.Transformer.ResetSliders()
	}
	if s.opts.ResetSlotRemap {
		s.drag.Cancel()
		s.table.Clear()
	}
	s.round++

	s.Refresh()

	slog.Debug("mod selected", "session", s.id, "mod", file, "round", s.round)
	return nil
}
