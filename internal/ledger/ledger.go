package ledger

import (
	"encoding/hex"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

// FileStatus — состояние файла-владельца в журнале изменений.
type FileStatus int32

const (
	FileUnchanged FileStatus = iota
	FileChanged              // own change-set recorded
	FileShared               // items touched by another file's change-set
	FileDeleted              // changes deleted, pending restart
)

// String returns human-readable file status.
func (s FileStatus) String() string {
	switch s {
	case FileUnchanged:
		return "Unchanged"
	case FileChanged:
		return "Changed"
	case FileShared:
		return "Shared"
	case FileDeleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// ChangeSetID identifies a recorded change-set; stable for the same source and items.
type ChangeSetID string

// ChangeSet — результат одного apply: файл-источник, изменённые предметы и
// новые маски слотов (только для брони, у которой маска поменялась).
type ChangeSet struct {
	Source    string
	Items     []*model.Item
	Overrides map[model.FormID]slot.Mask
}

// Entry — запись журнала об одном изменённом предмете.
type Entry struct {
	FormID    model.FormID
	File      string // owning file of the item
	Source    string // file whose change-set modified it
	ChangeSet ChangeSetID
	Shared    bool
	Slots     slot.Mask
	HasSlots  bool
}

// Ledger — журнал изменений (modification ledger).
// Отвечает на вопросы "изменён ли предмет" и "какая у него новая маска".
//
// Thread-safety: RWMutex. Written on apply/delete, read every UI refresh.
type Ledger struct {
	entries map[model.FormID]Entry
	changed map[string]struct{}
	shared  map[string]struct{}
	deleted map[string]struct{}

	mu sync.RWMutex
}

// New создаёт пустой журнал.
func New() *Ledger {
	return &Ledger{
		entries: make(map[model.FormID]Entry),
		changed: make(map[string]struct{}),
		shared:  make(map[string]struct{}),
		deleted: make(map[string]struct{}),
	}
}

// Record stores a change-set. Items owned by the source file are recorded as
// exclusive changes, items from other files as shared.
//
// Returns ErrFileDeleted if the source file's changes were deleted in this
// process lifetime, ErrEmptyChangeSet if there is nothing to record.
func (l *Ledger) Record(cs ChangeSet) (ChangeSetID, error) {
	if cs.Source == "" {
		return "", ErrEmptySource
	}

	items := make([]*model.Item, 0, len(cs.Items))
	for _, it := range cs.Items {
		if it != nil {
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		return "", ErrEmptyChangeSet
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, gone := l.deleted[cs.Source]; gone {
		return "", ErrFileDeleted
	}

	id := changeSetID(cs.Source, items)
	for _, it := range items {
		e := Entry{
			FormID:    it.FormID(),
			File:      it.File(),
			Source:    cs.Source,
			ChangeSet: id,
			Shared:    it.File() != cs.Source,
		}
		if m, ok := cs.Overrides[it.FormID()]; ok {
			e.Slots, e.HasSlots = m, true
		} else if prev, ok := l.entries[it.FormID()]; ok && prev.HasSlots {
			e.Slots, e.HasSlots = prev.Slots, true
		}
		l.entries[it.FormID()] = e

		if e.Shared {
			l.shared[it.File()] = struct{}{}
		}
	}
	l.changed[cs.Source] = struct{}{}

	slog.Info("change-set recorded",
		"source", cs.Source,
		"items", len(items),
		"overrides", len(cs.Overrides),
		"changeSet", id)

	return id, nil
}

// IsModified reports whether the item was transformed, exclusively or as part of a shared change-set.
func (l *Ledger) IsModified(item *model.Item) bool {
	if item == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.entries[item.FormID()]
	return ok
}

// IsModifiedExclusive reports whether the item was changed by its own file's change-set.
func (l *Ledger) IsModifiedExclusive(item *model.Item) bool {
	if item == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[item.FormID()]
	return ok && !e.Shared
}

// IsModifiedShared reports whether the item was changed by another file's change-set.
func (l *Ledger) IsModifiedShared(item *model.Item) bool {
	if item == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[item.FormID()]
	return ok && e.Shared
}

// OverrideMask returns the slot mask recorded by a prior transformation.
func (l *Ledger) OverrideMask(item *model.Item) (slot.Mask, bool) {
	if item == nil {
		return 0, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[item.FormID()]
	if !ok || !e.HasSlots {
		return 0, false
	}
	return e.Slots, true
}

// FileStatus returns the ledger state of an owning file.
// Deleted wins over Changed, Changed over Shared.
func (l *Ledger) FileStatus(file string) FileStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.deleted[file]; ok {
		return FileDeleted
	}
	if _, ok := l.changed[file]; ok {
		return FileChanged
	}
	if _, ok := l.shared[file]; ok {
		return FileShared
	}
	return FileUnchanged
}

// DeleteAllChanges marks every change recorded with file as source as deleted.
// The mark cannot be undone in this process: the host only reverts records on restart.
//
// Returns ErrNothingToDelete if the file has no own change-set.
func (l *Ledger) DeleteAllChanges(file string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.deleted[file]; ok {
		return nil
	}
	if _, ok := l.changed[file]; !ok {
		return ErrNothingToDelete
	}
	l.deleted[file] = struct{}{}

	slog.Warn("changes deleted, revert pending restart", "file", file)
	return nil
}

// Entries returns a snapshot of all entries sorted by form ID.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	l.mu.RUnlock()

	slices.SortFunc(out, func(a, b Entry) int {
		switch {
		case a.FormID < b.FormID:
			return -1
		case a.FormID > b.FormID:
			return 1
		}
		return 0
	})
	return out
}

// DeletedFiles returns files whose changes were deleted, sorted.
func (l *Ledger) DeletedFiles() []string {
	l.mu.RLock()
	out := make([]string, 0, len(l.deleted))
	for f := range l.deleted {
		out = append(out, f)
	}
	l.mu.RUnlock()
	slices.Sort(out)
	return out
}

// Restore loads persisted entries at startup. Deletion lasts until restart:
// entries whose source is in deleted are dropped, and the files start clean.
func (l *Ledger) Restore(entries []Entry, deleted []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	gone := make(map[string]struct{}, len(deleted))
	for _, f := range deleted {
		gone[f] = struct{}{}
	}

	dropped := 0
	for _, e := range entries {
		if _, ok := gone[e.Source]; ok {
			dropped++
			continue
		}
		l.entries[e.FormID] = e
		l.changed[e.Source] = struct{}{}
		if e.Shared {
			l.shared[e.File] = struct{}{}
		}
	}

	if dropped > 0 {
		slog.Info("deleted changes reverted", "files", len(gone), "entries", dropped)
	}
}

// changeSetID hashes the source file and the sorted form IDs.
func changeSetID(source string, items []*model.Item) ChangeSetID {
	ids := make([]model.FormID, len(items))
	for i, it := range items {
		ids[i] = it.FormID()
	}
	slices.Sort(ids)

	buf := make([]byte, 0, len(source)+1+len(ids)*9)
	buf = append(buf, source...)
	buf = append(buf, 0)
	for _, id := range ids {
		buf = strconv.AppendUint(buf, uint64(id), 16)
		buf = append(buf, ',')
	}

	sum := blake2b.Sum256(buf)
	return ChangeSetID(hex.EncodeToString(sum[:16]))
}
