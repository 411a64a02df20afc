package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/armorbench/internal/equip"
	"github.com/udisondev/armorbench/internal/filter"
	"github.com/udisondev/armorbench/internal/ledger"
	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/remap"
	"github.com/udisondev/armorbench/internal/slot"
)

// Transformer — внешняя трансформация, которой сессия передаёт отмеченные предметы.
type Transformer interface {
	remap.Matcher

	// AffectedSlots returns slots the transformation alters without any remapping.
	AffectedSlots() slot.Mask
	// ResetSliders restores the transformation's numeric settings to defaults.
	ResetSliders()
	Apply(ctx context.Context, req Request) error
}

// Request — одно применение трансформации.
type Request struct {
	Source string        // selected mod file, the change-set source
	Items  []*model.Item // checked items in list order
	Remap  *remap.Table  // snapshot, safe to keep
}

// Host reports the host UI state.
type Host interface {
	// ItemMenuOpen is true while an inventory-like menu blocks giving items.
	ItemMenuOpen() bool
	// GamePaused is true while some menu pauses the game; no tick ends then.
	GamePaused() bool
}

// RemapStore persists remap tables keyed by session ID.
type RemapStore interface {
	Load(ctx context.Context, sessionID uuid.UUID) ([]remap.Entry, error)
	Save(ctx context.Context, sessionID uuid.UUID, entries []remap.Entry) error
}

// Options — политика сессии из конфигурации.
type Options struct {
	ID              uuid.UUID // persisted remap key; zero means a fresh random ID
	Handled         slot.Mask // slots the transformation recognizes
	Interacted      slot.Mask // slots unequipped before equipping a set
	ResetSlotRemap  bool
	ResetSliders    bool
	AutoDeleteGiven bool
	Highlights      bool
}

// Deps — зависимости сессии. Catalog, Ledger and Tasks are required.
type Deps struct {
	Catalog     *model.Catalog
	Ledger      *ledger.Ledger
	Tasks       equip.TaskQueue
	Actor       equip.Actor
	Host        Host
	Transformer Transformer
	RemapStore  RemapStore
}

// FilterState — состояние панели фильтра.
type FilterState struct {
	Name            string
	ExcludeModified bool
	BySlot          bool
	Reverse         bool
	Exact           bool
	Bitwise         bool
	Active          slot.Mask
	AllArmor        bool
	AllWeapons      bool
}

// Criteria converts the panel state into filter criteria.
func (f FilterState) Criteria() filter.Criteria {
	return filter.Criteria{
		Name:            f.Name,
		ExcludeModified: f.ExcludeModified,
		Mode:            filter.ModeFromFlags(f.BySlot, f.Reverse, f.Exact),
		Bitwise:         f.Bitwise,
		Active:          f.Active,
	}
}

// Session — состояние одного окна armorbench: фильтр, выбранный мод,
// таблица ремапа, выделение и отметки предметов.
//
// Not safe for concurrent use: driven by one UI goroutine. Equip actions it
// schedules run on the tick queue.
type Session struct {
	id   uuid.UUID
	opts Options
	deps Deps

	throttle *equip.Throttle
	table    *remap.Table
	drag     *remap.Drag

	filter           FilterState
	mod              string
	hideModifiedMods bool

	items       []*model.Item
	report      remap.Report
	slotWarning bool

	unchecked map[model.FormID]struct{}
	selected  map[model.FormID]struct{}
	last      model.FormID
	hasLast   bool

	round      int64
	highlights [highlightCount]Highlight
}

// New создаёт сессию и строит первый список.
func New(opts Options, deps Deps) (*Session, error) {
	if deps.Catalog == nil || deps.Ledger == nil || deps.Tasks == nil {
		return nil, ErrMissingDependency
	}

	id := opts.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	table := remap.NewTable()
	s := &Session{
		id:        id,
		opts:      opts,
		deps:      deps,
		throttle:  equip.NewThrottle(deps.Actor, deps.Tasks, opts.Interacted),
		table:     table,
		drag:      remap.NewDrag(table),
		unchecked: make(map[model.FormID]struct{}),
		selected:  make(map[model.FormID]struct{}),
	}
	for i := range s.highlights {
		s.highlights[i] = newHighlight()
	}
	s.highlights[HighlightTransform].Show(true)

	s.Refresh()

	slog.Info("session created", "id", s.id, "handled", opts.Handled, "interacted", opts.Interacted)
	return s, nil
}

// ID returns the session ID, the key of its persisted remap table.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Ledger returns the modification ledger the session reads.
func (s *Session) Ledger() *ledger.Ledger {
	return s.deps.Ledger
}

// Filter returns the current filter panel state.
func (s *Session) Filter() FilterState {
	return s.filter
}

// SetFilter replaces the filter state. Any change starts a new highlight round.
func (s *Session) SetFilter(f FilterState) {
	if f != s.filter {
		s.filter = f
		s.round++
	}
	s.Refresh()
}

// Refresh rebuilds the visible list and the conflict report. Call once per frame.
func (s *Session) Refresh() {
	if s.deps.Host == nil || !s.deps.Host.GamePaused() {
		s.throttle.Reset()
	}

	src := filter.SelectSource(s.filter.AllArmor, s.filter.AllWeapons, s.mod)
	var worn filter.WornLister
	if s.deps.Actor != nil {
		worn = s.deps.Actor
	}
	s.items = filter.Apply(filter.Collect(src, s.deps.Catalog, worn), s.filter.Criteria(), s.deps.Ledger)
	s.pruneSelection()
	s.analyze()
}

// analyze recomputes everything derived from the list and the remap table.
func (s *Session) analyze() {
	s.report = remap.Analyze(remap.Input{
		Used:     remap.SlotsUsed(s.items, s.deps.Ledger),
		Handled:  s.opts.Handled,
		Affected: s.affected(),
	}, s.table)

	s.slotWarning = remap.SlotWarning(s.Checked(), s.deps.Ledger, s.report.RemappedSrc, s.opts.Handled)
	s.highlights[HighlightSlots].Show(s.slotWarning)

	apply := true
	for k := range HighlightApply {
		apply = apply && s.highlights[k].Satisfied(s.round)
	}
	s.highlights[HighlightApply].Show(apply)
}

func (s *Session) affected() slot.Mask {
	if s.deps.Transformer == nil {
		return 0
	}
	return s.deps.Transformer.AffectedSlots()
}

// Source returns the list source selected by the browse toggles and the mod.
func (s *Session) Source() filter.Source {
	return filter.SelectSource(s.filter.AllArmor, s.filter.AllWeapons, s.mod)
}

// Items returns the visible list.
func (s *Session) Items() []*model.Item {
	return append([]*model.Item(nil), s.items...)
}

// Report returns the conflict report for the visible list.
func (s *Session) Report() remap.Report {
	return s.report
}

// SlotWarning reports whether a checked item uses a slot that is neither handled nor remapped.
func (s *Session) SlotWarning() bool {
	return s.slotWarning
}

// WillBeModified reports whether applying now would touch item.
func (s *Session) WillBeModified(item *model.Item) bool {
	var matcher remap.Matcher
	if s.deps.Transformer != nil {
		matcher = s.deps.Transformer
	}
	return remap.WillBeModified(item, s.report.RemappedSrc, s.affected(), matcher)
}

// Round returns the current highlight round.
func (s *Session) Round() int64 {
	return s.round
}

// Highlighted reports whether kind should be drawn highlighted.
func (s *Session) Highlighted(kind HighlightKind) bool {
	if !s.opts.Highlights || kind < 0 || kind >= highlightCount {
		return false
	}
	return s.highlights[kind].Lit(s.round)
}

// TouchHighlight marks kind as seen in the current round.
func (s *Session) TouchHighlight(kind HighlightKind) {
	if kind < 0 || kind >= highlightCount {
		return
	}
	s.highlights[kind].Touch(s.round)
	s.analyze()
}
