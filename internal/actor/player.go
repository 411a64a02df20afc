package actor

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

type stack struct {
	item  *model.Item
	count int
}

// Player — инвентарь и paperdoll персонажа в памяти процесса.
// Equipping an armor item unequips whatever occupies any of its slots, the
// way the host engine resolves slot overlap.
//
// Thread-safety: RWMutex. Equip runs on the tick goroutine, reads come from the UI.
type Player struct {
	name      string
	stacks    map[model.FormID]*stack
	paperdoll [slot.Count]*model.Item

	mu sync.RWMutex
}

// NewPlayer создаёт пустого персонажа.
func NewPlayer(name string) *Player {
	return &Player{
		name:   name,
		stacks: make(map[model.FormID]*stack),
	}
}

// Name возвращает имя персонажа.
func (p *Player) Name() string {
	return p.name
}

// AddItem добавляет count экземпляров предмета в инвентарь.
func (p *Player) AddItem(item *model.Item, count int) {
	if item == nil || count <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.stacks[item.FormID()]
	if !ok {
		st = &stack{item: item}
		p.stacks[item.FormID()] = st
	}
	st.count += count
}

// RemoveItem убирает count экземпляров; последний экземпляр снимается с персонажа.
func (p *Player) RemoveItem(item *model.Item, count int) {
	if item == nil || count <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.stacks[item.FormID()]
	if !ok {
		return
	}
	st.count -= count
	if st.count > 0 {
		return
	}

	p.unequipLocked(item)
	delete(p.stacks, item.FormID())
}

// Count возвращает количество экземпляров предмета.
func (p *Player) Count(item *model.Item) int {
	if item == nil {
		return 0
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if st, ok := p.stacks[item.FormID()]; ok {
		return st.count
	}
	return 0
}

// Items returns every carried item sorted by form ID.
func (p *Player) Items() []*model.Item {
	p.mu.RLock()
	out := make([]*model.Item, 0, len(p.stacks))
	for _, st := range p.stacks {
		out = append(out, st.item)
	}
	p.mu.RUnlock()

	sortByFormID(out)
	return out
}

// Equip надевает броню. Предмет должен быть в инвентаре.
// Occupants of any overlapping slot are unequipped first.
func (p *Player) Equip(item *model.Item) {
	if item == nil || !item.IsArmor() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.stacks[item.FormID()]; !ok {
		slog.Debug("equip skipped, item not carried", "player", p.name, "item", item.DisplayName())
		return
	}

	for _, s := range item.SlotMask().Slots() {
		if cur := p.paperdoll[s]; cur != nil && cur != item {
			p.unequipLocked(cur)
		}
	}
	for _, s := range item.SlotMask().Slots() {
		p.paperdoll[s] = item
	}
}

// Unequip снимает предмет со всех его слотов.
func (p *Player) Unequip(item *model.Item) {
	if item == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unequipLocked(item)
}

func (p *Player) unequipLocked(item *model.Item) {
	for i, cur := range p.paperdoll {
		if cur == item {
			p.paperdoll[i] = nil
		}
	}
}

// IsWorn reports whether item occupies at least one slot.
func (p *Player) IsWorn(item *model.Item) bool {
	if item == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Contains(p.paperdoll[:], item)
}

// WornItems returns distinct worn items sorted by form ID.
func (p *Player) WornItems() []*model.Item {
	p.mu.RLock()
	seen := make(map[model.FormID]struct{}, slot.Count)
	out := make([]*model.Item, 0, 8)
	for _, it := range p.paperdoll {
		if it == nil {
			continue
		}
		if _, dup := seen[it.FormID()]; dup {
			continue
		}
		seen[it.FormID()] = struct{}{}
		out = append(out, it)
	}
	p.mu.RUnlock()

	sortByFormID(out)
	return out
}

// WornIn returns the item occupying s, or nil.
func (p *Player) WornIn(s slot.Slot) *model.Item {
	if !s.Valid() {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.paperdoll[s]
}

func sortByFormID(items []*model.Item) {
	slices.SortFunc(items, func(a, b *model.Item) int {
		switch {
		case a.FormID() < b.FormID():
			return -1
		case a.FormID() > b.FormID():
			return 1
		}
		return 0
	})
}
