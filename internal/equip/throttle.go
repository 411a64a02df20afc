package equip

import (
	"log/slog"

	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

// Actor — сервис инвентаря персонажа, которым управляет Throttle.
// Throttle is the only writer of the actor's inventory and worn state.
type Actor interface {
	AddItem(item *model.Item, count int)
	RemoveItem(item *model.Item, count int)
	WornItems() []*model.Item
	Equip(item *model.Item)
	Unequip(item *model.Item)
}

// TaskQueue accepts a one-shot action that runs after the current tick.
type TaskQueue interface {
	AddTask(fn func())
}

// Throttle выдаёт предметы персонажу и ограничивает экипировку:
// не более одной попытки надеть предмет на группу пересекающихся слотов за тик.
// The host engine cannot execute several conflicting equips in one tick
// without stacking items in the same slot, so later requests are dropped.
//
// State machine: Idle (recent == 0) → Pending(mask) on first admitted equip,
// back to Idle on Reset.
//
// Not safe for concurrent use: called from the UI tick only. The deferred
// equip itself runs on the task queue.
type Throttle struct {
	actor      Actor
	tasks      TaskQueue
	interacted slot.Mask

	recent slot.Mask
	given  []*model.Item
}

// NewThrottle creates a throttle for actor. interacted limits UnequipAll to
// slots the tool works with; purely cosmetic or physics slots are left alone.
func NewThrottle(actor Actor, tasks TaskQueue, interacted slot.Mask) *Throttle {
	return &Throttle{
		actor:      actor,
		tasks:      tasks,
		interacted: interacted,
	}
}

// Give adds one item to the actor and remembers it for RemoveAllGiven.
// With equip set, an armor item is also scheduled to be equipped unless an
// equip for an overlapping slot was already admitted this tick.
//
// Returns true if an equip action was enqueued.
func (t *Throttle) Give(item *model.Item, equip bool) bool {
	if item == nil || t.actor == nil {
		return false
	}

	t.actor.AddItem(item, 1)
	t.given = append(t.given, item)

	if !equip || !item.IsArmor() {
		return false
	}

	slots := item.SlotMask()
	if slots.Overlaps(t.recent) {
		slog.Debug("equip suppressed this tick",
			"item", item.DisplayName(),
			"slots", slots,
			"recent", t.recent)
		return false
	}
	t.recent |= slots

	actor := t.actor
	t.tasks.AddTask(func() {
		actor.Equip(item)
	})
	return true
}

// UnequipAll unequips every worn armor item that occupies an interacted slot.
func (t *Throttle) UnequipAll() {
	if t.actor == nil {
		return
	}
	for _, it := range t.actor.WornItems() {
		if it == nil || !it.IsArmor() {
			continue
		}
		if !it.SlotMask().Overlaps(t.interacted) {
			continue
		}
		t.actor.Unequip(it)
	}
}

// Reset returns the throttle to Idle. Call it whenever no blocking menu is open.
func (t *Throttle) Reset() {
	t.recent = 0
}

// RemoveAllGiven takes every given item back from the actor and clears the undo list.
func (t *Throttle) RemoveAllGiven() {
	if t.actor != nil {
		for _, it := range t.given {
			t.actor.RemoveItem(it, 1)
		}
	}
	if len(t.given) > 0 {
		slog.Info("given items removed", "count", len(t.given))
	}
	t.given = nil
}

// ForgetGiven clears the undo list without touching the actor.
func (t *Throttle) ForgetGiven() {
	t.given = nil
}

// Given returns a copy of the undo list.
func (t *Throttle) Given() []*model.Item {
	return append([]*model.Item(nil), t.given...)
}

// RecentEquipSlots returns the slots claimed by equips admitted this tick.
func (t *Throttle) RecentEquipSlots() slot.Mask {
	return t.recent
}

// Pending reports whether the throttle is in the Pending state.
func (t *Throttle) Pending() bool {
	return t.recent != 0
}
