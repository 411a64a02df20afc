package equip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armorbench/internal/actor"
	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
	"github.com/udisondev/armorbench/internal/tick"
)

func newArmor(t *testing.T, id model.FormID, mask slot.Mask) *model.Item {
	t.Helper()
	it, err := model.NewItem(id, "armor", "Test.esp", model.CategoryArmor, mask)
	require.NoError(t, err)
	return it
}

func setup(t *testing.T) (*Throttle, *actor.Player, *tick.Queue) {
	t.Helper()
	p := actor.NewPlayer("Dovahkiin")
	q := tick.NewQueue()
	return NewThrottle(p, q, slot.Union(slot.Head, slot.Body, slot.Hands, slot.Feet)), p, q
}

func TestThrottle_SuppressesSecondEquipInTick(t *testing.T) {
	th, p, q := setup(t)
	item1 := newArmor(t, 1, slot.Body.Bit())
	item2 := newArmor(t, 2, slot.Body.Bit())

	assert.True(t, th.Give(item1, true))
	assert.False(t, th.Give(item2, true), "overlapping equip dropped")
	assert.Equal(t, 1, q.Pending())
	assert.Equal(t, 1, p.Count(item2), "suppressed item is still given")
	assert.True(t, th.Pending())

	th.Reset()
	assert.False(t, th.Pending())
	assert.True(t, th.Give(item2, true), "eligible again after reset")
	assert.Equal(t, 2, q.Pending())

	q.Advance()
	assert.Same(t, item2, p.WornIn(slot.Body), "last admitted equip wins")
}

func TestThrottle_NonOverlappingGroupsBothAdmitted(t *testing.T) {
	th, p, q := setup(t)
	helm := newArmor(t, 1, slot.Head.Bit())
	boots := newArmor(t, 2, slot.Feet.Bit())
	robe := newArmor(t, 3, slot.Union(slot.Body, slot.Feet))

	assert.True(t, th.Give(helm, true))
	assert.True(t, th.Give(boots, true))
	assert.False(t, th.Give(robe, true), "robe overlaps boots")
	assert.Equal(t, slot.Union(slot.Head, slot.Feet), th.RecentEquipSlots())

	assert.False(t, p.IsWorn(helm), "equip is deferred until the tick ends")
	q.Advance()
	assert.True(t, p.IsWorn(helm))
	assert.True(t, p.IsWorn(boots))
	assert.False(t, p.IsWorn(robe))
}

func TestThrottle_GiveWithoutEquip(t *testing.T) {
	th, p, q := setup(t)
	helm := newArmor(t, 1, slot.Head.Bit())
	sword, err := model.NewItem(2, "Sword", "Test.esp", model.CategoryWeapon, 0)
	require.NoError(t, err)

	assert.False(t, th.Give(helm, false))
	assert.False(t, th.Give(sword, true), "weapons are given, never equipped")
	assert.False(t, th.Give(nil, true))

	assert.Equal(t, 0, q.Pending())
	assert.Equal(t, 1, p.Count(helm))
	assert.Equal(t, 1, p.Count(sword))
	assert.Equal(t, []*model.Item{helm, sword}, th.Given())
}

func TestThrottle_RemoveAllGiven(t *testing.T) {
	th, p, q := setup(t)
	helm := newArmor(t, 1, slot.Head.Bit())

	th.Give(helm, true)
	th.Give(helm, false)
	q.Advance()
	require.Equal(t, 2, p.Count(helm))

	th.RemoveAllGiven()
	assert.Equal(t, 0, p.Count(helm))
	assert.False(t, p.IsWorn(helm))
	assert.Empty(t, th.Given())
}

func TestThrottle_ForgetGiven(t *testing.T) {
	th, p, _ := setup(t)
	helm := newArmor(t, 1, slot.Head.Bit())

	th.Give(helm, false)
	th.ForgetGiven()
	th.RemoveAllGiven()
	assert.Equal(t, 1, p.Count(helm), "forgotten items stay with the actor")
}

func TestThrottle_UnequipAllOnlyInteracted(t *testing.T) {
	th, p, _ := setup(t)
	helm := newArmor(t, 1, slot.Head.Bit())
	fx := newArmor(t, 2, slot.FX01.Bit())

	for _, it := range []*model.Item{helm, fx} {
		p.AddItem(it, 1)
		p.Equip(it)
	}

	th.UnequipAll()
	assert.False(t, p.IsWorn(helm))
	assert.True(t, p.IsWorn(fx), "non-interacted slots are left alone")
}

func TestThrottle_NilActor(t *testing.T) {
	q := tick.NewQueue()
	th := NewThrottle(nil, q, slot.All)
	helm := newArmor(t, 1, slot.Head.Bit())

	assert.False(t, th.Give(helm, true))
	assert.NotPanics(t, th.UnequipAll)
	assert.NotPanics(t, th.RemoveAllGiven)
	assert.Equal(t, 0, q.Pending())
}
