package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

func newArmor(t *testing.T, id model.FormID, mask slot.Mask) *model.Item {
	t.Helper()
	it, err := model.NewItem(id, "armor", "Test.esp", model.CategoryArmor, mask)
	require.NoError(t, err)
	return it
}

func TestPlayer_AddRemove(t *testing.T) {
	p := NewPlayer("Dovahkiin")
	helm := newArmor(t, 1, slot.Head.Bit())

	p.AddItem(helm, 2)
	p.AddItem(nil, 1)
	assert.Equal(t, 2, p.Count(helm))
	assert.Equal(t, []*model.Item{helm}, p.Items())

	p.RemoveItem(helm, 1)
	assert.Equal(t, 1, p.Count(helm))

	p.Equip(helm)
	p.RemoveItem(helm, 1)
	assert.Equal(t, 0, p.Count(helm))
	assert.False(t, p.IsWorn(helm), "last copy removed is unequipped")
	assert.Empty(t, p.Items())
}

func TestPlayer_EquipReplacesOverlap(t *testing.T) {
	p := NewPlayer("Dovahkiin")
	cuirass := newArmor(t, 1, slot.Body.Bit())
	robe := newArmor(t, 2, slot.Union(slot.Body, slot.Feet))
	boots := newArmor(t, 3, slot.Feet.Bit())
	for _, it := range []*model.Item{cuirass, robe, boots} {
		p.AddItem(it, 1)
	}

	p.Equip(cuirass)
	p.Equip(boots)
	assert.Equal(t, []*model.Item{cuirass, boots}, p.WornItems())

	p.Equip(robe)
	assert.Equal(t, []*model.Item{robe}, p.WornItems())
	assert.Same(t, robe, p.WornIn(slot.Feet))
	assert.Nil(t, p.WornIn(slot.Head))
}

func TestPlayer_EquipRequiresCarried(t *testing.T) {
	p := NewPlayer("Dovahkiin")
	helm := newArmor(t, 1, slot.Head.Bit())
	sword, err := model.NewItem(2, "Sword", "Test.esp", model.CategoryWeapon, 0)
	require.NoError(t, err)

	p.Equip(helm)
	assert.False(t, p.IsWorn(helm))

	p.AddItem(sword, 1)
	p.Equip(sword)
	assert.Empty(t, p.WornItems())
}

func TestPlayer_Unequip(t *testing.T) {
	p := NewPlayer("Dovahkiin")
	robe := newArmor(t, 1, slot.Union(slot.Body, slot.Feet))
	p.AddItem(robe, 1)
	p.Equip(robe)
	require.True(t, p.IsWorn(robe))

	p.Unequip(robe)
	assert.False(t, p.IsWorn(robe))
	assert.Equal(t, 1, p.Count(robe))
}
