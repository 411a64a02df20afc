package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armorbench/internal/data"
	"github.com/udisondev/armorbench/internal/ledger"
	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/remap"
	"github.com/udisondev/armorbench/internal/slot"
)

func TestRecorder_ApplyRecordsOverrides(t *testing.T) {
	cat := data.SampleCatalog()
	l := ledger.New()
	rec := NewRecorder(l, cat, "Skyrim.esm", handled)

	table := remap.NewTable()
	require.NoError(t, table.Set(slot.Feet, slot.Shield))

	cuirass, robe, boots := cat.Get(data.SampleIronCuirass), cat.Get(data.SampleMageRobe), cat.Get(data.SampleIronBoots)
	err := rec.Apply(context.Background(), Request{
		Source: "Skyrim.esm",
		Items:  []*model.Item{cuirass, robe, boots},
		Remap:  table,
	})
	require.NoError(t, err)

	assert.True(t, l.IsModifiedExclusive(cuirass))
	_, ok := l.OverrideMask(cuirass)
	assert.False(t, ok, "unchanged mask gets no override")

	mask, ok := l.OverrideMask(robe)
	require.True(t, ok)
	assert.Equal(t, slot.Union(slot.Body, slot.Shield), mask)

	mask, ok = l.OverrideMask(boots)
	require.True(t, ok)
	assert.Equal(t, slot.Shield.Bit(), mask)
}

func TestRecorder_ApplyChainsOverrides(t *testing.T) {
	cat := data.SampleCatalog()
	l := ledger.New()
	rec := NewRecorder(l, cat, "", handled)
	boots := cat.Get(data.SampleIronBoots)

	first := remap.NewTable()
	require.NoError(t, first.Set(slot.Feet, slot.Shield))
	require.NoError(t, rec.Apply(context.Background(), Request{Source: "Skyrim.esm", Items: []*model.Item{boots}, Remap: first}))

	second := remap.NewTable()
	require.NoError(t, second.Set(slot.Shield, slot.Circlet))
	require.NoError(t, rec.Apply(context.Background(), Request{Source: "Skyrim.esm", Items: []*model.Item{boots}, Remap: second}))

	mask, ok := l.OverrideMask(boots)
	require.True(t, ok)
	assert.Equal(t, slot.Circlet.Bit(), mask, "second remap starts from the recorded mask")
}

func TestRecorder_Errors(t *testing.T) {
	cat := data.SampleCatalog()
	l := ledger.New()
	rec := NewRecorder(l, cat, "", handled)
	cloak := cat.Get(data.SampleCapeCloak)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := rec.Apply(ctx, Request{Source: "Capes.esp", Items: []*model.Item{cloak}, Remap: remap.NewTable()})
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, rec.Apply(context.Background(), Request{Source: "Capes.esp", Items: []*model.Item{cloak}, Remap: remap.NewTable()}))
	require.NoError(t, l.DeleteAllChanges("Capes.esp"))

	err = rec.Apply(context.Background(), Request{Source: "Capes.esp", Items: []*model.Item{cloak}, Remap: remap.NewTable()})
	assert.ErrorIs(t, err, ledger.ErrFileDeleted)
}

func TestRecorder_FindMatchingAndSliders(t *testing.T) {
	cat := data.SampleCatalog()
	rec := NewRecorder(ledger.New(), cat, "Skyrim.esm", handled)

	assert.True(t, rec.FindMatching(cat.Get(data.SampleIronSword)))
	assert.True(t, rec.FindMatching(cat.Get(data.SampleIronArrow)))
	assert.False(t, rec.FindMatching(cat.Get(data.SampleIronCuirass)), "armor is never matched")
	assert.False(t, NewRecorder(ledger.New(), cat, "", handled).FindMatching(cat.Get(data.SampleIronSword)))

	rec.Sliders.Weight = 50
	rec.ResetSliders()
	assert.Equal(t, DefaultSliders(), rec.Sliders)
	assert.Equal(t, handled, rec.AffectedSlots())
}
