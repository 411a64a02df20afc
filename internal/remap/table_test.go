package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armorbench/internal/slot"
)

func TestTable_SetRemove(t *testing.T) {
	tbl := NewTable()

	require.NoError(t, tbl.Set(slot.Body, slot.Feet))
	target, ok := tbl.TargetOf(slot.Body)
	assert.True(t, ok)
	assert.Equal(t, slot.Feet, target)

	require.NoError(t, tbl.Set(slot.Body, slot.Hands), "overwrite")
	target, _ = tbl.TargetOf(slot.Body)
	assert.Equal(t, slot.Hands, target)
	assert.Equal(t, 1, tbl.Len())

	tbl.Remove(slot.Body)
	_, ok = tbl.TargetOf(slot.Body)
	assert.False(t, ok)
	tbl.Remove(slot.Body)
}

func TestTable_Validation(t *testing.T) {
	tbl := NewTable()
	assert.ErrorIs(t, tbl.Set(slot.Remove, slot.Body), ErrInvalidSource)
	assert.ErrorIs(t, tbl.Set(-1, slot.Body), ErrInvalidSource)
	assert.ErrorIs(t, tbl.Set(slot.Body, 33), ErrInvalidTarget)
	assert.NoError(t, tbl.Set(slot.Body, slot.Remove))
}

func TestTable_Masks(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Set(slot.Body, slot.Feet))
	require.NoError(t, tbl.Set(slot.Hands, slot.Feet))
	require.NoError(t, tbl.Set(slot.Tail, slot.Remove))

	assert.Equal(t, slot.Union(slot.Body, slot.Hands, slot.Tail), tbl.SourceMask())
	assert.Equal(t, slot.Feet.Bit(), tbl.TargetMask(), "sentinel never contributes a target bit")
	assert.True(t, tbl.HasRemoveTarget())

	assert.Equal(t, []Entry{
		{Source: slot.Body, Target: slot.Feet},
		{Source: slot.Hands, Target: slot.Feet},
		{Source: slot.Tail, Target: slot.Remove},
	}, tbl.Entries())
}

func TestTable_Apply(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Set(slot.Body, slot.Feet))
	require.NoError(t, tbl.Set(slot.Feet, slot.Hands))
	require.NoError(t, tbl.Set(slot.Tail, slot.Remove))

	tests := []struct {
		name string
		in   slot.Mask
		want slot.Mask
	}{
		{name: "unmapped untouched", in: slot.Head.Bit(), want: slot.Head.Bit()},
		{name: "single move", in: slot.Body.Bit(), want: slot.Feet.Bit()},
		{name: "chained sources move independently", in: slot.Union(slot.Body, slot.Feet), want: slot.Union(slot.Feet, slot.Hands)},
		{name: "remove drops bit", in: slot.Union(slot.Tail, slot.Head), want: slot.Head.Bit()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tbl.Apply(tt.in))
		})
	}
}

func TestTable_CloneReplaceClear(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.Set(slot.Body, slot.Feet))

	c := tbl.Clone()
	tbl.Clear()
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 1, c.Len(), "clone is independent")

	require.NoError(t, tbl.Replace(c.Entries()))
	assert.Equal(t, c.Entries(), tbl.Entries())

	err := tbl.Replace([]Entry{{Source: slot.Remove, Target: slot.Body}})
	assert.ErrorIs(t, err, ErrInvalidSource)
	assert.Equal(t, 1, tbl.Len(), "failed replace keeps old content")
}

func TestDrag_PickUpRevokes(t *testing.T) {
	tbl := NewTable()
	d := NewDrag(tbl)
	require.NoError(t, tbl.Set(3, 5))

	require.NoError(t, d.PickUp(3))
	_, ok := tbl.TargetOf(3)
	assert.False(t, ok, "mapping revoked while dragging")

	src, dragging := d.Dragging()
	assert.True(t, dragging)
	assert.Equal(t, slot.Slot(3), src)

	require.NoError(t, d.Drop(7, false))
	target, ok := tbl.TargetOf(3)
	assert.True(t, ok)
	assert.Equal(t, slot.Slot(7), target)

	_, dragging = d.Dragging()
	assert.False(t, dragging)
}

func TestDrag_DropRules(t *testing.T) {
	tbl := NewTable()
	d := NewDrag(tbl)

	assert.ErrorIs(t, d.Drop(slot.Body, false), ErrNoDrag)

	require.NoError(t, d.PickUp(slot.Body))
	assert.ErrorIs(t, d.Drop(slot.Tail, true), ErrTargetDisabled)
	assert.ErrorIs(t, d.Drop(40, false), ErrInvalidTarget)
	assert.Equal(t, 0, tbl.Len())

	require.NoError(t, d.Drop(slot.Remove, false))
	target, _ := tbl.TargetOf(slot.Body)
	assert.Equal(t, slot.Remove, target)

	require.NoError(t, d.PickUp(slot.Body))
	d.Cancel()
	assert.Equal(t, 0, tbl.Len(), "cancel does not restore the revoked mapping")

	assert.ErrorIs(t, d.PickUp(slot.Remove), ErrInvalidSource)
}

func TestTargetDisabled(t *testing.T) {
	handled := slot.Union(slot.Head, slot.Body)
	assert.False(t, TargetDisabled(slot.Body, handled))
	assert.True(t, TargetDisabled(slot.Tail, handled))
	assert.False(t, TargetDisabled(slot.Remove, handled))
}
