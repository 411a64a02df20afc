package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

type wornList []*model.Item

func (w wornList) WornItems() []*model.Item { return w }

func TestSelectSource(t *testing.T) {
	tests := []struct {
		name       string
		allArmor   bool
		allWeapons bool
		file       string
		want       Source
	}{
		{name: "nothing selected", want: Source{Kind: SourceWorn}},
		{name: "file", file: "a.esp", want: Source{Kind: SourceFile, File: "a.esp"}},
		{name: "all weapons beats file", allWeapons: true, file: "a.esp", want: Source{Kind: SourceAllWeapons}},
		{name: "all armor beats all", allArmor: true, allWeapons: true, file: "a.esp", want: Source{Kind: SourceAllArmor}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectSource(tt.allArmor, tt.allWeapons, tt.file))
		})
	}
}

func TestCollect(t *testing.T) {
	cat := model.NewCatalog()
	helm, _ := model.NewItem(1, "Helm", "a.esp", model.CategoryArmor, slot.Head.Bit())
	sword, _ := model.NewItem(2, "Sword", "a.esp", model.CategoryWeapon, 0)
	boots, _ := model.NewItem(3, "Boots", "b.esp", model.CategoryArmor, slot.Feet.Bit())
	for _, it := range []*model.Item{helm, sword, boots} {
		require.NoError(t, cat.Add(it))
	}

	assert.Equal(t, []*model.Item{helm, boots}, Collect(Source{Kind: SourceAllArmor}, cat, nil))
	assert.Equal(t, []*model.Item{sword}, Collect(Source{Kind: SourceAllWeapons}, cat, nil))
	assert.Equal(t, []*model.Item{helm, sword}, Collect(Source{Kind: SourceFile, File: "a.esp"}, cat, nil))

	worn := wornList{boots, sword, boots, nil}
	assert.Equal(t, []*model.Item{boots}, Collect(Source{Kind: SourceWorn}, cat, worn), "worn armor only, deduplicated")
	assert.Empty(t, Collect(Source{Kind: SourceWorn}, cat, nil))
}

func TestModeFromFlags(t *testing.T) {
	assert.Equal(t, ModeDisabled, ModeFromFlags(false, true, true))
	assert.Equal(t, ModeStandard, ModeFromFlags(true, false, false))
	assert.Equal(t, ModeReverse, ModeFromFlags(true, true, false))
	assert.Equal(t, ModeExact, ModeFromFlags(true, true, true))
}
