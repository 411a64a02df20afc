package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

const catalogYAML = `
items:
  - form_id: "00012E49"
    name: Iron Armor
    file: Skyrim.esm
    category: armor
    slots: [BODY]
  - form_id: 0x0010CEE4
    name: Mage Robes
    file: Skyrim.esm
    category: Armor
    slots: [BODY, "37"]
  - form_id: "12eb7"
    name: Iron Sword
    file: Skyrim.esm
    category: weapon
    slots: [BODY]
`

func TestParseCatalog(t *testing.T) {
	cat, err := ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)
	require.Equal(t, 3, cat.Len())

	robe := cat.Get(0x0010CEE4)
	require.NotNil(t, robe)
	assert.Equal(t, "Mage Robes", robe.Name())
	assert.Equal(t, slot.Union(slot.Body, slot.Feet), robe.SlotMask())

	sword := cat.Get(0x00012EB7)
	require.NotNil(t, sword)
	assert.True(t, sword.IsWeapon())
	assert.Zero(t, sword.SlotMask(), "non-armor carries no slots")

	assert.Len(t, cat.ByCategory(model.CategoryArmor), 2)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "items: [\n"},
		{"bad form id", "items: [{form_id: zz, file: A.esp, category: armor}]"},
		{"empty form id", "items: [{file: A.esp, category: armor}]"},
		{"unknown category", "items: [{form_id: '1', file: A.esp, category: potion}]"},
		{"unknown slot", "items: [{form_id: '1', file: A.esp, category: armor, slots: [TORSO]}]"},
		{"missing file", "items: [{form_id: '1', category: armor}]"},
		{"duplicate", "items: [{form_id: '1', file: A.esp, category: armor}, {form_id: '1', file: B.esp, category: armor}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0o600))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Skyrim.esm"}, cat.Files())

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSampleCatalog(t *testing.T) {
	cat := SampleCatalog()
	assert.Equal(t, []string{"Capes.esp", "Skyrim.esm"}, cat.Files())
	assert.Equal(t, "Capes.esp:0001000d62", cat.Get(SampleCapeHood).DisplayName())
}
