package data

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

// itemDef — запись каталога в YAML.
//
//	items:
//	  - form_id: "00012E49"
//	    name: Iron Armor
//	    file: Skyrim.esm
//	    category: armor
//	    slots: [BODY]
type itemDef struct {
	FormID   string   `yaml:"form_id"`
	Name     string   `yaml:"name"`
	File     string   `yaml:"file"`
	Category string   `yaml:"category"`
	Slots    []string `yaml:"slots"`
}

type catalogFile struct {
	Items []itemDef `yaml:"items"`
}

// LoadCatalog читает каталог предметов из YAML-файла.
func LoadCatalog(path string) (*model.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	cat, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	slog.Info("loaded catalog", "path", path, "items", cat.Len(), "files", len(cat.Files()))
	return cat, nil
}

// ParseCatalog строит Catalog из YAML-документа.
// The whole document is rejected on the first bad entry.
func ParseCatalog(raw []byte) (*model.Catalog, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	cat := model.NewCatalog()
	for i := range doc.Items {
		item, err := doc.Items[i].build()
		if err != nil {
			return nil, fmt.Errorf("item #%d: %w", i, err)
		}
		if err := cat.Add(item); err != nil {
			return nil, fmt.Errorf("item #%d: %w", i, err)
		}
	}
	return cat, nil
}

func (d *itemDef) build() (*model.Item, error) {
	id, err := parseFormID(d.FormID)
	if err != nil {
		return nil, err
	}

	category, err := model.ParseCategory(d.Category)
	if err != nil {
		return nil, fmt.Errorf("form %s: %w", d.FormID, err)
	}

	mask, err := slot.ParseMask(d.Slots)
	if err != nil {
		return nil, fmt.Errorf("form %s: %w", d.FormID, err)
	}

	return model.NewItem(id, d.Name, d.File, category, mask)
}

// parseFormID accepts "00012E49", "0x00012E49" or "12e49" (always hex).
func parseFormID(s string) (model.FormID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, fmt.Errorf("empty form_id")
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("form_id %q: %w", s, err)
	}
	return model.FormID(n), nil
}
