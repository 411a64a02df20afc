package filter

import (
	"github.com/udisondev/armorbench/internal/model"
)

// SourceKind определяет, откуда берётся исходный список предметов.
type SourceKind int32

const (
	SourceWorn       SourceKind = iota // armor currently worn by the actor
	SourceFile                         // items of one owning file
	SourceAllArmor                     // every armor record in the catalog
	SourceAllWeapons                   // every weapon record in the catalog
)

// String returns human-readable source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceWorn:
		return "Worn"
	case SourceFile:
		return "File"
	case SourceAllArmor:
		return "AllArmor"
	case SourceAllWeapons:
		return "AllWeapons"
	default:
		return "Unknown"
	}
}

// Source — выбранный источник списка.
type Source struct {
	Kind SourceKind
	File string // SourceFile only
}

// SelectSource resolves the browse toggles into a source.
// "All armor" wins over "all weapons", both win over a selected file,
// and with nothing selected the worn armor is listed.
func SelectSource(allArmor, allWeapons bool, file string) Source {
	switch {
	case allArmor:
		return Source{Kind: SourceAllArmor}
	case allWeapons:
		return Source{Kind: SourceAllWeapons}
	case file != "":
		return Source{Kind: SourceFile, File: file}
	default:
		return Source{Kind: SourceWorn}
	}
}

// WornLister enumerates items the actor currently wears.
type WornLister interface {
	WornItems() []*model.Item
}

// Collect returns the candidate item set for src, without duplicates.
// A nil worn lister yields an empty worn set.
func Collect(src Source, catalog *model.Catalog, worn WornLister) []*model.Item {
	var items []*model.Item

	switch src.Kind {
	case SourceAllArmor:
		items = catalog.ByCategory(model.CategoryArmor)
	case SourceAllWeapons:
		items = catalog.ByCategory(model.CategoryWeapon)
	case SourceFile:
		items = catalog.ByFile(src.File)
	case SourceWorn:
		if worn == nil {
			return nil
		}
		for _, it := range worn.WornItems() {
			if it != nil && it.IsArmor() {
				items = append(items, it)
			}
		}
	}

	seen := make(map[model.FormID]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, dup := seen[it.FormID()]; dup {
			continue
		}
		seen[it.FormID()] = struct{}{}
		out = append(out, it)
	}
	return out
}

// ModeFromFlags maps the filter checkboxes to a Mode.
// Exact is evaluated before Reverse when both boxes are ticked.
func ModeFromFlags(enabled, reverse, exact bool) Mode {
	switch {
	case !enabled:
		return ModeDisabled
	case exact:
		return ModeExact
	case reverse:
		return ModeReverse
	default:
		return ModeStandard
	}
}
