package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/udisondev/armorbench/internal/ledger"
	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/remap"
	"github.com/udisondev/armorbench/internal/slot"
)

// Sliders — числовые настройки трансформации, в процентах.
type Sliders struct {
	Rating float64
	Weight float64
	Value  float64
}

// DefaultSliders returns every slider at 100%.
func DefaultSliders() Sliders {
	return Sliders{Rating: 100, Weight: 100, Value: 100}
}

// Recorder is a Transformer that rewrites slot masks through the remap table
// and records the result in the ledger. Weapons and ammo are matched by name
// against a reference file.
type Recorder struct {
	ledger    *ledger.Ledger
	catalog   *model.Catalog
	reference string
	affected  slot.Mask

	Sliders Sliders
}

// NewRecorder creates a recorder. affected is the set of slots whose items
// the transformation alters even without remapping.
func NewRecorder(l *ledger.Ledger, catalog *model.Catalog, reference string, affected slot.Mask) *Recorder {
	return &Recorder{
		ledger:    l,
		catalog:   catalog,
		reference: reference,
		affected:  affected,
		Sliders:   DefaultSliders(),
	}
}

// AffectedSlots implements Transformer.
func (r *Recorder) AffectedSlots() slot.Mask {
	return r.affected
}

// ResetSliders implements Transformer.
func (r *Recorder) ResetSliders() {
	r.Sliders = DefaultSliders()
}

// FindMatching reports whether the reference file has a weapon or ammo item
// of the same category and name.
func (r *Recorder) FindMatching(item *model.Item) bool {
	if item == nil || r.reference == "" || item.Name() == "" {
		return false
	}
	if !item.IsWeapon() && !item.IsAmmo() {
		return false
	}
	for _, ref := range r.catalog.ByFile(r.reference) {
		if ref.Category() == item.Category() && strings.EqualFold(ref.Name(), item.Name()) {
			return true
		}
	}
	return false
}

// Apply records the change-set. Armor whose effective mask changes under the
// remap table gets an override mask.
func (r *Recorder) Apply(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	overrides := make(map[model.FormID]slot.Mask)
	for _, it := range req.Items {
		if it == nil || !it.IsArmor() {
			continue
		}
		cur := remap.EffectiveMask(it, r.ledger)
		if next := req.Remap.Apply(cur); next != cur {
			overrides[it.FormID()] = next
		}
	}

	id, err := r.ledger.Record(ledger.ChangeSet{
		Source:    req.Source,
		Items:     req.Items,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}

	slog.Debug("change-set built",
		"changeSet", id,
		"rating", r.Sliders.Rating,
		"weight", r.Sliders.Weight,
		"value", r.Sliders.Value)
	return nil
}
