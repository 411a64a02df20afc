package slot

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Slot — индекс слота экипировки (0..31), engine slot ID = 30 + index.
// Remove (32) — служебное значение для remap: "снять слот целиком".
type Slot int

const (
	// Count — количество настоящих слотов.
	Count = 32

	// Remove is the remap target meaning "drop this slot's occupancy".
	// It is never an occupancy bit.
	Remove Slot = 32

	// EngineBase is the engine slot ID of slot index 0.
	EngineBase = 30
)

// Mask — битовая маска слотов, бит i = слот i.
type Mask uint32

// All has every real slot bit set.
const All Mask = 0xFFFFFFFF

// Valid reports whether s is a real slot (0..31).
func (s Slot) Valid() bool {
	return s >= 0 && s < Count
}

// ValidTarget reports whether s may be used as a remap target (0..32).
func (s Slot) ValidTarget() bool {
	return s >= 0 && s <= Remove
}

// Bit returns the singleton mask of s. Invalid slots and Remove yield 0.
func (s Slot) Bit() Mask {
	if !s.Valid() {
		return 0
	}
	return Mask(1) << uint(s)
}

// EngineID returns the host engine slot number (30..61, 62 for Remove).
func (s Slot) EngineID() int {
	return EngineBase + int(s)
}

// Label returns the short checkbox label ("HEAD", "Hair", ...).
func (s Slot) Label() string {
	if s == Remove {
		return "REMOVE"
	}
	if !s.Valid() {
		return "Unknown"
	}
	return registry[s].label
}

// Description returns the remap column text ("Slot 32 - Body", "<REMOVE SLOT>").
func (s Slot) Description() string {
	if s == Remove {
		return "<REMOVE SLOT>"
	}
	if !s.Valid() {
		return "Unknown"
	}
	return registry[s].description
}

// String returns "32 (BODY)" style text, as shown next to filter checkboxes.
func (s Slot) String() string {
	if s == Remove {
		return s.Description()
	}
	return fmt.Sprintf("%d (%s)", s.EngineID(), s.Label())
}

// Has reports whether slot s is set in m.
func (m Mask) Has(s Slot) bool {
	return m&s.Bit() != 0
}

// Overlaps reports whether m and other share at least one slot.
func (m Mask) Overlaps(other Mask) bool {
	return m&other != 0
}

// Contains reports whether every bit of sub is also set in m.
func (m Mask) Contains(sub Mask) bool {
	return m&sub == sub
}

// With returns m with slot s set.
func (m Mask) With(s Slot) Mask {
	return m | s.Bit()
}

// Without returns m with slot s cleared.
func (m Mask) Without(s Slot) Mask {
	return m &^ s.Bit()
}

// Count returns the number of occupied slots.
func (m Mask) Count() int {
	return bits.OnesCount32(uint32(m))
}

// Slots returns the set slots in ascending order.
func (m Mask) Slots() []Slot {
	out := make([]Slot, 0, m.Count())
	for v := uint32(m); v != 0; v &= v - 1 {
		out = append(out, Slot(bits.TrailingZeros32(v)))
	}
	return out
}

// String formats the mask as hex.
func (m Mask) String() string {
	return fmt.Sprintf("0x%08X", uint32(m))
}

// Union returns the mask with every given slot set.
func Union(slots ...Slot) Mask {
	var m Mask
	for _, s := range slots {
		m |= s.Bit()
	}
	return m
}

// Parse resolves a slot by label ("body", case-insensitive), engine ID ("32")
// or "remove".
func Parse(name string) (Slot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("empty slot name")
	}
	if strings.EqualFold(name, "remove") {
		return Remove, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		s := Slot(n - EngineBase)
		if !s.Valid() {
			return 0, fmt.Errorf("slot %d out of range %d..%d", n, EngineBase, EngineBase+Count-1)
		}
		return s, nil
	}
	for i := range registry {
		if strings.EqualFold(registry[i].label, name) {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("unknown slot %q", name)
}

// ParseMask resolves a list of slot names into a mask.
func ParseMask(names []string) (Mask, error) {
	var m Mask
	for _, n := range names {
		s, err := Parse(n)
		if err != nil {
			return 0, err
		}
		if s == Remove {
			return 0, fmt.Errorf("slot %q is not an occupancy slot", n)
		}
		m |= s.Bit()
	}
	return m, nil
}
