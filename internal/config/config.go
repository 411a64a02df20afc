package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/armorbench/internal/slot"
)

// Armorbench holds all configuration for the armor bench.
type Armorbench struct {
	LogLevel    string `yaml:"log_level"`
	CatalogPath string `yaml:"catalog_path"`

	// Slots
	HandledSlots    []string `yaml:"handled_slots"`    // usedSlotsMask of the transformer
	InteractedSlots []string `yaml:"interacted_slots"` // empty: same as handled_slots

	// Mod switch / apply policy
	ResetSlotRemap  bool `yaml:"reset_slot_remap"`
	ResetSliders    bool `yaml:"reset_sliders"`
	AutoDeleteGiven bool `yaml:"auto_delete_given"`
	Highlights      bool `yaml:"highlights"`

	// Deferred task loop
	TickInterval time.Duration `yaml:"tick_interval"` // default: 16ms

	// Database
	Database DatabaseConfig `yaml:"database"`
}

// Default returns Armorbench config with sensible defaults.
func Default() Armorbench {
	return Armorbench{
		LogLevel:        "info",
		CatalogPath:     "data/catalog.yaml",
		HandledSlots:    []string{"HEAD", "BODY", "Hands", "Feet", "SHIELD", "Circlet"},
		ResetSlotRemap:  true,
		ResetSliders:    true,
		AutoDeleteGiven: false,
		Highlights:      true,
		TickInterval:    16 * time.Millisecond,
		Database:        DefaultDatabase(),
	}
}

// Load loads armorbench config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Armorbench, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks slot names and the tick interval.
func (c Armorbench) Validate() error {
	if _, err := c.HandledMask(); err != nil {
		return err
	}
	if _, err := c.InteractedMask(); err != nil {
		return err
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	return nil
}

// HandledMask returns the slots the transformer can rewrite.
func (c Armorbench) HandledMask() (slot.Mask, error) {
	m, err := slot.ParseMask(c.HandledSlots)
	if err != nil {
		return 0, fmt.Errorf("handled_slots: %w", err)
	}
	return m, nil
}

// InteractedMask returns the slots touched by unequip-all; falls back to HandledMask.
func (c Armorbench) InteractedMask() (slot.Mask, error) {
	if len(c.InteractedSlots) == 0 {
		return c.HandledMask()
	}
	m, err := slot.ParseMask(c.InteractedSlots)
	if err != nil {
		return 0, fmt.Errorf("interacted_slots: %w", err)
	}
	return m, nil
}
