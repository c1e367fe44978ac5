// Package config defines the board configuration: the drag items, drop areas
// and placement policies a session is created from.
//
// # Formats
//
// Configurations are plain structs and can be built in code or loaded from a
// file with [Load]. The file format is chosen by extension:
//
//   - .toml: decoded with BurntSushi/toml; unknown keys are rejected
//   - .yaml, .yml: decoded with gopkg.in/yaml.v3 with known-field checking
//   - .json: decoded with encoding/json, unknown fields rejected
//
// All formats use the same camelCase keys:
//
//	possibleToReplaceDroppedItem = true
//	shiftOrSwapOnNoAreas = "shift"
//
//	[[dragItems]]
//	id = "apple"
//	groups = ["fruit", "red"]
//
//	[[dropAreas]]
//	id = "basket"
//	accept = ["fruit"]
//	maxCapacity = 2
//
// # Validation
//
// [Config.Validate] collects every problem into a single
// [errors.ConfigurationError] instead of stopping at the first one, so a
// configuration can be fixed in one pass. Engines refuse to start from a
// configuration that fails validation.
package config

import (
	"fmt"
	"time"
)

// ShuffleMode selects how drag items reorder when there are no drop areas.
type ShuffleMode string

const (
	// ShuffleShift removes the dragged item and reinserts it at the target's
	// position, shifting the items in between by one slot.
	ShuffleShift ShuffleMode = "shift"
	// ShuffleSwap exchanges the dragged item and the target.
	ShuffleSwap ShuffleMode = "swap"
)

// DefaultFeedbackDelay is the pause between a keyboard placement and moving
// focus to the next item.
const DefaultFeedbackDelay = 300 * time.Millisecond

// Config is the complete description of a board.
type Config struct {
	DragItems []ItemConfig `toml:"dragItems" yaml:"dragItems" json:"dragItems" validate:"required,min=1,dive"`
	DropAreas []AreaConfig `toml:"dropAreas" yaml:"dropAreas" json:"dropAreas,omitempty" validate:"dive"`

	// PossibleToReplaceDroppedItem lets an item dropped on a full area of
	// capacity 1 evict the occupant instead of being rejected.
	PossibleToReplaceDroppedItem bool `toml:"possibleToReplaceDroppedItem" yaml:"possibleToReplaceDroppedItem" json:"possibleToReplaceDroppedItem,omitempty"`

	// ForbidFocusOnFilledAreas removes full areas from the allowed set, so
	// keyboard navigation skips them.
	ForbidFocusOnFilledAreas bool `toml:"forbidFocusOnFilledAreas" yaml:"forbidFocusOnFilledAreas" json:"forbidFocusOnFilledAreas,omitempty"`

	// ShiftOrSwapOnNoAreas is the shuffle policy used when DropAreas is empty.
	ShiftOrSwapOnNoAreas ShuffleMode `toml:"shiftOrSwapOnNoAreas" yaml:"shiftOrSwapOnNoAreas" json:"shiftOrSwapOnNoAreas,omitempty" validate:"omitempty,oneof=shift swap"`

	// AlignRemainingItems asks the renderer to pack remaining items together
	// instead of leaving gaps where placed items used to be.
	AlignRemainingItems bool `toml:"alignRemainingItems" yaml:"alignRemainingItems" json:"alignRemainingItems,omitempty"`

	// FeedbackDelay is the pause before focus moves on after a keyboard
	// placement. Zero selects DefaultFeedbackDelay.
	FeedbackDelay Duration `toml:"feedbackDelay" yaml:"feedbackDelay" json:"feedbackDelay,omitempty"`

	// DisableAnimation makes renderer movements complete immediately.
	DisableAnimation bool `toml:"disableAnimation" yaml:"disableAnimation" json:"disableAnimation,omitempty"`
}

// ItemConfig describes one drag item.
type ItemConfig struct {
	ID       string   `toml:"id" yaml:"id" json:"id" validate:"required"`
	Label    string   `toml:"label" yaml:"label" json:"label,omitempty"`
	Data     any      `toml:"data" yaml:"data" json:"data,omitempty"`
	Groups   []string `toml:"groups" yaml:"groups" json:"groups,omitempty"`
	Disabled bool     `toml:"disabled" yaml:"disabled" json:"disabled,omitempty"`
}

// AreaConfig describes one drop area. MaxCapacity 0 means unbounded and an
// empty Accept list accepts every item.
type AreaConfig struct {
	ID          string   `toml:"id" yaml:"id" json:"id" validate:"required"`
	Label       string   `toml:"label" yaml:"label" json:"label,omitempty"`
	Data        any      `toml:"data" yaml:"data" json:"data,omitempty"`
	Accept      []string `toml:"accept" yaml:"accept" json:"accept,omitempty"`
	MaxCapacity int      `toml:"maxCapacity" yaml:"maxCapacity" json:"maxCapacity,omitempty" validate:"gte=0"`
	Disabled    bool     `toml:"disabled" yaml:"disabled" json:"disabled,omitempty"`
}

// SetDefaults fills unset optional fields. It is idempotent.
func (c *Config) SetDefaults() {
	if c.ShiftOrSwapOnNoAreas == "" {
		c.ShiftOrSwapOnNoAreas = ShuffleShift
	}
	if c.FeedbackDelay.Duration == 0 {
		c.FeedbackDelay.Duration = DefaultFeedbackDelay
	}
	for i := range c.DragItems {
		if c.DragItems[i].Label == "" {
			c.DragItems[i].Label = c.DragItems[i].ID
		}
	}
	for i := range c.DropAreas {
		if c.DropAreas[i].Label == "" {
			c.DropAreas[i].Label = c.DropAreas[i].ID
		}
	}
}

// HasAreas reports whether the board has drop areas. Boards without areas run
// in shuffle mode.
func (c *Config) HasAreas() bool { return len(c.DropAreas) > 0 }

// Duration is a time.Duration that decodes from strings such as "250ms" in
// every supported file format.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
