package loot

import (
	"fmt"

	"github.com/goccy/go-json"
)

// TableTypeChest is the loot context of every generated table.
const TableTypeChest = "minecraft:chest"

// Entry types and functions used by generated tables.
const (
	EntryItem        = "minecraft:item"
	FunctionSetNBT   = "minecraft:set_nbt"
	FunctionSetCount = "minecraft:set_count"

	ItemGun        = "tacz:modern_kinetic_gun"
	ItemAmmo       = "tacz:ammo"
	ItemAttachment = "tacz:attachment"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `mapstructure:"min" json:"min" yaml:"min"`
	Max int `mapstructure:"max" json:"max" yaml:"max"`
}

// Validate checks 0 <= Min <= Max.
func (r Range) Validate() error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("invalid range %d-%d", r.Min, r.Max)
	}
	return nil
}

// Rolls is either a fixed count or a uniform range.
type Rolls struct {
	Min   int
	Max   int
	Fixed bool
}

// FixedRolls rolls a pool exactly n times.
func FixedRolls(n int) Rolls {
	return Rolls{Min: n, Max: n, Fixed: true}
}

// RangeRolls rolls a pool between r.Min and r.Max times.
func RangeRolls(r Range) Rolls {
	return Rolls{Min: r.Min, Max: r.Max}
}

// MarshalJSON renders a fixed count as a number and a range as {min,max}.
func (r Rolls) MarshalJSON() ([]byte, error) {
	if r.Fixed {
		return json.Marshal(r.Min)
	}
	return json.Marshal(Range{Min: r.Min, Max: r.Max})
}

// UnmarshalJSON accepts either form.
func (r *Rolls) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = FixedRolls(n)
		return nil
	}
	var rng Range
	if err := json.Unmarshal(data, &rng); err != nil {
		return fmt.Errorf("failed to decode rolls: %w", err)
	}
	*r = RangeRolls(rng)
	return nil
}

// Table is a complete loot table.
type Table struct {
	Type  string `json:"type"`
	Pools []Pool `json:"pools"`
}

// Pool is one independently rolled group of entries.
type Pool struct {
	Rolls   Rolls   `json:"rolls"`
	Entries []Entry `json:"entries"`
}

// Entry is one weighted candidate of a pool. A zero weight is omitted.
type Entry struct {
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	Weight    int        `json:"weight,omitempty"`
	Functions []Function `json:"functions,omitempty"`
}

// Function modifies the item an entry produces.
type Function struct {
	Function string `json:"function"`
	Tag      string `json:"tag,omitempty"`
	Count    *Range `json:"count,omitempty"`
}

// SetNBT builds a set_nbt function.
func SetNBT(tag string) Function {
	return Function{Function: FunctionSetNBT, Tag: tag}
}

// SetCount builds a set_count function.
func SetCount(lo, hi int) Function {
	return Function{Function: FunctionSetCount, Count: &Range{Min: lo, Max: hi}}
}

// Marshal renders the table as JSON indented by two spaces.
func (t *Table) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode loot table: %w", err)
	}
	return data, nil
}
