package datapack

import (
	"fmt"
	"strings"
)

// Pos is a block position.
type Pos struct {
	X, Y, Z int
}

// DefaultDestinations are the chest positions inside the village houses.
var DefaultDestinations = []Pos{
	{241, 65, 471},
	{225, 65, 497},
	{247, 65, 455},
	{218, 65, 450},
	{187, 65, 452},
	{174, 65, 472},
	{193, 65, 482},
	{162, 65, 485},
}

// Placement is a row of staging chests, one per house.
type Placement struct {
	BaseX, Y, Z int
	Houses      int
	StepX       int
}

// At returns the staging chest of house i.
func (p Placement) At(i int) Pos {
	return Pos{X: p.BaseX + i*p.StepX, Y: p.Y, Z: p.Z}
}

// TableRef returns the resource location of a chest loot table.
func TableRef(namespace, name string) string {
	return namespace + ":chests/" + name
}

// FillFunction places a chest per house and binds its loot table. The house at
// guaranteedIndex gets guaranteedTable; an index outside the row binds none.
func FillFunction(p Placement, normalTable, guaranteedTable string, guaranteedIndex int) string {
	var b strings.Builder
	for i := 0; i < p.Houses; i++ {
		pos := p.At(i)
		table := normalTable
		if i == guaranteedIndex && guaranteedTable != "" {
			table = guaranteedTable
		}
		fmt.Fprintf(&b, "setblock %d %d %d minecraft:chest\n", pos.X, pos.Y, pos.Z)
		fmt.Fprintf(&b, "data merge block %d %d %d {LootTable:\"%s\"}\n", pos.X, pos.Y, pos.Z, table)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()) + "\n"
}

// UpdateChestsFunction clones each staging chest, with its contents, into the
// matching destination. Houses beyond the destination list are ignored.
func UpdateChestsFunction(p Placement, dests []Pos, dimension, namespace string) string {
	lines := []string{
		"# Copy pre-generated chests from staging row into village houses",
		fmt.Sprintf("# Run: /function %s:update_chests", namespace),
		"",
	}

	n := min(p.Houses, len(dests))
	if n <= 0 {
		return strings.Join(lines, "\n") + "\n"
	}
	for i := 0; i < n; i++ {
		src := p.At(i)
		dst := dests[i]
		lines = append(lines, fmt.Sprintf("execute in %s run clone %d %d %d %d %d %d %d %d %d replace",
			dimension, src.X, src.Y, src.Z, src.X, src.Y, src.Z, dst.X, dst.Y, dst.Z))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
