package loot

import (
	"slices"
	"sort"
	"strings"

	"loot-manager/core/utils"
	"loot-manager/feature/catalog"
)

// Gun types eligible for the weapon pool.
const (
	TypePistol  = "pistol"
	TypeShotgun = "shotgun"
	TypeRifle   = "rifle"
)

// Inputs is the catalog reduced to what synthesis needs.
type Inputs struct {
	Pistols  []string
	Shotguns []string
	Rifles   []string
	// AmmoStack maps ammo ids to their stack size.
	AmmoStack   map[string]int
	Attachments []string
	// GunAmmo maps gun ids to the ammo they fire.
	GunAmmo map[string]string
	// GunFireMode maps gun ids to their declared default fire mode.
	GunFireMode map[string]string
}

// InputsFromRows partitions summary rows. Guns of other types are dropped and
// ammo whose stack size is empty or unparsable gets fallbackStack. Identity cells
// are trimmed and gun types compared case-insensitively, so hand-edited
// summaries partition the same way as generated ones.
func InputsFromRows(rows []catalog.Row, fallbackStack int) Inputs {
	in := Inputs{
		AmmoStack:   make(map[string]int),
		GunAmmo:     make(map[string]string),
		GunFireMode: make(map[string]string),
	}

	for _, r := range rows {
		id := strings.TrimSpace(r.IndexID)
		if strings.TrimSpace(r.Source) != catalog.SourceIndex || id == "" {
			continue
		}

		switch catalog.Category(strings.TrimSpace(string(r.Category))) {
		case catalog.CategoryAmmo:
			stack := fallbackStack
			if v := r.Get(catalog.ColStackSize); v != "" {
				if n, err := utils.ToInt(v); err == nil {
					stack = n
				}
			}
			in.AmmoStack[id] = stack

		case catalog.CategoryGuns:
			switch strings.ToLower(strings.TrimSpace(r.Get(catalog.ColType))) {
			case TypePistol:
				in.Pistols = append(in.Pistols, id)
			case TypeShotgun:
				in.Shotguns = append(in.Shotguns, id)
			case TypeRifle:
				in.Rifles = append(in.Rifles, id)
			}
			if v := strings.TrimSpace(r.Get(catalog.ColGunAmmo)); v != "" {
				in.GunAmmo[id] = v
			}
			if v := strings.TrimSpace(r.Get(catalog.ColDefaultFireMode)); v != "" {
				in.GunFireMode[id] = v
			}

		case catalog.CategoryAttachments:
			in.Attachments = append(in.Attachments, id)
		}
	}

	in.Pistols = sortedUnique(in.Pistols)
	in.Shotguns = sortedUnique(in.Shotguns)
	in.Rifles = sortedUnique(in.Rifles)
	in.Attachments = sortedUnique(in.Attachments)
	return in
}

// GunCount returns the number of eligible guns.
func (in Inputs) GunCount() int {
	return len(in.Pistols) + len(in.Shotguns) + len(in.Rifles)
}

// TypeOf returns the eligible type of a gun id, or "" when it is not eligible.
func (in Inputs) TypeOf(id string) string {
	switch {
	case slices.Contains(in.Pistols, id):
		return TypePistol
	case slices.Contains(in.Shotguns, id):
		return TypeShotgun
	case slices.Contains(in.Rifles, id):
		return TypeRifle
	default:
		return ""
	}
}

func sortedUnique(ids []string) []string {
	sort.Strings(ids)
	return slices.Compact(ids)
}
