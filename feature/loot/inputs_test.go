package loot

import (
	"testing"

	"loot-manager/feature/catalog"

	"github.com/stretchr/testify/assert"
)

func TestInputsFromRows(t *testing.T) {
	foreign := ammo("tacz:foreign", "10")
	foreign.Source = "data"

	rows := []catalog.Row{
		ammo("tacz:9mm", "60"),
		ammo("tacz:12g", "20.0"),
		ammo("tacz:odd", "lots"),
		ammo("tacz:empty", ""),
		foreign,
		gun("tacz:glock", "pistol", catalog.ColGunAmmo, "tacz:9mm", catalog.ColDefaultFireMode, "SEMI"),
		gun("tacz:db", "shotgun", catalog.ColGunAmmo, "tacz:12g"),
		gun("tacz:ak47", "rifle"),
		gun("tacz:aa", "rifle"),
		gun("tacz:rpg", "rpg"),
		gun("tacz:ak47", "rifle"),
		attachment("tacz:scope"),
		attachment("tacz:grip"),
		catalog.NewRow(catalog.CategoryGuns, ""),
	}

	in := InputsFromRows(rows, 60)

	assert.Equal(t, []string{"tacz:glock"}, in.Pistols)
	assert.Equal(t, []string{"tacz:db"}, in.Shotguns)
	assert.Equal(t, []string{"tacz:aa", "tacz:ak47"}, in.Rifles)
	assert.Equal(t, []string{"tacz:grip", "tacz:scope"}, in.Attachments)
	assert.Equal(t, map[string]int{"tacz:9mm": 60, "tacz:12g": 20, "tacz:odd": 60, "tacz:empty": 60}, in.AmmoStack)
	assert.Equal(t, "tacz:12g", in.GunAmmo["tacz:db"])
	assert.Equal(t, "SEMI", in.GunFireMode["tacz:glock"])
	assert.Equal(t, 4, in.GunCount())

	assert.Equal(t, TypeRifle, in.TypeOf("tacz:ak47"))
	assert.Equal(t, "", in.TypeOf("tacz:rpg"))
}

func TestInputsFromRows_NormalizesHandEditedCells(t *testing.T) {
	pistol := gun(" tacz:glock ", "Pistol", catalog.ColGunAmmo, " tacz:9mm ")
	rifle := gun("tacz:ak47", " rifle ")
	shotgun := gun("tacz:db", "SHOTGUN")
	shotgun.Source = " index "
	shotgun.Category = " guns "
	stack := ammo(" tacz:9mm", " 30 ")

	in := InputsFromRows([]catalog.Row{pistol, rifle, shotgun, stack}, 60)

	assert.Equal(t, []string{"tacz:glock"}, in.Pistols)
	assert.Equal(t, []string{"tacz:db"}, in.Shotguns)
	assert.Equal(t, []string{"tacz:ak47"}, in.Rifles)
	assert.Equal(t, "tacz:9mm", in.GunAmmo["tacz:glock"])
	assert.Equal(t, map[string]int{"tacz:9mm": 30}, in.AmmoStack)
}

func TestInputsFromRows_UntypedGunExcluded(t *testing.T) {
	untyped := catalog.NewRow(catalog.CategoryGuns, "tacz:mystery")
	in := InputsFromRows([]catalog.Row{untyped, gun("tacz:glock", "pistol")}, 60)

	assert.Equal(t, []string{"tacz:glock"}, in.Pistols)
	assert.Empty(t, in.Shotguns)
	assert.Empty(t, in.Rifles)
	assert.Equal(t, "", in.TypeOf("tacz:mystery"))
}
