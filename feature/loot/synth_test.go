package loot

import (
	"fmt"
	"testing"

	"loot-manager/feature/catalog"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryNames(p Pool) []string {
	var out []string
	for _, e := range p.Entries {
		out = append(out, e.Name)
	}
	return out
}

func entryTags(p Pool) []string {
	var out []string
	for _, e := range p.Entries {
		out = append(out, e.Functions[0].Tag)
	}
	return out
}

func TestSynthesize_OneOfEach(t *testing.T) {
	rows := []catalog.Row{
		gun("tacz:glock", "pistol"),
		gun("tacz:db", "shotgun"),
		gun("tacz:ak47", "rifle"),
		ammo("tacz:9mm", "80"),
		attachment("tacz:scope"),
	}
	s := newSynth(t, DefaultConfig())

	table, err := s.Synthesize(InputsFromRows(rows, 60), "")
	require.NoError(t, err)

	assert.Equal(t, TableTypeChest, table.Type)
	require.Len(t, table.Pools, 5)

	supplies := table.Pools[0]
	assert.Equal(t, RangeRolls(Range{Min: 2, Max: 5}), supplies.Rolls)
	assert.Len(t, supplies.Entries, 5)
	assert.Zero(t, supplies.Entries[0].Weight)

	resources := table.Pools[1]
	assert.Equal(t, RangeRolls(Range{Min: 0, Max: 3}), resources.Rolls)

	weapons := table.Pools[2]
	assert.Equal(t, []string{
		`{GunId:"tacz:glock",GunFireMode:"SEMI"}`,
		`{GunId:"tacz:db",GunFireMode:"SEMI"}`,
		`{GunId:"tacz:ak47",GunFireMode:"AUTO"}`,
	}, entryTags(weapons))
	assert.Equal(t, []int{6, 3, 2}, []int{weapons.Entries[0].Weight, weapons.Entries[1].Weight, weapons.Entries[2].Weight})

	general := table.Pools[3]
	require.Len(t, general.Entries, 1)
	assert.Equal(t, ItemAmmo, general.Entries[0].Name)
	assert.Equal(t, 1, general.Entries[0].Weight)
	assert.Equal(t, `{AmmoId:"tacz:9mm"}`, general.Entries[0].Functions[0].Tag)
	assert.Equal(t, &Range{Min: 10, Max: 60}, general.Entries[0].Functions[1].Count)

	attachments := table.Pools[4]
	assert.Equal(t, []string{ItemAttachment}, entryNames(attachments))
	assert.Equal(t, `{AttachmentId:"tacz:scope"}`, attachments.Entries[0].Functions[0].Tag)
}

func TestSynthesize_SpecializedAmmo(t *testing.T) {
	rows := []catalog.Row{
		gun("tacz:db", "shotgun", catalog.ColGunAmmo, "tacz:12g"),
		gun("tacz:spas", "shotgun", catalog.ColGunAmmo, "tacz:slug"),
		gun("tacz:m4", "rifle", catalog.ColGunAmmo, "tacz:556", catalog.ColDefaultFireMode, "BURST"),
		ammo("tacz:12g", "5"),
		ammo("tacz:556", "60"),
	}
	s := newSynth(t, DefaultConfig())

	table, err := s.Synthesize(InputsFromRows(rows, 60), "")
	require.NoError(t, err)
	// no attachments pool
	require.Len(t, table.Pools, 5)

	assert.Equal(t, `{GunId:"tacz:m4",GunFireMode:"BURST"}`, table.Pools[2].Entries[2].Functions[0].Tag)

	specialized := table.Pools[3]
	assert.Equal(t, RangeRolls(Range{Min: 0, Max: 1}), specialized.Rolls)
	assert.Equal(t, []string{`{AmmoId:"tacz:12g"}`, `{AmmoId:"tacz:slug"}`}, entryTags(specialized))
	assert.Equal(t, 3, specialized.Entries[0].Weight)
	// stack 5 is below the min count
	assert.Equal(t, &Range{Min: 5, Max: 5}, specialized.Entries[0].Functions[1].Count)
	// slug is not in the catalog and uses the fallback stack
	assert.Equal(t, &Range{Min: 10, Max: 60}, specialized.Entries[1].Functions[1].Count)

	general := table.Pools[4]
	assert.Equal(t, []string{`{AmmoId:"tacz:556"}`}, entryTags(general))
	assert.Equal(t, RangeRolls(Range{Min: 0, Max: 2}), general.Rolls)
}

func TestSynthesize_SpecializationDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpecializeShotgunAmmo = false
	rows := []catalog.Row{
		gun("tacz:db", "shotgun", catalog.ColGunAmmo, "tacz:12g"),
		ammo("tacz:12g", "20"),
		ammo("tacz:9mm", "60"),
	}

	table, err := newSynth(t, cfg).Synthesize(InputsFromRows(rows, 60), "")
	require.NoError(t, err)
	require.Len(t, table.Pools, 4)
	assert.Equal(t, []string{`{AmmoId:"tacz:12g"}`, `{AmmoId:"tacz:9mm"}`}, entryTags(table.Pools[3]))
	assert.Equal(t, 1, table.Pools[3].Entries[0].Weight)
}

func TestSynthesize_AmmoCountBounds(t *testing.T) {
	cfg := DefaultConfig()
	s := newSynth(t, cfg)

	for _, stack := range []int{-5, 0, 1, 3, 9, 10, 11, 59, 60, 61, 64, 1000} {
		in := Inputs{Rifles: []string{"tacz:ak47"}, AmmoStack: map[string]int{"tacz:x": stack}}
		lo, hi := s.ammoCount(in, "tacz:x")
		assert.True(t, 1 <= lo && lo <= hi && hi <= cfg.Ammo.MaxCount, "stack %d gave %d-%d", stack, lo, hi)
	}
}

func TestSynthesize_NoEligibleContent(t *testing.T) {
	rows := []catalog.Row{gun("tacz:rpg", "launcher"), ammo("tacz:9mm", "60")}
	s := newSynth(t, DefaultConfig())

	table, err := s.Synthesize(InputsFromRows(rows, 60), "")
	assert.Nil(t, table)
	assert.ErrorIs(t, err, ErrNoEligibleContent)

	_, err = s.BuildVariants(InputsFromRows(rows, 60))
	assert.ErrorIs(t, err, ErrNoEligibleContent)
}

func TestBuildVariants(t *testing.T) {
	rows := []catalog.Row{
		gun("tacz:glock", "pistol"),
		gun("tacz:ak47", "rifle", catalog.ColDefaultFireMode, "SEMI"),
		ammo("tacz:9mm", "60"),
	}
	s := newSynth(t, DefaultConfig())

	res, err := s.BuildVariants(InputsFromRows(rows, 60))
	require.NoError(t, err)
	assert.Equal(t, []string{"house", "house_ak"}, res.Names())
	assert.Empty(t, res.Warnings)

	base, err := res.Variant("house")
	require.NoError(t, err)
	guaranteed, err := res.Variant("house_ak")
	require.NoError(t, err)

	require.Len(t, guaranteed.Pools, len(base.Pools)+1)
	pool := guaranteed.Pools[2]
	assert.Equal(t, FixedRolls(1), pool.Rolls)
	require.Len(t, pool.Entries, 1)
	assert.Equal(t, 1, pool.Entries[0].Weight)
	assert.Equal(t, `{GunId:"tacz:ak47",GunFireMode:"SEMI"}`, pool.Entries[0].Functions[0].Tag)
	assert.Equal(t, base.Pools[2], guaranteed.Pools[3])

	_, err = res.Variant("house_m4")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestBuildVariants_UnknownGuaranteedID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GuaranteedID = "tacz:m1_garand"
	s := newSynth(t, cfg)

	res, err := s.BuildVariants(InputsFromRows([]catalog.Row{gun("tacz:glock", "pistol")}, 60))
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "tacz:m1_garand")

	table, err := res.Variant("house_ak")
	require.NoError(t, err)
	assert.Equal(t, `{GunId:"tacz:m1_garand"}`, table.Pools[2].Entries[0].Functions[0].Tag)
}

func TestBuildVariants_NoGuaranteedID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GuaranteedID = ""

	res, err := newSynth(t, cfg).BuildVariants(InputsFromRows([]catalog.Row{gun("tacz:glock", "pistol")}, 60))
	require.NoError(t, err)
	assert.Equal(t, []string{"house"}, res.Names())
}

func TestSynthesize_Deterministic(t *testing.T) {
	var rows []catalog.Row
	for i := 9; i >= 0; i-- {
		rows = append(rows,
			gun(fmt.Sprintf("tacz:gun_%d", i), []string{"pistol", "shotgun", "rifle"}[i%3], catalog.ColGunAmmo, fmt.Sprintf("tacz:ammo_%d", i)),
			ammo(fmt.Sprintf("tacz:ammo_%d", i), fmt.Sprint(i*10)),
			attachment(fmt.Sprintf("tacz:att_%d", i)),
		)
	}
	s := newSynth(t, DefaultConfig())

	render := func() []byte {
		res, err := s.BuildVariants(InputsFromRows(rows, 60))
		require.NoError(t, err)
		table, err := res.Variant("house_ak")
		require.NoError(t, err)
		data, err := table.Marshal()
		require.NoError(t, err)
		return data
	}

	first := render()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, render())
	}

	var decoded Table
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Equal(t, FixedRolls(1), decoded.Pools[2].Rolls)
	assert.Equal(t, RangeRolls(Range{Min: 2, Max: 5}), decoded.Pools[0].Rolls)
}

func TestNewSynthesizer_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Pistol = 0
	_, err := NewSynthesizer(cfg, DefaultProfile(), nil)
	assert.ErrorContains(t, err, "invalid loot config")

	_, err = NewSynthesizer(DefaultConfig(), Profile{Supplies: []Item{{Min: 1, Max: 2}}}, nil)
	assert.EqualError(t, err, "loot profile item without name")
}
