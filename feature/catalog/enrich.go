package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"loot-manager/core/relaxjson"
	"loot-manager/core/utils"
)

// Enricher merges fields from secondary data records into index rows.
type Enricher struct {
	dataRoot string
}

// NewEnricher creates an enricher reading from dataRoot (usually <root>/data).
func NewEnricher(dataRoot string) *Enricher {
	return &Enricher{dataRoot: dataRoot}
}

// resolve maps a reference to an existing data file, or "" when there is none.
func (e *Enricher) resolve(category Category, ref string) string {
	stem := RefToStem(ref)
	if stem == "" {
		return ""
	}
	path := filepath.Join(e.dataRoot, string(category), stem+".json")
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}

// EnrichGun adds ammunition, fire mode and ballistic fields to a gun row.
// A missing data record leaves the row untouched; an unreadable one is
// reported to diags and the row is still usable.
func (e *Enricher) EnrichGun(row *Row, ref string, diags *Diagnostics) {
	path := e.resolve(CategoryGuns, ref)
	if path == "" {
		return
	}
	doc, err := relaxjson.Load(path)
	if err != nil {
		diags.Add(enrichDiagnostic(CategoryGuns, path, err))
		return
	}

	row.Set(ColGunAmmo, utils.ToString(doc.Value("ammo")))
	row.Set(ColAmmoAmount, utils.ToString(doc.Value("ammo_amount")))
	row.Set(ColWeight, utils.ToString(doc.Value("weight")))
	row.Set(ColRPM, utils.ToString(doc.Value("rpm")))

	modes := FireModes(doc.Value("fire_mode"))
	row.Set(ColFireMode, strings.Join(modes, "|"))
	row.Set(ColDefaultFireMode, DefaultFireMode(modes))

	var damage, speed any
	if doc.Get("bullet").IsObject() {
		damage = doc.Get("bullet.damage").Value()
		speed = doc.Get("bullet.speed").Value()
	}
	row.Set(ColBulletDamage, utils.ToString(damage))
	row.Set(ColBulletSpeed, utils.ToString(speed))
	row.Set(ColDataFile, path)
}

// EnrichAttachment adds weight and magazine fields to an attachment row.
func (e *Enricher) EnrichAttachment(row *Row, ref string, diags *Diagnostics) {
	path := e.resolve(CategoryAttachments, ref)
	if path == "" {
		return
	}
	doc, err := relaxjson.Load(path)
	if err != nil {
		diags.Add(enrichDiagnostic(CategoryAttachments, path, err))
		return
	}

	row.Set(ColWeight, utils.ToString(doc.Value("weight")))
	row.Set(ColExtendedMag, utils.ToString(doc.Value("extended_mag_level")))
	row.Set(ColDataFile, path)
}

func enrichDiagnostic(category Category, path string, err error) Diagnostic {
	return Diagnostic{
		Kind:     KindWarn,
		Category: category,
		File:     path,
		Err:      fmt.Errorf("%w: %w", ErrEnrichmentFailure, err),
	}
}

// FireModes lowercases a fire_mode list. Anything other than a list yields none.
func FireModes(val any) []string {
	list, ok := val.([]any)
	if !ok {
		return nil
	}
	modes := make([]string, 0, len(list))
	for _, m := range list {
		modes = append(modes, strings.ToLower(utils.ToString(m)))
	}
	return modes
}

// DefaultFireMode picks AUTO, then SEMI, then BURST, then the first mode.
func DefaultFireMode(modes []string) string {
	for _, preferred := range []string{"auto", "semi", "burst"} {
		if slices.Contains(modes, preferred) {
			return strings.ToUpper(preferred)
		}
	}
	if len(modes) > 0 {
		return strings.ToUpper(modes[0])
	}
	return ""
}
