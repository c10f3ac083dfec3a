package loot

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"
)

var (
	// ErrNoEligibleContent is returned when the catalog holds no pistol, shotgun or rifle.
	ErrNoEligibleContent = errors.New("no eligible content")
	// ErrUnknownVariant is returned when a requested table variant does not exist.
	ErrUnknownVariant = errors.New("unknown loot table variant")
)

// Variant is one named table.
type Variant struct {
	Name  string
	Table *Table
}

// Result holds every variant built from one catalog.
type Result struct {
	Variants []Variant
	// Warnings are recovered problems, e.g. a guaranteed gun missing from the catalog.
	Warnings []string
}

// Variant returns the table named name.
func (r *Result) Variant(name string) (*Table, error) {
	for _, v := range r.Variants {
		if v.Name == name {
			return v.Table, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, name)
}

// Names returns the variant names in build order.
func (r *Result) Names() []string {
	names := make([]string, len(r.Variants))
	for i, v := range r.Variants {
		names[i] = v.Name
	}
	return names
}

// Synthesizer builds deterministic loot tables from catalog inputs.
type Synthesizer struct {
	cfg     Config
	profile Profile
	logger  *zap.Logger
}

// NewSynthesizer validates cfg and profile.
func NewSynthesizer(cfg Config, profile Profile, logger *zap.Logger) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid loot config: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &Synthesizer{cfg: cfg, profile: profile, logger: logger}, nil
}

// Config returns the synthesizer's configuration.
func (s *Synthesizer) Config() Config {
	return s.cfg
}

// BuildVariants builds the baseline table and, when a guaranteed id is
// configured, the variant with a guaranteed gun pool.
func (s *Synthesizer) BuildVariants(in Inputs) (*Result, error) {
	res := &Result{}

	base, err := s.Synthesize(in, "")
	if err != nil {
		return nil, err
	}
	res.Variants = append(res.Variants, Variant{Name: s.cfg.TableName, Table: base})

	if id := s.cfg.GuaranteedID; id != "" {
		table, err := s.Synthesize(in, id)
		if err != nil {
			return nil, err
		}
		res.Variants = append(res.Variants, Variant{Name: s.cfg.GuaranteedName(), Table: table})
		if in.TypeOf(id) == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("guaranteed gun %s is not an eligible gun in the catalog", id))
		}
	}
	return res, nil
}

// Synthesize builds one table. A non-empty guaranteedID adds a pool rolled
// exactly once holding that gun, inserted right after the resource pool.
//
// Pool order: supplies, resources, weapons, specialized ammo, general ammo,
// attachments. Ammo and attachment pools are left out when empty.
func (s *Synthesizer) Synthesize(in Inputs, guaranteedID string) (*Table, error) {
	if in.GunCount() == 0 {
		return nil, fmt.Errorf("%w: no pistol, shotgun or rifle in catalog", ErrNoEligibleContent)
	}

	pools := []Pool{
		s.itemPool(s.profile.Supplies, s.cfg.Rolls.Supplies),
		s.itemPool(s.profile.Resources, s.cfg.Rolls.Resources),
		s.weaponPool(in),
	}

	specialized, general := s.partitionAmmo(in)
	if len(specialized) > 0 {
		pools = append(pools, s.ammoPool(in, specialized, s.cfg.Weights.SpecializedAmmo, s.cfg.Rolls.SpecializedAmmo))
	}
	if len(general) > 0 {
		pools = append(pools, s.ammoPool(in, general, s.cfg.Weights.Ammo, s.cfg.Rolls.Ammo))
	}

	if len(in.Attachments) > 0 {
		entries := make([]Entry, 0, len(in.Attachments))
		for _, id := range in.Attachments {
			entries = append(entries, Entry{
				Type:      EntryItem,
				Name:      ItemAttachment,
				Weight:    s.cfg.Weights.Attachment,
				Functions: []Function{SetNBT(fmt.Sprintf(`{AttachmentId:"%s"}`, id))},
			})
		}
		pools = append(pools, Pool{Rolls: RangeRolls(s.cfg.Rolls.Attachments), Entries: entries})
	}

	if guaranteedID != "" {
		if in.TypeOf(guaranteedID) == "" {
			s.logger.Warn("Guaranteed gun not in catalog", zap.String("id", guaranteedID))
		}
		guaranteed := Pool{
			Rolls:   FixedRolls(1),
			Entries: []Entry{s.gunEntry(in, guaranteedID, in.TypeOf(guaranteedID), 1)},
		}
		pools = slices.Insert(pools, 2, guaranteed)
	}

	return &Table{Type: TableTypeChest, Pools: pools}, nil
}

func (s *Synthesizer) itemPool(items []Item, rolls Range) Pool {
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, Entry{
			Type:      EntryItem,
			Name:      it.Name,
			Weight:    it.Weight,
			Functions: []Function{SetCount(it.Min, it.Max)},
		})
	}
	return Pool{Rolls: RangeRolls(rolls), Entries: entries}
}

func (s *Synthesizer) weaponPool(in Inputs) Pool {
	entries := make([]Entry, 0, in.GunCount())
	for _, id := range in.Pistols {
		entries = append(entries, s.gunEntry(in, id, TypePistol, s.cfg.Weights.Pistol))
	}
	for _, id := range in.Shotguns {
		entries = append(entries, s.gunEntry(in, id, TypeShotgun, s.cfg.Weights.Shotgun))
	}
	for _, id := range in.Rifles {
		entries = append(entries, s.gunEntry(in, id, TypeRifle, s.cfg.Weights.Rifle))
	}
	return Pool{Rolls: RangeRolls(s.cfg.Rolls.Weapons), Entries: entries}
}

func (s *Synthesizer) gunEntry(in Inputs, id, gunType string, weight int) Entry {
	tag := fmt.Sprintf(`{GunId:"%s"}`, id)
	if mode := s.fireMode(in, id, gunType); mode != "" {
		tag = fmt.Sprintf(`{GunId:"%s",GunFireMode:"%s"}`, id, mode)
	}
	return Entry{
		Type:      EntryItem,
		Name:      ItemGun,
		Weight:    weight,
		Functions: []Function{SetNBT(tag)},
	}
}

// fireMode prefers the gun's declared mode over the per-type default.
func (s *Synthesizer) fireMode(in Inputs, id, gunType string) string {
	if mode := in.GunFireMode[id]; mode != "" {
		return mode
	}
	switch gunType {
	case TypePistol:
		return s.cfg.FireModes.Pistol
	case TypeShotgun:
		return s.cfg.FireModes.Shotgun
	case TypeRifle:
		return s.cfg.FireModes.Rifle
	default:
		return ""
	}
}

// partitionAmmo splits ammo ids into those fed to shotguns and everything else.
func (s *Synthesizer) partitionAmmo(in Inputs) (specialized, general []string) {
	if s.cfg.SpecializeShotgunAmmo {
		for _, gun := range in.Shotguns {
			if ammo := in.GunAmmo[gun]; ammo != "" {
				specialized = append(specialized, ammo)
			}
		}
		specialized = sortedUnique(specialized)
	}

	for id := range in.AmmoStack {
		if !slices.Contains(specialized, id) {
			general = append(general, id)
		}
	}
	sort.Strings(general)
	return specialized, general
}

func (s *Synthesizer) ammoPool(in Inputs, ids []string, weight int, rolls Range) Pool {
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		lo, hi := s.ammoCount(in, id)
		entries = append(entries, Entry{
			Type:   EntryItem,
			Name:   ItemAmmo,
			Weight: weight,
			Functions: []Function{
				SetNBT(fmt.Sprintf(`{AmmoId:"%s"}`, id)),
				SetCount(lo, hi),
			},
		})
	}
	return Pool{Rolls: RangeRolls(rolls), Entries: entries}
}

// ammoCount returns [min(min_count, eff), eff] where eff is the stack size
// clamped to [1, max_count].
func (s *Synthesizer) ammoCount(in Inputs, id string) (int, int) {
	stack, ok := in.AmmoStack[id]
	if !ok {
		stack = s.cfg.Ammo.FallbackStack
	}
	eff := max(1, min(stack, s.cfg.Ammo.MaxCount))
	return min(s.cfg.Ammo.MinCount, eff), eff
}
