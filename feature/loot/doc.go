// Package loot synthesizes weighted chest loot tables from a catalog.
//
// InputsFromRows reduces summary rows to gun partitions, ammo stack sizes and
// attachment ids. A Synthesizer turns those inputs into a Table whose pools
// are, in order: supplies, resources, weapons, specialized (shotgun) ammo,
// general ammo and attachments. Every list is sorted, so identical inputs give
// byte-identical output; all randomness is left to the game's roll evaluation.
//
// BuildVariants yields the baseline table and a variant with an extra pool,
// rolled exactly once, that always holds the configured guaranteed gun.
//
// Usage:
//
//	synth, err := loot.NewSynthesizer(cfg.Loot, loot.DefaultProfile(), logger)
//	if err != nil {
//		return err
//	}
//	res, err := synth.BuildVariants(loot.InputsFromRows(rows, cfg.Loot.Ammo.FallbackStack))
package loot
