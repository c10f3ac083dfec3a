// Package datapack writes synthesized loot tables as a Minecraft datapack and
// publishes it to object storage.
//
// Layout of a generated pack:
//
//	pack.mcmeta
//	data/<ns>/loot_tables/chests/house.json
//	data/<ns>/loot_tables/chests/house_ak.json
//	data/<ns>/functions/fill_village.mcfunction
//	data/<ns>/functions/update_chests.mcfunction
//
// fill_village places one chest per house on a staging row and binds its loot
// table. update_chests clones those chests into the village houses.
//
// The Publisher uploads the folder with bounded concurrency, optionally prunes
// stale objects, and can check and repair the required pack structure.
package datapack
