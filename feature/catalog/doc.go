// Package catalog turns a gun pack's index and data records into a flat,
// deduplicated catalog.
//
// A pack root holds index/{ammo,guns,attachments}/*.json and optional
// data/{guns,attachments}/*.json. The Scanner walks the index lazily, one
// category at a time, and the Enricher follows each record's "data" reference
// to merge ballistic and behavioral fields. Failures that affect one record are
// collected as Diagnostics instead of aborting the run.
//
// The Aggregate keeps rows unique by (source, category, index_id) with
// last-write-wins semantics. The result is written as a CSV summary, which
// feature/loot reads back, and can be synced to a SQL Store.
package catalog
