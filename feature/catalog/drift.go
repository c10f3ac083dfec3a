package catalog

import (
	"cmp"
	"fmt"
	"slices"
)

// Drift is the comparison of one catalog key between a fresh scan and the store.
type Drift struct {
	Category Category `json:"category"`
	IndexID  string   `json:"index_id"`
	Source   string   `json:"source"`

	// PackPresent indicates whether the row exists in the scanned pack.
	PackPresent bool `json:"pack_present"`
	// StorePresent indicates whether the row exists in the database.
	StorePresent bool `json:"store_present"`

	// Mismatch describes columns whose values differ, e.g. "rpm: pack=600 store=550".
	Mismatch []string `json:"mismatch"`
}

// InSync reports whether both sides hold the row with identical values.
func (d Drift) InSync() bool {
	return d.PackPresent && d.StorePresent && len(d.Mismatch) == 0
}

// Reconcile compares scanned rows against stored rows over the union of their keys.
// Results are ordered by category then index id.
func Reconcile(pack, stored []Row) []Drift {
	packIndex := indexRows(pack)
	storeIndex := indexRows(stored)

	union := make(map[RowKey]struct{}, len(packIndex)+len(storeIndex))
	for key := range packIndex {
		union[key] = struct{}{}
	}
	for key := range storeIndex {
		union[key] = struct{}{}
	}

	out := make([]Drift, 0, len(union))
	for key := range union {
		p, inPack := packIndex[key]
		s, inStore := storeIndex[key]
		d := Drift{
			Category:     key.Category,
			IndexID:      key.IndexID,
			Source:       key.Source,
			PackPresent:  inPack,
			StorePresent: inStore,
			Mismatch:     []string{},
		}
		if inPack && inStore {
			d.Mismatch = compareRows(p, s)
		}
		out = append(out, d)
	}

	slices.SortFunc(out, func(a, b Drift) int {
		return cmp.Or(
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.IndexID, b.IndexID),
			cmp.Compare(a.Source, b.Source),
		)
	})
	return out
}

// OutOfSync keeps only the drifts that need attention.
func OutOfSync(drifts []Drift) []Drift {
	var out []Drift
	for _, d := range drifts {
		if !d.InSync() {
			out = append(out, d)
		}
	}
	return out
}

func indexRows(rows []Row) map[RowKey]Row {
	index := make(map[RowKey]Row, len(rows))
	for _, r := range rows {
		index[r.Key()] = r
	}
	return index
}

// compareRows lists differing attribute columns in pack order, then store-only ones.
func compareRows(pack, stored Row) []string {
	mismatch := []string{}
	seen := make(map[string]struct{})
	for _, f := range pack.Attributes() {
		seen[f.Key] = struct{}{}
		other, _ := stored.Lookup(f.Key)
		if other != f.Value {
			mismatch = append(mismatch, fmt.Sprintf("%s: pack=%s store=%s", f.Key, f.Value, other))
		}
	}
	for _, f := range stored.Attributes() {
		if _, ok := seen[f.Key]; ok {
			continue
		}
		mismatch = append(mismatch, fmt.Sprintf("%s: pack= store=%s", f.Key, f.Value))
	}
	return mismatch
}
