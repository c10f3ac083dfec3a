package catalog

import (
	"bytes"

	"github.com/goccy/go-json"
)

// SourceIndex is the only source rows are produced from: the pack's index/ folder.
const SourceIndex = "index"

// Category is a record family inside the pack index.
type Category string

const (
	CategoryAmmo        Category = "ammo"
	CategoryGuns        Category = "guns"
	CategoryAttachments Category = "attachments"
)

// Categories lists every category in scan order.
var Categories = []Category{CategoryAmmo, CategoryGuns, CategoryAttachments}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryAmmo, CategoryGuns, CategoryAttachments:
		return true
	default:
		return false
	}
}

// Column names shared by scanner, summary and synthesis.
const (
	ColSource          = "source"
	ColCategory        = "category"
	ColIndexID         = "index_id"
	ColType            = "type"
	ColStackSize       = "stack_size"
	ColName            = "name"
	ColDisplay         = "display"
	ColFile            = "file"
	ColItemType        = "item_type"
	ColSort            = "sort"
	ColDataRef         = "data_ref"
	ColTooltip         = "tooltip"
	ColGunAmmo         = "gun_ammo"
	ColAmmoAmount      = "ammo_amount"
	ColWeight          = "weight"
	ColRPM             = "rpm"
	ColFireMode        = "fire_mode"
	ColDefaultFireMode = "default_fire_mode"
	ColBulletDamage    = "bullet_damage"
	ColBulletSpeed     = "bullet_speed"
	ColDataFile        = "data_file"
	ColExtendedMag     = "extended_mag_level"
)

// Field is one descriptive attribute of a row.
type Field struct {
	Key   string
	Value string
}

// RowKey is the composite identity of a row.
type RowKey struct {
	Source   string
	Category Category
	IndexID  string
}

// Row is a normalized catalog record. Descriptive fields keep insertion order
// so the summary header follows first-seen order.
type Row struct {
	Source   string
	Category Category
	IndexID  string
	fields   []Field
}

// NewRow creates an index row for the given category and identifier.
func NewRow(category Category, indexID string) Row {
	return Row{Source: SourceIndex, Category: category, IndexID: indexID}
}

// Key returns the row's composite identity.
func (r Row) Key() RowKey {
	return RowKey{Source: r.Source, Category: r.Category, IndexID: r.IndexID}
}

// Set assigns a descriptive field, replacing an existing value in place.
// Identity columns cannot be set this way.
func (r *Row) Set(key, value string) {
	switch key {
	case ColSource, ColCategory, ColIndexID:
		return
	}
	for i := range r.fields {
		if r.fields[i].Key == key {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Lookup returns a column value and whether the row carries it.
func (r Row) Lookup(key string) (string, bool) {
	switch key {
	case ColSource:
		return r.Source, true
	case ColCategory:
		return string(r.Category), true
	case ColIndexID:
		return r.IndexID, true
	}
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Get returns a column value or the empty string.
func (r Row) Get(key string) string {
	v, _ := r.Lookup(key)
	return v
}

// Fields returns every column, identity first, in insertion order.
func (r Row) Fields() []Field {
	out := make([]Field, 0, len(r.fields)+3)
	out = append(out,
		Field{Key: ColSource, Value: r.Source},
		Field{Key: ColCategory, Value: string(r.Category)},
		Field{Key: ColIndexID, Value: r.IndexID},
	)
	return append(out, r.fields...)
}

// Attributes returns the descriptive fields only.
func (r Row) Attributes() []Field {
	return append([]Field(nil), r.fields...)
}

// Clone returns a copy that shares no field storage with r.
func (r Row) Clone() Row {
	r.fields = append([]Field(nil), r.fields...)
	return r
}

// MarshalJSON renders the row as an object with columns in row order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
