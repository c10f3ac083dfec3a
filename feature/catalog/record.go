package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// CatalogRecord is the persisted form of a Row.
type CatalogRecord struct {
	Source     string    `gorm:"column:source;primaryKey;size:32"`
	Category   string    `gorm:"column:category;primaryKey;size:32"`
	IndexID    string    `gorm:"column:index_id;primaryKey;size:191"`
	Type       string    `gorm:"column:type;size:64"`
	StackSize  *int      `gorm:"column:stack_size"`
	Attributes string    `gorm:"column:attributes;type:text"` // JSON array of {key,value}
	File       string    `gorm:"column:file;size:512"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (CatalogRecord) TableName() string {
	return "catalog_rows"
}

type attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewRecord converts a row for persistence.
func NewRecord(row Row) (CatalogRecord, error) {
	rec := CatalogRecord{
		Source:   row.Source,
		Category: string(row.Category),
		IndexID:  row.IndexID,
		Type:     row.Get(ColType),
		File:     row.Get(ColFile),
	}
	if v, ok := row.Lookup(ColStackSize); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rec.StackSize = &n
		}
	}

	attrs := make([]attribute, 0, len(row.fields))
	for _, f := range row.fields {
		attrs = append(attrs, attribute{Key: f.Key, Value: f.Value})
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return rec, fmt.Errorf("failed to encode attributes of %s: %w", row.IndexID, err)
	}
	rec.Attributes = string(data)
	return rec, nil
}

// ToRow restores the row, preserving attribute order.
func (r CatalogRecord) ToRow() (Row, error) {
	row := Row{Source: r.Source, Category: Category(r.Category), IndexID: r.IndexID}
	if r.Attributes == "" {
		return row, nil
	}
	var attrs []attribute
	if err := json.Unmarshal([]byte(r.Attributes), &attrs); err != nil {
		return row, fmt.Errorf("failed to decode attributes of %s: %w", r.IndexID, err)
	}
	for _, a := range attrs {
		row.Set(a.Key, a.Value)
	}
	return row, nil
}
