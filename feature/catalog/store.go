package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const syncBatchSize = 200

// Store persists catalog rows in a SQL database.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store backed by db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the catalog table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&CatalogRecord{}); err != nil {
		return fmt.Errorf("failed to migrate catalog table: %w", err)
	}
	return nil
}

// SyncReport summarizes a Sync call.
type SyncReport struct {
	Upserted int `json:"upserted"`
	Pruned   int `json:"pruned"`
}

// Sync upserts rows in one transaction. With prune, stored rows absent from
// rows are deleted.
func (s *Store) Sync(ctx context.Context, rows []Row, prune bool) (*SyncReport, error) {
	records := make([]CatalogRecord, 0, len(rows))
	keep := make(map[RowKey]bool, len(rows))
	for _, row := range rows {
		rec, err := NewRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		keep[row.Key()] = true
	}

	report := &SyncReport{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(records) > 0 {
			res := tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(records, syncBatchSize)
			if res.Error != nil {
				return fmt.Errorf("failed to upsert catalog rows: %w", res.Error)
			}
			report.Upserted = len(records)
		}
		if !prune {
			return nil
		}

		var existing []CatalogRecord
		if err := tx.Select("source", "category", "index_id").Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to list catalog rows: %w", err)
		}
		for _, rec := range existing {
			key := RowKey{Source: rec.Source, Category: Category(rec.Category), IndexID: rec.IndexID}
			if keep[key] {
				continue
			}
			err := tx.Where("source = ? AND category = ? AND index_id = ?", rec.Source, rec.Category, rec.IndexID).
				Delete(&CatalogRecord{}).Error
			if err != nil {
				return fmt.Errorf("failed to prune %s: %w", rec.IndexID, err)
			}
			report.Pruned++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// List returns stored rows ordered by category then index id.
// An empty category lists everything.
func (s *Store) List(ctx context.Context, category Category) ([]Row, error) {
	var records []CatalogRecord
	q := s.db.WithContext(ctx).Order("category").Order("index_id")
	if category != "" {
		q = q.Where("category = ?", string(category))
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalog rows: %w", err)
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row, err := rec.ToRow()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
