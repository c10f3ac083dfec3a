package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStoreDisabled is returned by store operations when no database is configured.
var ErrStoreDisabled = errors.New("catalog store is not configured")

// Result is the outcome of one scan.
type Result struct {
	// Rows holds the deduplicated catalog in first-seen order.
	Rows []Row
	// Scanned counts rows yielded before deduplication.
	Scanned     int
	Diagnostics *Diagnostics
}

// Filter returns the rows of category, or all rows when category is empty.
func (r *Result) Filter(category Category) []Row {
	if category == "" {
		return r.Rows
	}
	var out []Row
	for _, row := range r.Rows {
		if row.Category == category {
			out = append(out, row)
		}
	}
	return out
}

// Service builds catalogs from a gun pack and keeps them in the store.
type Service struct {
	cfg    ScanConfig
	logger *zap.Logger
	store  *Store
}

// NewService creates a catalog service. db may be nil when persistence is not used.
func NewService(cfg ScanConfig, logger *zap.Logger, db *gorm.DB) *Service {
	s := &Service{cfg: cfg, logger: logger}
	if db != nil {
		s.store = NewStore(db)
	}
	return s
}

// Config returns the scan configuration.
func (s *Service) Config() ScanConfig {
	return s.cfg
}

// Build scans the pack and aggregates the rows. Only an unreadable root is fatal;
// everything else ends up in the result's diagnostics.
func (s *Service) Build() (*Result, error) {
	diags := &Diagnostics{}
	scanner := NewScanner(s.cfg, diags, s.logger)
	if err := scanner.CheckRoot(); err != nil {
		return nil, err
	}

	agg := NewAggregate()
	scanned := agg.AddAll(scanner.ScanAll())

	s.logger.Info("Catalog built",
		zap.String("root", s.cfg.Root),
		zap.Int("rows", agg.Len()),
		zap.Int("scanned", scanned),
		zap.Int("diagnostics", diags.Len()),
	)
	return &Result{Rows: agg.Rows(), Scanned: scanned, Diagnostics: diags}, nil
}

// Sync scans the pack and upserts the result into the store.
func (s *Service) Sync(ctx context.Context, prune bool) (*SyncReport, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	result, err := s.Build()
	if err != nil {
		return nil, err
	}
	if err := s.store.Migrate(ctx); err != nil {
		return nil, err
	}
	report, err := s.store.Sync(ctx, result.Rows, prune)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Catalog synced", zap.Int("upserted", report.Upserted), zap.Int("pruned", report.Pruned))
	return report, nil
}

// Stored lists rows from the store.
func (s *Service) Stored(ctx context.Context, category Category) ([]Row, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	return s.store.List(ctx, category)
}

// Drift compares a fresh scan with the stored catalog and returns the keys that differ.
func (s *Service) Drift(ctx context.Context) ([]Drift, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	result, err := s.Build()
	if err != nil {
		return nil, err
	}
	stored, err := s.store.List(ctx, "")
	if err != nil {
		return nil, err
	}
	drifts := OutOfSync(Reconcile(result.Rows, stored))
	s.logger.Info("Catalog reconciled", zap.Int("pack", len(result.Rows)), zap.Int("stored", len(stored)), zap.Int("drifted", len(drifts)))
	return drifts, nil
}
