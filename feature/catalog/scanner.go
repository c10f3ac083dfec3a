package catalog

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"loot-manager/core/relaxjson"
	"loot-manager/core/utils"

	"go.uber.org/zap"
)

// RowSeq is a lazy sequence of catalog rows.
type RowSeq = iter.Seq[Row]

// Scanner walks the pack index and yields one row per valid record.
type Scanner struct {
	cfg      ScanConfig
	enricher *Enricher
	diags    *Diagnostics
	logger   *zap.Logger
}

// NewScanner creates a scanner that records failures into diags.
func NewScanner(cfg ScanConfig, diags *Diagnostics, logger *zap.Logger) *Scanner {
	return &Scanner{
		cfg:      cfg,
		enricher: NewEnricher(cfg.DataDir()),
		diags:    diags,
		logger:   logger,
	}
}

// CheckRoot fails when the pack root cannot be read at all.
func (s *Scanner) CheckRoot() error {
	info, err := os.Stat(s.cfg.Root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadableRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrUnreadableRoot, s.cfg.Root)
	}
	return nil
}

// ScanAll yields ammo, then guns, then attachments.
func (s *Scanner) ScanAll() RowSeq {
	return func(yield func(Row) bool) {
		for _, seq := range []RowSeq{s.ScanAmmo(), s.ScanGuns(), s.ScanAttachments()} {
			for row := range seq {
				if !yield(row) {
					return
				}
			}
		}
	}
}

// ScanAmmo yields ammo rows. stack_size is required and truncated to an integer.
func (s *Scanner) ScanAmmo() RowSeq {
	return s.scan(CategoryAmmo, func(row *Row, path string, doc *relaxjson.Document) error {
		raw := doc.Value("stack_size")
		if raw == nil {
			return fmt.Errorf("%w: stack_size", ErrMissingRequiredField)
		}
		stack, err := utils.ToInt(raw)
		if err != nil {
			return fmt.Errorf("%w: bad stack_size: %v", ErrInvalidField, raw)
		}

		row.Set(ColStackSize, fmt.Sprint(stack))
		row.Set(ColName, utils.ToString(doc.Value("name")))
		row.Set(ColDisplay, utils.ToString(doc.Value("display")))
		row.Set(ColFile, path)
		return nil
	})
}

// ScanGuns yields gun rows enriched from data/guns. A gun without a type is skipped.
func (s *Scanner) ScanGuns() RowSeq {
	return s.scan(CategoryGuns, func(row *Row, path string, doc *relaxjson.Document) error {
		gunType := doc.Value("type")
		if !utils.IsTruthy(gunType) {
			return fmt.Errorf("%w: type (pistol/shotgun/rifle/...)", ErrMissingRequiredField)
		}
		ref := utils.ToString(doc.Value("data"))

		row.Set(ColType, strings.ToLower(utils.ToString(gunType)))
		row.Set(ColItemType, utils.ToString(doc.Value("item_type")))
		row.Set(ColSort, utils.ToString(doc.Value("sort")))
		row.Set(ColName, utils.ToString(doc.Value("name")))
		row.Set(ColDisplay, utils.ToString(doc.Value("display")))
		row.Set(ColDataRef, ref)
		row.Set(ColTooltip, utils.ToString(doc.Value("tooltip")))
		row.Set(ColFile, path)

		s.enricher.EnrichGun(row, ref, s.diags)
		return nil
	})
}

// ScanAttachments yields attachment rows enriched from data/attachments.
func (s *Scanner) ScanAttachments() RowSeq {
	return s.scan(CategoryAttachments, func(row *Row, path string, doc *relaxjson.Document) error {
		attType := ""
		if v := doc.Value("type"); utils.IsTruthy(v) {
			attType = strings.ToLower(utils.ToString(v))
		}
		ref := utils.ToString(doc.Value("data"))

		row.Set(ColType, attType)
		row.Set(ColName, utils.ToString(doc.Value("name")))
		row.Set(ColDisplay, utils.ToString(doc.Value("display")))
		row.Set(ColDataRef, ref)
		row.Set(ColFile, path)

		s.enricher.EnrichAttachment(row, ref, s.diags)
		return nil
	})
}

type buildFunc func(row *Row, path string, doc *relaxjson.Document) error

func (s *Scanner) scan(category Category, build buildFunc) RowSeq {
	return func(yield func(Row) bool) {
		dir := filepath.Join(s.cfg.IndexDir(), string(category))
		files, err := listRecords(dir)
		if err != nil {
			s.diags.Add(Diagnostic{Kind: KindMissing, Category: category, File: dir, Err: err})
			s.logger.Warn("Category folder missing", zap.String("category", string(category)), zap.String("dir", dir))
			return
		}

		for _, path := range files {
			stem := strings.TrimSuffix(filepath.Base(path), ".json")
			row := NewRow(category, MakeIndexID(s.cfg.Namespace, stem))

			if err := s.buildRow(&row, path, build); err != nil {
				s.diags.Add(Diagnostic{Kind: KindSkip, Category: category, File: path, Err: err})
				s.logger.Debug("Skipped record", zap.String("file", path), zap.Error(err))
				continue
			}
			if !yield(row) {
				return
			}
		}
	}
}

func (s *Scanner) buildRow(row *Row, path string, build buildFunc) error {
	if row.IndexID == "" {
		return fmt.Errorf("%w: index_id", ErrMissingRequiredField)
	}
	doc, err := relaxjson.Load(path)
	if err != nil {
		return err
	}
	return build(row, path, doc)
}

// listRecords returns the *.json files of dir, sorted by name.
func listRecords(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDirectory, dir)
		}
		return nil, fmt.Errorf("%w: %w", ErrMissingDirectory, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
