package loot

import (
	"loot-manager/feature/catalog"

	"go.uber.org/zap"
)

// RowSource produces a fresh catalog.
type RowSource interface {
	Build() (*catalog.Result, error)
}

// Service synthesizes loot tables from a live catalog scan.
type Service struct {
	source RowSource
	synth  *Synthesizer
	logger *zap.Logger
}

// NewService creates a loot service.
func NewService(source RowSource, synth *Synthesizer, logger *zap.Logger) *Service {
	return &Service{source: source, synth: synth, logger: logger}
}

// Build scans the catalog and synthesizes every variant.
func (s *Service) Build() (*Result, error) {
	scan, err := s.source.Build()
	if err != nil {
		return nil, err
	}
	in := InputsFromRows(scan.Rows, s.synth.Config().Ammo.FallbackStack)
	res, err := s.synth.BuildVariants(in)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		s.logger.Warn(w)
	}
	return res, nil
}

// Table builds the catalog and returns the variant named name.
func (s *Service) Table(name string) (*Table, error) {
	res, err := s.Build()
	if err != nil {
		return nil, err
	}
	return res.Variant(name)
}
