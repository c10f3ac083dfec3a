package datapack

import (
	"loot-manager/feature/catalog"
	"loot-manager/feature/loot"

	"go.uber.org/zap"
)

// Service turns catalog rows into a datapack on disk.
type Service struct {
	cfg    Config
	synth  *loot.Synthesizer
	logger *zap.Logger
}

// NewService creates a datapack service.
func NewService(cfg Config, synth *loot.Synthesizer, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, synth: synth, logger: logger}
}

// Build synthesizes every loot table variant from rows and writes the datapack.
func (s *Service) Build(rows []catalog.Row) (*Manifest, error) {
	in := loot.InputsFromRows(rows, s.synth.Config().Ammo.FallbackStack)
	res, err := s.synth.BuildVariants(in)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		s.logger.Warn(w)
	}

	m, err := NewWriter(s.cfg).Write(res)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Datapack generated",
		zap.String("dir", m.Dir),
		zap.Int("pistols", len(in.Pistols)),
		zap.Int("shotguns", len(in.Shotguns)),
		zap.Int("rifles", len(in.Rifles)),
		zap.Int("ammo", len(in.AmmoStack)),
		zap.Int("attachments", len(in.Attachments)),
	)
	return m, nil
}

// BuildFromSummary reads a summary CSV and builds the datapack from it.
func (s *Service) BuildFromSummary(path string) (*Manifest, error) {
	rows, err := catalog.ReadSummaryFile(path)
	if err != nil {
		return nil, err
	}
	return s.Build(rows)
}
