package loot

import (
	"testing"

	"loot-manager/feature/catalog"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gun(id, gunType string, extra ...string) catalog.Row {
	r := catalog.NewRow(catalog.CategoryGuns, id)
	r.Set(catalog.ColType, gunType)
	for i := 0; i+1 < len(extra); i += 2 {
		r.Set(extra[i], extra[i+1])
	}
	return r
}

func ammo(id, stack string) catalog.Row {
	r := catalog.NewRow(catalog.CategoryAmmo, id)
	if stack != "" {
		r.Set(catalog.ColStackSize, stack)
	}
	return r
}

func attachment(id string) catalog.Row {
	return catalog.NewRow(catalog.CategoryAttachments, id)
}

func newSynth(t *testing.T, cfg Config) *Synthesizer {
	t.Helper()
	s, err := NewSynthesizer(cfg, DefaultProfile(), zap.NewNop())
	require.NoError(t, err)
	return s
}
