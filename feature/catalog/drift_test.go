package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReconcile(t *testing.T) {
	shared := gunRow("tacz:ak47", "rifle")
	shared.Set(ColRPM, "600")

	changed := shared.Clone()
	changed.Set(ColRPM, "550")
	changed.Set(ColWeight, "3.1")

	packOnly := NewRow(CategoryAmmo, "tacz:9mm")
	storeOnly := NewRow(CategoryAttachments, "tacz:scope_acog")

	tests := []struct {
		name   string
		pack   []Row
		stored []Row
		want   []Drift
	}{
		{
			name:   "Identical",
			pack:   []Row{shared},
			stored: []Row{shared},
			want: []Drift{
				{Category: CategoryGuns, IndexID: "tacz:ak47", Source: SourceIndex, PackPresent: true, StorePresent: true, Mismatch: []string{}},
			},
		},
		{
			name:   "Presence",
			pack:   []Row{packOnly},
			stored: []Row{storeOnly},
			want: []Drift{
				{Category: CategoryAmmo, IndexID: "tacz:9mm", Source: SourceIndex, PackPresent: true, Mismatch: []string{}},
				{Category: CategoryAttachments, IndexID: "tacz:scope_acog", Source: SourceIndex, StorePresent: true, Mismatch: []string{}},
			},
		},
		{
			name:   "Mismatch",
			pack:   []Row{shared},
			stored: []Row{changed},
			want: []Drift{
				{
					Category: CategoryGuns, IndexID: "tacz:ak47", Source: SourceIndex, PackPresent: true, StorePresent: true,
					Mismatch: []string{"rpm: pack=600 store=550", "weight: pack= store=3.1"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.pack, tt.stored))
		})
	}
}

func TestOutOfSync(t *testing.T) {
	drifts := []Drift{
		{IndexID: "a", PackPresent: true, StorePresent: true},
		{IndexID: "b", PackPresent: true},
		{IndexID: "c", PackPresent: true, StorePresent: true, Mismatch: []string{"rpm: pack=1 store=2"}},
	}
	out := OutOfSync(drifts)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].IndexID)
	assert.Equal(t, "c", out[1].IndexID)
}

func TestService_Drift(t *testing.T) {
	ctx := context.Background()
	root := newPack(t)
	svc := NewService(testScanConfig(root), zap.NewNop(), setupSQLite(t))

	_, err := svc.Sync(ctx, false)
	require.NoError(t, err)

	drifts, err := svc.Drift(ctx)
	require.NoError(t, err)
	assert.Empty(t, drifts)

	writePackFile(t, root, "index/ammo/45acp.json", `{"stack_size": 30}`)
	drifts, err = svc.Drift(ctx)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, "tacz:45acp", drifts[0].IndexID)
	assert.True(t, drifts[0].PackPresent)
	assert.False(t, drifts[0].StorePresent)
}

func TestService_DriftWithoutStore(t *testing.T) {
	svc := NewService(testScanConfig(t.TempDir()), zap.NewNop(), nil)
	_, err := svc.Drift(context.Background())
	assert.ErrorIs(t, err, ErrStoreDisabled)
}
