package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writePackFile writes content under root, creating folders as needed.
func writePackFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// newPack builds a small pack with every category and one enrichment record each.
func newPack(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writePackFile(t, root, "index/ammo/9mm.json", `{"stack_size": 60, "name": "9mm"}`)
	writePackFile(t, root, "index/ammo/12g.json", `{
		// shells
		"stack_size": "20.0",
	}`)
	writePackFile(t, root, "index/guns/glock_17.json", `{"type": "Pistol", "data": "tacz:glock_17_data"}`)
	writePackFile(t, root, "index/guns/db_short.json", `{"type": "shotgun", "data": "db_short_data"}`)
	writePackFile(t, root, "index/guns/rpg7.json", `{"name": "rpg"}`)
	writePackFile(t, root, "index/attachments/scope_acog.json", `{"type": "SCOPE", "data": "tacz:scope_acog_data"}`)

	writePackFile(t, root, "data/guns/glock_17_data.json", `{
		"ammo": "tacz:9mm",
		"ammo_amount": 17,
		"fire_mode": ["SEMI", "burst"],
		"bullet": {"damage": 5.5, "speed": 300},
	}`)
	writePackFile(t, root, "data/guns/db_short_data.json", `{"ammo": "tacz:12g", "fire_mode": ["semi"]}`)
	writePackFile(t, root, "data/attachments/scope_acog_data.json", `{"weight": 0.4, "extended_mag_level": 0}`)
	return root
}

func testScanConfig(root string) ScanConfig {
	return ScanConfig{Root: root, Namespace: "tacz", PreviewLimit: 15}
}
