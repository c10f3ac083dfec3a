package datapack

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"loot-manager/feature/loot"

	"github.com/goccy/go-json"
)

// Function names written into every datapack.
const (
	FunctionFill   = "fill_village"
	FunctionUpdate = "update_chests"
)

// Manifest lists what a Writer produced.
type Manifest struct {
	Dir string `json:"dir"`
	// Files are slash-separated paths relative to Dir.
	Files []string `json:"files"`
	// Tables maps variant names to their resource locations.
	Tables map[string]string `json:"tables"`
	// Functions are the in-game commands to run, e.g. "/function village:fill_village".
	Functions []string `json:"functions"`
	Warnings  []string `json:"warnings,omitempty"`
}

type packMeta struct {
	Pack struct {
		PackFormat  int    `json:"pack_format"`
		Description string `json:"description"`
	} `json:"pack"`
}

// PackMeta renders pack.mcmeta.
func PackMeta(cfg Config) ([]byte, error) {
	var meta packMeta
	meta.Pack.PackFormat = cfg.PackFormat
	meta.Pack.Description = cfg.Description
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode pack.mcmeta: %w", err)
	}
	return data, nil
}

// Writer lays out a datapack on disk.
type Writer struct {
	cfg   Config
	dests []Pos
}

// NewWriter creates a writer using the default village destinations.
func NewWriter(cfg Config) *Writer {
	return &Writer{cfg: cfg, dests: DefaultDestinations}
}

// WithDestinations replaces the clone destinations.
func (w *Writer) WithDestinations(dests []Pos) *Writer {
	w.dests = dests
	return w
}

// Write writes pack.mcmeta, one loot table per variant and both functions.
// The first variant is the baseline; a second one is bound to the guaranteed house.
func (w *Writer) Write(res *loot.Result) (*Manifest, error) {
	if len(res.Variants) == 0 {
		return nil, fmt.Errorf("no loot tables to write")
	}
	ns := w.cfg.Namespace
	m := &Manifest{Dir: w.cfg.Out, Tables: make(map[string]string), Warnings: res.Warnings}

	meta, err := PackMeta(w.cfg)
	if err != nil {
		return nil, err
	}
	if err := w.writeFile(m, "pack.mcmeta", meta); err != nil {
		return nil, err
	}

	for _, v := range res.Variants {
		data, err := v.Table.Marshal()
		if err != nil {
			return nil, err
		}
		rel := path.Join("data", ns, "loot_tables", "chests", v.Name+".json")
		if err := w.writeFile(m, rel, data); err != nil {
			return nil, err
		}
		m.Tables[v.Name] = TableRef(ns, v.Name)
	}

	normal := TableRef(ns, res.Variants[0].Name)
	guaranteed := ""
	if len(res.Variants) > 1 {
		guaranteed = TableRef(ns, res.Variants[1].Name)
	}

	placement := w.cfg.Placement()
	functions := []struct {
		name string
		text string
	}{
		{FunctionFill, FillFunction(placement, normal, guaranteed, w.cfg.GuaranteedHouseIndex)},
		{FunctionUpdate, UpdateChestsFunction(placement, w.dests, w.cfg.Dimension, ns)},
	}
	for _, fn := range functions {
		rel := path.Join("data", ns, "functions", fn.name+".mcfunction")
		if err := w.writeFile(m, rel, []byte(fn.text)); err != nil {
			return nil, err
		}
		m.Functions = append(m.Functions, fmt.Sprintf("/function %s:%s", ns, fn.name))
	}
	return m, nil
}

func (w *Writer) writeFile(m *Manifest, rel string, data []byte) error {
	full := filepath.Join(w.cfg.Out, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", rel, err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	m.Files = append(m.Files, rel)
	return nil
}
