package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"loot-manager/core/config"
	"loot-manager/feature/catalog"

	"go.uber.org/zap"
)

// Prints every scanned gun whose id contains the given text, with the
// enrichment columns and any diagnostics raised for it.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_gun <id fragment>")
	}
	needle := os.Args[1]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Scan.Root == "" {
		log.Fatal("SCAN_ROOT is not set")
	}

	diags := &catalog.Diagnostics{}
	scanner := catalog.NewScanner(cfg.Scan, diags, zap.NewNop())
	if err := scanner.CheckRoot(); err != nil {
		log.Fatal(err)
	}

	count := 0
	for row := range scanner.ScanGuns() {
		if !strings.Contains(row.IndexID, needle) {
			continue
		}
		count++
		fmt.Printf("Gun: %s (%s)\n", row.IndexID, row.Get(catalog.ColType))
		for _, f := range row.Attributes() {
			fmt.Printf("  %s = %s\n", f.Key, f.Value)
		}
		if row.Get(catalog.ColDataFile) == "" {
			fmt.Println("  ⚠️  No data file resolved")
		} else {
			fmt.Println("  ✅ Enriched")
		}
	}

	fmt.Printf("\nGuns matching '%s': %d\n", needle, count)
	for _, d := range diags.Entries() {
		if strings.Contains(d.File, needle) {
			fmt.Println(d.String())
		}
	}
}
