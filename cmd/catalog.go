package cmd

import (
	"fmt"
	"strings"

	"loot-manager/core/database"
	"loot-manager/feature/catalog"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var catalogBindings = map[string]string{
	"scan.root":       "root",
	"scan.namespace":  "namespace",
	"database.driver": "driver",
	"database.name":   "db-name",
}

var syncPruneFlag bool
var listJSONFlag bool

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Persist and inspect the catalog in a SQL database",
}

// catalogSyncCmd represents the catalog sync command
var catalogSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan the pack and upsert every row into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup(cmd, catalogBindings)
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := requireRoot(cfg); err != nil {
			return err
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		report, err := catalog.NewService(cfg.Scan, logg, db).Sync(cmd.Context(), syncPruneFlag)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Upserted: %d\nPruned: %d\n", report.Upserted, report.Pruned)
		return nil
	},
}

// catalogListCmd represents the catalog list command
var catalogListCmd = &cobra.Command{
	Use:       "list [category]",
	Short:     "List stored rows, optionally of one category",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"ammo", "guns", "attachments"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var category catalog.Category
		if len(args) == 1 {
			category = catalog.Category(args[0])
			if !category.Valid() {
				return fmt.Errorf("unknown category: %s", args[0])
			}
		}

		cfg, logg, err := setup(cmd, catalogBindings)
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		rows, err := catalog.NewStore(db).List(cmd.Context(), category)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSONFlag {
			data, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}
		for _, r := range rows {
			fmt.Fprintln(out, strings.Join([]string{string(r.Category), r.IndexID, r.Get(catalog.ColType), r.Get(catalog.ColStackSize)}, "\t"))
		}
		fmt.Fprintln(out, "Rows:", len(rows))
		return nil
	},
}

// catalogDiffCmd represents the catalog diff command
var catalogDiffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show rows where the pack and the database disagree",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup(cmd, catalogBindings)
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := requireRoot(cfg); err != nil {
			return err
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		drifts, err := catalog.NewService(cfg.Scan, logg, db).Drift(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, d := range drifts {
			switch {
			case !d.StorePresent:
				fmt.Fprintf(out, "+ %s %s\n", d.Category, d.IndexID)
			case !d.PackPresent:
				fmt.Fprintf(out, "- %s %s\n", d.Category, d.IndexID)
			default:
				fmt.Fprintf(out, "~ %s %s: %s\n", d.Category, d.IndexID, strings.Join(d.Mismatch, "; "))
			}
		}
		fmt.Fprintln(out, "Drifted:", len(drifts))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogSyncCmd, catalogListCmd, catalogDiffCmd)

	pf := catalogCmd.PersistentFlags()
	pf.String("driver", "", "Database driver: mysql or sqlite (default mysql)")
	pf.String("db-name", "", "Database name, or file path for sqlite")

	for _, c := range []*cobra.Command{catalogSyncCmd, catalogDiffCmd} {
		c.Flags().String("root", "", "Pack folder containing index/ and data/")
		c.Flags().String("namespace", "", "Namespace prefix for ids (default tacz)")
	}
	catalogSyncCmd.Flags().BoolVar(&syncPruneFlag, "prune", false, "Delete stored rows no longer in the pack")
	catalogListCmd.Flags().BoolVar(&listJSONFlag, "json", false, "Print rows as JSON")
}
