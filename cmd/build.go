package cmd

import (
	"maps"

	"loot-manager/feature/catalog"

	"github.com/spf13/cobra"
)

var buildBindings = map[string]string{
	"scan.root":      "root",
	"scan.summary":   "csv",
	"scan.namespace": "scan-namespace",
	"scan.log":       "log",
}

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Scan a pack and generate the datapack in one run",
	Long: `Runs summary then datapack. The datapack is built from the CSV that was
just written, so the two steps see exactly the same rows as separate runs would.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bindings := maps.Clone(datapackBindings)
		maps.Copy(bindings, buildBindings)

		cfg, logg, err := setup(cmd, bindings)
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := requireRoot(cfg); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if _, err := runSummary(out, catalog.NewService(cfg.Scan, logg, nil), logg); err != nil {
			return err
		}

		svc, err := newDatapackService(cfg, logg)
		if err != nil {
			return err
		}
		m, err := svc.BuildFromSummary(cfg.Scan.Summary)
		if err != nil {
			return err
		}
		printManifest(out, m)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)
	f := buildCmd.Flags()
	f.String("root", "", "Pack folder containing index/ and data/")
	f.String("scan-namespace", "", "Namespace prefix for ids (default tacz)")
	f.String("log", "", "Optional file receiving every skipped file and warning")
	f.String("csv", "", "Summary CSV to write and read back (default tacz_summary.csv)")
	f.String("out", "", "Output datapack folder (default lwi_loot_datapack)")
	f.String("namespace", "", "Datapack namespace (default village)")
	f.Int("houses", 0, "Number of houses (default 8)")
	f.String("ak-id", "", "Gun id to guarantee once (default tacz:ak47)")
	f.Int("ak-house-index", 0, "0-based house holding the guaranteed gun (default 3)")
	f.String("profile", "", "YAML file overriding supply and resource items")
}
