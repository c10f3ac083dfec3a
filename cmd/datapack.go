package cmd

import (
	"fmt"
	"io"
	"strings"

	"loot-manager/core/config"
	"loot-manager/feature/datapack"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var datapackBindings = map[string]string{
	"scan.summary":                    "csv",
	"datapack.out":                    "out",
	"datapack.namespace":              "namespace",
	"datapack.base_x":                 "base-x",
	"datapack.y":                      "y",
	"datapack.z":                      "z",
	"datapack.houses":                 "houses",
	"datapack.step_x":                 "step-x",
	"datapack.guaranteed_house_index": "ak-house-index",
	"loot.guaranteed_id":              "ak-id",
	"loot.profile_file":               "profile",
}

// datapackCmd represents the datapack command
var datapackCmd = &cobra.Command{
	Use:   "datapack",
	Short: "Generate a loot datapack from a summary CSV",
	Long: `Reads the summary CSV, synthesizes the house loot tables and writes
pack.mcmeta, the loot tables and the fill_village/update_chests functions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup(cmd, datapackBindings)
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc, err := newDatapackService(cfg, logg)
		if err != nil {
			return err
		}
		m, err := svc.BuildFromSummary(cfg.Scan.Summary)
		if err != nil {
			return err
		}
		printManifest(cmd.OutOrStdout(), m)
		return nil
	},
}

func newDatapackService(cfg *config.Config, logg *zap.Logger) (*datapack.Service, error) {
	synth, err := newSynthesizer(cfg, logg)
	if err != nil {
		return nil, err
	}
	return datapack.NewService(cfg.Datapack, synth, logg), nil
}

func printManifest(out io.Writer, m *datapack.Manifest) {
	fmt.Fprintln(out, "Datapack generated:", m.Dir)
	fmt.Fprintln(out, "Functions to run in-game:")
	for _, fn := range m.Functions {
		fmt.Fprintln(out, " -", fn)
	}
	fmt.Fprintln(out, "Loot tables:")
	for _, f := range m.Files {
		if f != "pack.mcmeta" && !strings.HasSuffix(f, ".mcfunction") {
			fmt.Fprintln(out, " -", f)
		}
	}
	for _, w := range m.Warnings {
		fmt.Fprintln(out, "Warning:", w)
	}
}

func init() {
	RootCmd.AddCommand(datapackCmd)
	f := datapackCmd.Flags()
	f.String("csv", "", "Summary CSV to read (default tacz_summary.csv)")
	f.String("out", "", "Output datapack folder (default lwi_loot_datapack)")
	f.String("namespace", "", "Datapack namespace (default village)")
	f.Int("base-x", 0, "X of the first staging chest (default 282)")
	f.Int("y", 0, "Y of the staging row (default 55)")
	f.Int("z", 0, "Z of the staging row (default 491)")
	f.Int("houses", 0, "Number of houses (default 8)")
	f.Int("step-x", 0, "X distance between staging chests (default 2)")
	f.String("ak-id", "", "Gun id to guarantee once (default tacz:ak47)")
	f.Int("ak-house-index", 0, "0-based house holding the guaranteed gun (default 3)")
	f.String("profile", "", "YAML file overriding supply and resource items")
}
