package cmd

import (
	"fmt"
	"strings"

	"loot-manager/core/storage"
	"loot-manager/feature/datapack"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishBindings = map[string]string{
	"datapack.out":                "dir",
	"datapack.prefix":             "prefix",
	"datapack.upload_concurrency": "concurrency",
	"storage.bucket":              "bucket",
}

var pruneFlag bool
var fixStructureFlag bool

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload a generated datapack to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup(cmd, publishBindings)
		if err != nil {
			return err
		}
		defer logg.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}
		pub := datapack.NewPublisher(client, cfg.Storage.Bucket, cfg.Datapack, logg)

		report, err := pub.Publish(cmd.Context(), cfg.Datapack.Out, cfg.Datapack.Prefix, pruneFlag)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Uploaded %d files (%d bytes) to %s/%s\n", len(report.Uploaded), report.Bytes, report.Bucket, report.Prefix)
		for _, key := range report.Pruned {
			fmt.Fprintln(out, "Pruned:", key)
		}
		return nil
	},
}

// publishCheckCmd represents the publish check command
var publishCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that a published datapack has the required structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup(cmd, publishBindings)
		if err != nil {
			return err
		}
		defer logg.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}
		pub := datapack.NewPublisher(client, cfg.Storage.Bucket, cfg.Datapack, logg)

		missing, err := pub.CheckStructure(cmd.Context(), cfg.Datapack.Prefix)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(missing) == 0 {
			fmt.Fprintln(out, "Structure OK")
			return nil
		}
		fmt.Fprintln(out, "Missing:", strings.Join(missing, ", "))
		if !fixStructureFlag {
			return fmt.Errorf("datapack structure incomplete under %s", cfg.Datapack.Prefix)
		}
		if err := pub.FixStructure(cmd.Context(), cfg.Datapack.Prefix, missing); err != nil {
			return err
		}
		logg.Info("Structure fixed", zap.Strings("entries", missing))
		fmt.Fprintln(out, "Structure fixed")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(publishCmd)
	publishCmd.AddCommand(publishCheckCmd)

	pf := publishCmd.PersistentFlags()
	pf.String("dir", "", "Datapack folder to upload (default lwi_loot_datapack)")
	pf.String("prefix", "", "Object key prefix (default lwi_loot_datapack)")
	pf.String("bucket", "", "Target bucket (default datapacks)")
	pf.Int("concurrency", 0, "Parallel uploads (default 4)")

	publishCmd.Flags().BoolVar(&pruneFlag, "prune", false, "Remove objects under the prefix that are not part of the datapack")
	publishCheckCmd.Flags().BoolVar(&fixStructureFlag, "fix", false, "Create missing entries")
}
