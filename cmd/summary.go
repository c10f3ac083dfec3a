package cmd

import (
	"fmt"
	"io"

	"loot-manager/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var summaryBindings = map[string]string{
	"scan.root":      "root",
	"scan.summary":   "out",
	"scan.namespace": "namespace",
	"scan.log":       "log",
}

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Scan a gun pack into a summary CSV",
	Long: `Reads <root>/index/{ammo,guns,attachments}/*.json, enriches guns and
attachments from <root>/data, deduplicates and writes one CSV row per record.
Records that cannot be read are skipped and reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup(cmd, summaryBindings)
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := requireRoot(cfg); err != nil {
			return err
		}
		_, err = runSummary(cmd.OutOrStdout(), catalog.NewService(cfg.Scan, logg, nil), logg)
		return err
	},
}

// runSummary scans, writes the summary and reports diagnostics.
func runSummary(out io.Writer, svc *catalog.Service, logg *zap.Logger) (*catalog.Result, error) {
	scanCfg := svc.Config()
	result, err := svc.Build()
	if err != nil {
		return nil, err
	}
	if err := catalog.WriteSummaryFile(scanCfg.Summary, result.Rows); err != nil {
		return nil, err
	}
	if scanCfg.Log != "" {
		if err := result.Diagnostics.WriteFile(scanCfg.Log); err != nil {
			return nil, err
		}
	}
	logg.Debug("Summary written", zap.String("path", scanCfg.Summary))

	fmt.Fprintln(out, "OK:", scanCfg.Summary)
	fmt.Fprintln(out, "Rows:", len(result.Rows))
	if n := result.Diagnostics.Len(); n > 0 {
		fmt.Fprintln(out, "Skipped/Warned:", n)
		if scanCfg.Log == "" {
			for _, line := range result.Diagnostics.Preview(scanCfg.PreviewLimit) {
				fmt.Fprintln(out, line)
			}
		}
	}
	return result, nil
}

func init() {
	RootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().String("root", "", "Pack folder containing index/ and data/")
	summaryCmd.Flags().String("out", "", "Output CSV path (default tacz_summary.csv)")
	summaryCmd.Flags().String("namespace", "", "Namespace prefix for ids (default tacz)")
	summaryCmd.Flags().String("log", "", "Optional file receiving every skipped file and warning")
}
