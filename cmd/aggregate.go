package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/covmerge/internal/config"
	"github.com/mouse-blink/covmerge/internal/domain"
	m "github.com/mouse-blink/covmerge/internal/model"
)

const aggregateLongDescription = `Aggregates coverage and outputs covered lines.

Every file in the input folder matching the mask is read as one page's
coverage report (a JSON array of {url, ranges, text}). Ranges of the same
resource are merged across pages and the covered text is written under the
output folder, one file per resource, next to stats.txt.

Settings can also come from COVMERGE_INPUT, COVMERGE_OUTPUT, COVMERGE_MASK
and COVMERGE_PARALLEL.`

// aggregateCmd represents the aggregate command.
var aggregateCmd = newAggregateCmd()

func newAggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Aggregate coverage reports and write covered content",
		Long:  aggregateLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(settings)
			if err != nil {
				return err
			}

			return workflow.Aggregate(cmd.Context(), domain.AggregateArgs{
				Input:   m.Path(cfg.Input),
				Output:  m.Path(cfg.Output),
				Mask:    cfg.Mask,
				Threads: cfg.Parallel,
			})
		},
	}
	cmd.Flags().StringP(config.KeyInput, "i", "", "folder containing browser coverage reports (required)")
	cmd.Flags().StringP(config.KeyOutput, "o", "", "folder to store output files (required)")
	cmd.Flags().StringP(config.KeyMask, "m", config.DefaultMask, "report file name mask")
	cmd.Flags().IntP(config.KeyParallel, "p", 0, "number of parallel file workers (0 = unlimited)")
	_ = config.BindFlags(settings, cmd.Flags())

	return cmd
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
}
