package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/monsTa-b0y/exp-dashboard/internal/filter"
	"github.com/monsTa-b0y/exp-dashboard/internal/report"
	"github.com/monsTa-b0y/exp-dashboard/internal/session"
)

var reportOpts struct {
	from, to   string
	categories []string
	min, max   string
	top        int
	tags       bool
	daily      bool
	noColor    bool
}

var reportCmd = &cobra.Command{
	Use:   "report <file.csv>",
	Short: "Print a dashboard for one transactions file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}
		defer f.Close()

		ledger, err := session.Build(a.loader, a.categorizer, filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		a.log.Debug().
			Str("ledger_id", ledger.ID.String()).
			Int("rows", ledger.Len()).
			Msg("ledger loaded")

		spec, err := reportOverrides(cmd).Refine(filter.Defaults(ledger), a.cfg.DateLayout)
		if err != nil {
			return err
		}

		dash := session.Compute(ledger, spec, reportOpts.top, a.categorizer.Fallback())
		return report.Write(cmd.OutOrStdout(), dash, report.Options{
			ShowTags:  reportOpts.tags,
			ShowDaily: reportOpts.daily,
			NoColor:   reportOpts.noColor,
		})
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportOpts.from, "from", "", "first date to include (dd/mm/yyyy or yyyy-mm-dd)")
	f.StringVar(&reportOpts.to, "to", "", "last date to include")
	f.StringSliceVar(&reportOpts.categories, "category", nil, "categories to include (repeatable)")
	f.StringVar(&reportOpts.min, "min", "", "minimum signed amount")
	f.StringVar(&reportOpts.max, "max", "", "maximum signed amount")
	f.IntVar(&reportOpts.top, "top", 0, "number of largest debits to list")
	f.BoolVar(&reportOpts.tags, "tags", false, "include the spend by tag breakdown")
	f.BoolVar(&reportOpts.daily, "daily", false, "include daily totals")
	f.BoolVar(&reportOpts.noColor, "no-color", false, "disable colored output")
}

func reportOverrides(cmd *cobra.Command) filter.Overrides {
	return filter.Overrides{
		Start:         reportOpts.from,
		End:           reportOpts.to,
		Categories:    reportOpts.categories,
		HasCategories: cmd.Flags().Changed("category"),
		Min:           reportOpts.min,
		Max:           reportOpts.max,
	}
}
