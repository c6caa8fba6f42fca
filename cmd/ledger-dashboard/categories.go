package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the keyword table in match order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		c := a.categorizer
		for i, name := range c.Categories() {
			kws := c.Keywords(name)
			if len(kws) == 0 {
				fmt.Fprintf(out, "%2d. %s (tag %q)\n", i+1, name, a.cfg.MoneyReceivedTag)
				continue
			}
			fmt.Fprintf(out, "%2d. %s: %s\n", i+1, name, strings.Join(kws, ", "))
		}
		fmt.Fprintf(out, "    unmatched rows: %s\n", c.Fallback())
		return nil
	},
}
