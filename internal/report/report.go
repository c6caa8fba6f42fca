// Package report renders a dashboard as plain terminal text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/monsTa-b0y/exp-dashboard/internal/aggregate"
	"github.com/monsTa-b0y/exp-dashboard/internal/session"
)

// Options controls which sections are printed.
type Options struct {
	DateLayout string
	ShowTags   bool
	ShowDaily  bool
	NoColor    bool
}

var (
	heading = color.New(color.Bold, color.Underline)
	credit  = color.New(color.FgGreen)
	debit   = color.New(color.FgRed)
	muted   = color.New(color.Faint)
)

// Write prints the dashboard sections in display order.
func Write(w io.Writer, dash session.Dashboard, opts Options) error {
	if opts.DateLayout == "" {
		opts.DateLayout = "02/01/2006"
	}
	p := &printer{w: w, noColor: opts.NoColor}

	p.section("Summary")
	p.line("  Transactions  %d", len(dash.Rows))
	p.colored(credit, "  Credited      %s", money(dash.Totals.Credited))
	p.colored(debit, "  Debited       %s", money(dash.Totals.Debited))
	p.line("  Net           %s", money(dash.Totals.Net()))

	p.section("Spend by category")
	p.groups(dash.ByCategory)

	if opts.ShowTags {
		p.section("Spend by tag")
		p.groups(dash.ByTag)
	}

	if opts.ShowDaily {
		p.section("Daily spend")
		if len(dash.Daily) == 0 {
			p.colored(muted, "  none")
		}
		for _, d := range dash.Daily {
			p.line("  %s  %12s", d.Date.Format(opts.DateLayout), money(d.Amount))
		}
	}

	p.section(fmt.Sprintf("Top %d debits", len(dash.Top)))
	p.debits(dash.Top, opts.DateLayout)

	p.section("Uncategorized")
	p.debits(dash.Uncategorized, opts.DateLayout)

	return p.err
}

type printer struct {
	w       io.Writer
	noColor bool
	err     error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) colored(c *color.Color, format string, args ...any) {
	if p.noColor {
		p.line(format, args...)
		return
	}
	p.line("%s", c.Sprintf(format, args...))
}

func (p *printer) section(title string) {
	p.line("")
	p.colored(heading, "%s", title)
}

func (p *printer) groups(groups []aggregate.Group) {
	if len(groups) == 0 {
		p.colored(muted, "  none")
		return
	}
	width := 0
	for _, g := range groups {
		width = max(width, len(g.Name))
	}
	for _, g := range groups {
		p.line("  %-*s  %12s", width, g.Name, money(g.Amount))
	}
}

func (p *printer) debits(debits []aggregate.Debit, layout string) {
	if len(debits) == 0 {
		p.colored(muted, "  none")
		return
	}
	for _, d := range debits {
		p.line("  #%-4d %s  %12s  %-16s %s",
			d.ID, d.Date.Format(layout), money(d.AbsAmount), d.Category, truncate(d.Details, 48))
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
