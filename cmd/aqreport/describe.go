package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/air-quality-dashboard/internal/dashboard"
	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
	"github.com/couchcryptid/air-quality-dashboard/internal/observability"
)

func newDescribeCmd(a *app) *cobra.Command {
	var location, start, end, format string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the report for a location and date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := domain.ParseLocation(location)
			if err != nil {
				return err
			}
			r := domain.DatasetBounds()
			if start != "" {
				if r.Start, err = domain.ParseDate(start); err != nil {
					return err
				}
			}
			if end != "" {
				if r.End, err = domain.ParseDate(end); err != nil {
					return err
				}
			}

			ds, err := a.loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			// Unregistered metrics: the CLI has no scrape endpoint.
			svc := dashboard.NewService(ds, a.logger, observability.NewMetricsForTesting(), dashboard.Options{
				PreviewRows: a.cfg.PreviewRows,
			})
			report, err := svc.Report(domain.Selection{Location: loc, Range: r})
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, format)
		},
	}

	f := cmd.Flags()
	f.StringVar(&location, "location", string(domain.Aotizhongxin), "monitoring location")
	f.StringVar(&start, "start", "", "first day, YYYY-MM-DD (default: start of data)")
	f.StringVar(&end, "end", "", "last day, YYYY-MM-DD (default: end of data)")
	f.StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}

func writeReport(w io.Writer, r dashboard.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		return writeText(w, r)
	default:
		return fmt.Errorf("unknown format %q: want text, json or yaml", format)
	}
}

func writeText(w io.Writer, r dashboard.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s  %s  (%d of %d rows)\n\n", r.Location, r.Range, r.ViewRows, r.TotalRows)
	if r.Empty() {
		fmt.Fprintln(tw, "No data for the selected range.")
		return tw.Flush()
	}

	s := r.Summary
	fmt.Fprintln(tw, "PM2.5 summary")
	fmt.Fprintln(tw, "count\tmean\tstd\tmin\t25%\t50%\t75%\tmax")
	fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n\n",
		s.Count, num(s.Mean), num(s.Std), num(s.Min), num(s.P25), num(s.P50), num(s.P75), num(s.Max))

	if !r.Correlation.Empty() {
		fmt.Fprintln(tw, "Correlation")
		labels := make([]string, len(r.Correlation.Variables))
		for i, v := range r.Correlation.Variables {
			labels[i] = string(v)
		}
		fmt.Fprintf(tw, "\t%s\n", strings.Join(labels, "\t"))
		for i, v := range r.Correlation.Variables {
			cells := make([]string, len(r.Correlation.Values[i]))
			for j, c := range r.Correlation.Values[i] {
				cells[j] = num(c)
			}
			fmt.Fprintf(tw, "%s\t%s\n", v, strings.Join(cells, "\t"))
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintln(tw, "Monthly mean PM2.5")
	for _, m := range r.Monthly {
		fmt.Fprintf(tw, "%s\t%.2f\t(%d rows)\n", m.Label(), m.Mean, m.Count)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Weekday vs weekend")
	for _, g := range r.Weekend {
		fmt.Fprintf(tw, "%s\t%.2f\t± %s\t(%d rows)\n", g.Group.Label(), g.Mean, num(g.Std), g.Count)
	}
	return tw.Flush()
}

func num(f domain.NullFloat) string {
	if !f.Valid() {
		return "-"
	}
	return fmt.Sprintf("%.2f", f.Float64())
}
