// ABOUTME: The summary subcommand: prints the pie and scatter view models for one filter selection.
// ABOUTME: Output is JSON or YAML, so the aggregation can be inspected or scripted without a browser.
package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/2389-research/launchdash/aggregate"
	"github.com/2389-research/launchdash/dataset"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for summary.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type boundsReport struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

type scatterReport struct {
	Title  string                 `json:"title" yaml:"title"`
	Range  aggregate.PayloadRange `json:"payload_range" yaml:"payload_range"`
	Count  int                    `json:"count" yaml:"count"`
	Points []dataset.LaunchRecord `json:"points,omitempty" yaml:"points,omitempty"`
}

// summaryReport is the document summary prints.
type summaryReport struct {
	DatasetID string                 `json:"dataset_id" yaml:"dataset_id"`
	Source    string                 `json:"source" yaml:"source"`
	Records   int                    `json:"records" yaml:"records"`
	Sites     []string               `json:"sites" yaml:"sites"`
	Bounds    boundsReport           `json:"bounds" yaml:"bounds"`
	Filter    aggregate.FilterState  `json:"filter" yaml:"filter"`
	Pie       aggregate.PieViewModel `json:"pie" yaml:"pie"`
	Scatter   scatterReport          `json:"scatter" yaml:"scatter"`
}

type summaryOptions struct {
	site    string
	payload []float64
	output  string
	points  bool
}

func newSummaryCommand(a *app) *cobra.Command {
	opts := &summaryOptions{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print success counts and the payload/outcome subset for a selection",
		Example: `  launchdash summary
  launchdash summary --site "KSC LC-39A" --payload 2000,8000 --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output != outputJSON && opts.output != outputYAML {
				return fmt.Errorf("unknown output format %q (expected %s or %s)", opts.output, outputJSON, outputYAML)
			}
			d, err := a.loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			return writeSummary(a.stdout, buildSummary(d, opts), opts.output)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.site, "site", aggregate.AllSites, "launch site, or ALL")
	fs.Float64SliceVar(&opts.payload, "payload", nil, "payload range low,high in kg (default: dataset bounds)")
	fs.StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or yaml")
	fs.BoolVar(&opts.points, "points", false, "include every launch in the scatter subset")
	return cmd
}

func buildSummary(d *dataset.Dataset, opts *summaryOptions) summaryReport {
	lo, hi, _ := dataset.Bounds(d)
	f := aggregate.Resolve(d, opts.site, opts.payload)
	scatter := aggregate.ScatterFor(d, f)

	report := summaryReport{
		DatasetID: d.ID(),
		Source:    d.Source(),
		Records:   d.Len(),
		Sites:     d.Sites(),
		Bounds:    boundsReport{Min: lo, Max: hi},
		Filter:    f,
		Pie:       aggregate.ComputeSiteSummary(d, opts.site),
		Scatter: scatterReport{
			Title: scatter.Title,
			Range: scatter.Range,
			Count: len(scatter.Points),
		},
	}
	if opts.points {
		report.Scatter.Points = scatter.Points
	}
	return report
}

func writeSummary(w io.Writer, report summaryReport, format string) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
