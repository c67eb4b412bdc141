package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/waabox/pipelinedeck/internal/domain"
)

// statsReport is the machine-readable form of the stats banner.
type statsReport struct {
	Project  string          `json:"project" yaml:"project"`
	Store    string          `json:"store" yaml:"store"`
	Counters domain.Counters `json:"counters" yaml:"counters"`
	Steps    []string        `json:"steps" yaml:"steps"`
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the current counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			project, err := projectLabel()
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			report := statsReport{
				Project:  project,
				Store:    s.cfg.StoreOrDefault(),
				Counters: s.counters.Load(cmd.Context()),
				Steps:    s.cfg.StepsOrDefault(),
			}
			return writeStats(cmd.OutOrStdout(), output, report)
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json or yaml")
	return cmd
}

func writeStats(w io.Writer, format string, r statsReport) error {
	switch format {
	case "text", "":
		fmt.Fprintf(w, "🚀 Welcome to pipelinedeck (%s)!\n", r.Project)
		fmt.Fprintln(w, "📊 Current Stats:")
		fmt.Fprintf(w, "   - Builds: %d\n", r.Counters.Builds)
		fmt.Fprintf(w, "   - Scans: %d\n", r.Counters.Scans)
		fmt.Fprintf(w, "   - Deployments: %d\n", r.Counters.Deployments)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "This dashboard demonstrates:")
		for _, step := range r.Steps {
			fmt.Fprintf(w, "✅ %s\n", step)
		}
		return nil
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
	default:
		return fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
	}
}
