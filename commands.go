package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCommand creates a Cobra command tree for dataset analysis.
// The returned command should be added to a parent CLI's root command.
//
// Commands provided:
//   - dataset stats [--subset <spec>] [--limit N] [--keep-going] [--no-cache] [--plot <dir>]
//   - dataset verify
//   - dataset list [--subset <spec>]
//   - dataset info
//   - dataset prune
//
// Global flags: --json, --quiet, --verbose
func NewCommand(cfg Config, opts ...AnalyzerOption) *cobra.Command {
	var (
		jsonOutput bool
		quiet      bool
		verbose    bool
	)

	// Analyzer will be created in PersistentPreRunE
	var az Analyzer

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Analyze the labeled image dataset",
		Long:  "Compute descriptive statistics over the labeled image dataset, broken out by data source subset.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip analyzer creation for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			var err error
			az, err = NewAnalyzer(cfg, opts...)
			if err != nil {
				return fmt.Errorf("failed to initialize analyzer: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if az == nil {
				return nil
			}
			return az.Close()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Add subcommands
	cmd.AddCommand(statsCmd(&az, &jsonOutput, &quiet, &verbose))
	cmd.AddCommand(verifyCmd(&az, &jsonOutput, &quiet))
	cmd.AddCommand(listCmd(&az, &jsonOutput))
	cmd.AddCommand(infoCmd(&az, &jsonOutput))
	cmd.AddCommand(pruneCmd(&az, &quiet))

	return cmd
}

func statsCmd(az *Analyzer, jsonOutput, quiet, verbose *bool) *cobra.Command {
	var (
		subsetSpec string
		limit      int
		keepGoing  bool
		noCache    bool
		plotDir    string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Compute per-subset image statistics",
		Long: "Open every image in the selected subsets and report dimension and " +
			"per-channel color statistics. Without --subset, all registered subsets are reported.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			subsets := (*az).Subsets()
			if subsetSpec != "" {
				subset, err := ParseSubset(subsetSpec)
				if err != nil {
					return err
				}
				subsets = []Subset{subset}
			}

			var scanOpts []ScanOption
			if keepGoing {
				scanOpts = append(scanOpts, WithKeepGoing())
			}
			if noCache {
				scanOpts = append(scanOpts, WithNoCache())
			}
			if limit > 0 {
				scanOpts = append(scanOpts, WithLimit(limit))
			}

			var summaries []SubsetSummary
			for _, subset := range subsets {
				opts := scanOpts
				if !*quiet {
					opts = append(opts, WithProgress(func(p ScanProgress) {
						renderScanProgress(cmd.OutOrStdout(), subset, p)
					}))
				}

				series, err := (*az).Collect(ctx, subset, opts...)
				if !*quiet {
					fmt.Fprint(cmd.OutOrStdout(), "\r\x1b[K")
				}
				if err != nil {
					if errors.Is(err, ErrNoMatches) {
						if !*quiet {
							fmt.Fprintf(cmd.OutOrStdout(), "Subset %s matched no entries\n", subset)
						}
						summaries = append(summaries, SubsetSummary{Subset: subset})
						continue
					}
					return err
				}

				if plotDir != "" {
					written, err := renderPlots(series, plotDir)
					if err != nil {
						return err
					}
					if *verbose {
						for _, p := range written {
							fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
						}
					}
				}

				summaries = append(summaries, summarize(series))
			}

			return outputSummaries(cmd.OutOrStdout(), summaries, *jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&subsetSpec, "subset", "s", "", "Subset to report on: \"all\", a substring, or name=pattern")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Measure at most N images per subset")
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Skip undecodable images instead of aborting")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the measurement cache")
	cmd.Flags().StringVar(&plotDir, "plot", "", "Write histogram and bar chart PNGs to this directory")
	return cmd
}

func verifyCmd(az *Analyzer, jsonOutput, quiet *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every label-file entry exists on disk",
		Long:  "Resolve every label-file entry to a filesystem path and print the entries whose file is missing.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			report, err := (*az).Verify(ctx)
			if err != nil {
				return err
			}

			return outputVerifyReport(cmd.OutOrStdout(), report, *jsonOutput, *quiet)
		},
	}
}

func listCmd(az *Analyzer, jsonOutput *bool) *cobra.Command {
	var subsetSpec string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List label-file entries",
		Long:  "List the image paths and label words from the label file, optionally filtered by subset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			entries, err := (*az).Entries(ctx)
			if err != nil {
				return err
			}

			if subsetSpec != "" {
				subset, err := ParseSubset(subsetSpec)
				if err != nil {
					return err
				}
				var filtered []Entry
				for _, e := range entries {
					if subset.Matches(e.Path) {
						filtered = append(filtered, e)
					}
				}
				entries = filtered
			}

			return outputEntries(cmd.OutOrStdout(), entries, *jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&subsetSpec, "subset", "s", "", "Only list entries matching this subset")
	return cmd
}

func infoCmd(az *Analyzer, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show dataset information",
		Long:  "Show dataset-level facts: entry count, label vocabulary size, and resolved locations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			info, err := (*az).Info(ctx)
			if err != nil {
				return err
			}

			return outputInfo(cmd.OutOrStdout(), info, *jsonOutput)
		},
	}
}

func pruneCmd(az *Analyzer, quiet *bool) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Clear the measurement cache",
		Long:  "Remove all cached image measurements. The next scan will re-decode every image.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Confirmation prompt
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), "Clear the measurement cache? [y/N]: ")
				if !confirmPrompt(cmd.InOrStdin()) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			err := (*az).PruneCache(ctx)
			if err != nil {
				return err
			}

			if !*quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Measurement cache cleared.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

// confirmPrompt reads from stdin and returns true only if the user types 'y' or 'Y'.
// Returns false for empty input or any other response (default is no).
func confirmPrompt(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return response == "y" || response == "yes"
	}
	return false
}

// renderScanProgress renders a single-line scan progress indicator.
// Format: Scanning wikiart [12/345] (3 cached)
func renderScanProgress(w io.Writer, subset Subset, p ScanProgress) {
	// \r to overwrite, \x1b[K to clear to end of line
	fmt.Fprintf(w, "\r\x1b[KScanning %s [%d/%d]", subset.Name, p.Scanned, p.Matched)
	if p.CacheHits > 0 {
		fmt.Fprintf(w, " (%d cached)", p.CacheHits)
	}
}

// Output helpers

func outputSummaries(w io.Writer, summaries []SubsetSummary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	for i, s := range summaries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if s.Count == 0 {
			fmt.Fprintf(w, "Subset %s: no images\n", s.Subset)
			continue
		}

		fmt.Fprintf(w, "Subset %s: %d images", s.Subset, s.Count)
		if s.CacheHits > 0 {
			fmt.Fprintf(w, " (%d cached)", s.CacheHits)
		}
		if len(s.Failed) > 0 {
			fmt.Fprintf(w, " (%d failed)", len(s.Failed))
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "  Width:         mean %.2f  std %.2f\n", s.Width.Mean, s.Width.Std)
		fmt.Fprintf(w, "  Height:        mean %.2f  std %.2f\n", s.Height.Mean, s.Height.Std)
		fmt.Fprintf(w, "  Channel mean:  R %.4f  G %.4f  B %.4f  (std %.4f %.4f %.4f)\n",
			s.Mean[0].Mean, s.Mean[1].Mean, s.Mean[2].Mean,
			s.Mean[0].Std, s.Mean[1].Std, s.Mean[2].Std)
		fmt.Fprintf(w, "  Channel std:   R %.4f  G %.4f  B %.4f  (std %.4f %.4f %.4f)\n",
			s.Std[0].Mean, s.Std[1].Mean, s.Std[2].Mean,
			s.Std[0].Std, s.Std[1].Std, s.Std[2].Std)

		for _, path := range s.Failed {
			fmt.Fprintf(w, "  Failed: %s\n", path)
		}
	}
	return nil
}

func outputVerifyReport(w io.Writer, report VerifyReport, asJSON, quiet bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	for _, path := range report.Missing {
		fmt.Fprintln(w, path)
	}

	if !quiet {
		if report.OK() {
			fmt.Fprintf(w, "All %d entries exist\n", report.Total)
		} else {
			fmt.Fprintf(w, "%d of %d entries missing\n", len(report.Missing), report.Total)
		}
	}
	return nil
}

func outputEntries(w io.Writer, entries []Entry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tLABELS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.Path, strings.Join(e.Labels, " "))
	}
	return tw.Flush()
}

func outputInfo(w io.Writer, info DatasetInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	subsets := make([]string, len(info.Subsets))
	for i, s := range info.Subsets {
		subsets[i] = s.String()
	}

	fmt.Fprintf(w, "Entries:      %d\n", info.Entries)
	fmt.Fprintf(w, "Label words:  %d\n", info.LabelWords)
	fmt.Fprintf(w, "Data dir:     %s\n", info.DataDir)
	fmt.Fprintf(w, "Label file:   %s\n", info.LabelFile)
	fmt.Fprintf(w, "Subsets:      %s\n", strings.Join(subsets, ", "))
	return nil
}
