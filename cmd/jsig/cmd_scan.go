package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/jsig/internal/metrics"
	"github.com/dhamidi/jsig/internal/telemetry"
	"github.com/dhamidi/jsig/java"
	"github.com/dhamidi/jsig/scan"
	"github.com/spf13/cobra"
)

func newScanCmd(opts *options) *cobra.Command {
	var (
		workers     int
		metricsFile string
		trace       bool
		jsonOutput  bool
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "scan [classpath entry]...",
		Short: "Resolve every generic signature on a class path and report failures",
		Long: `Resolve every generic signature on a class path and report failures.
Arguments are directories, jar or zip files; without arguments the
classpath from the config file is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.ClassPath = args
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("metrics-file") {
				opts.MetricsFile = metricsFile
			}
			if cmd.Flags().Changed("trace") {
				opts.Trace = trace
			}
			if len(opts.ClassPath) == 0 {
				return fmt.Errorf("no class path given")
			}

			ctx := cmd.Context()
			if opts.Trace {
				shutdown, err := telemetry.Init(ctx, cmd.ErrOrStderr(), version)
				if err != nil {
					return err
				}
				defer shutdown(context.Background())
			}

			report, err := runScan(ctx, opts.ClassPath, opts.Workers)
			if err != nil {
				return err
			}
			if opts.MetricsFile != "" {
				if err := metrics.WriteFile(opts.MetricsFile); err != nil {
					return err
				}
			}
			if err := writeReport(cmd.OutOrStdout(), report, jsonOutput); err != nil {
				return err
			}
			if strict && len(report.Failures) > 0 {
				return fmt.Errorf("%d members failed to resolve", len(report.Failures))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "classes scanned concurrently (default from config)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&trace, "trace", false, "write trace spans to stderr")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any member fails")

	return cmd
}

func runScan(ctx context.Context, classPath []string, workers int) (*scan.Report, error) {
	cp, err := java.NewClassPath(nil, classPath...)
	if err != nil {
		return nil, err
	}
	defer cp.Close()

	names, err := cp.ClassNames()
	if err != nil {
		return nil, err
	}
	return scan.New(cp, workers).Run(ctx, names)
}

func writeReport(w io.Writer, report *scan.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	for _, f := range report.Failures {
		member := f.Member
		if member == "" {
			member = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Class, member, f.Reason, f.Error)
	}
	fmt.Fprintf(w, "scan %s: %d classes, %d members, %d signatures, %d failures in %s\n",
		report.RunID, report.Classes, report.Members, report.Signatures, len(report.Failures), report.Duration)
	return nil
}
