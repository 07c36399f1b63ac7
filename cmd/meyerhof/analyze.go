package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	analysis "Meyerhof/internal/calc/analysis"
	importer "Meyerhof/internal/calc/importer"
	report "Meyerhof/internal/calc/report"
	log "Meyerhof/internal/log"

	"github.com/spf13/cobra"
)

const (
	resultsFile = "Results_Bearing_Capacity.xlsx"
	chartsFile  = "Charts_bearing_capacity.xlsx"
	pdfFile     = "Report_Bearing_Capacity.pdf"
)

type analyzeOptions struct {
	out     string
	method  string
	workers int
	pdf     bool
}

func newAnalyzeCmd() *cobra.Command {
	var o analyzeOptions
	cmd := &cobra.Command{
		Use:   "analyze <project.xlsx|.yaml|.json>",
		Short: "Run the capacity grid and footing checks of a project",
		Long: `Reads a project workbook or file, computes the capacity of every Df and B
combination, checks the listed footings and writes ` + resultsFile + ` and
` + chartsFile + ` to the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], o)
		},
	}
	cmd.Flags().StringVarP(&o.out, "out", "o", "output", "output directory")
	cmd.Flags().StringVar(&o.method, "method", "", "design method, overriding the project")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "concurrent evaluations (0 = all CPUs)")
	cmd.Flags().BoolVar(&o.pdf, "pdf", false, "also write "+pdfFile)
	return cmd
}

func readProject(path string) (analysis.Input, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return importer.LoadFile(path)
	default:
		return analysis.LoadFile(path)
	}
}

func runAnalyze(cmd *cobra.Command, path string, o analyzeOptions) error {
	in, err := readProject(path)
	if err != nil {
		return err
	}
	if o.method != "" {
		in.Method = o.method
		in.SafetyFactor = 0
	}
	log.Infof("analyzing %s", path)
	res, err := analysis.Execute(in, "", analysis.Options{Workers: o.workers})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	wb, err := report.Workbook(res)
	if err != nil {
		return err
	}
	defer wb.Close()
	if err := wb.SaveAs(filepath.Join(o.out, resultsFile)); err != nil {
		return fmt.Errorf("saving %s: %w", resultsFile, err)
	}

	charts, err := report.Charts(res)
	if err != nil {
		return err
	}
	cw, err := report.ChartWorkbook(charts)
	if err != nil {
		return err
	}
	defer cw.Close()
	if err := cw.SaveAs(filepath.Join(o.out, chartsFile)); err != nil {
		return fmt.Errorf("saving %s: %w", chartsFile, err)
	}

	if o.pdf {
		var buf bytes.Buffer
		if err := report.PDF(&buf, res, charts); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(o.out, pdfFile), buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("saving %s: %w", pdfFile, err)
		}
	}

	s := res.Summary
	fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d combinations (qult %.1f to %.1f kPa), %d footings: %d OK, %d NOT OK, %d errors\n",
		res.RunID, s.Points, s.MinQultKPa, s.MaxQultKPa, s.Footings, s.Passed, s.Failed, s.Errored)
	for _, oc := range res.Outcomes {
		if oc.Error != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", oc.Support, oc.Error)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "results written to %s\n", o.out)
	return nil
}
