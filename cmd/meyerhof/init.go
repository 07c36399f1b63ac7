package main

import (
	"fmt"
	"path/filepath"
	"strings"

	analysis "Meyerhof/internal/calc/analysis"
	bearing "Meyerhof/internal/calc/bearing"
	importer "Meyerhof/internal/calc/importer"
	soil "Meyerhof/internal/soil"

	"github.com/spf13/cobra"
)

func exampleProject() analysis.Input {
	return analysis.Input{
		Title:       "Example project",
		Method:      bearing.MethodBowlesFS3,
		WaterTableM: 2,
		Strata: []soil.Stratum{
			{ID: 1, Description: "Silty sand", TopM: 0, BottomM: 2.5, GammaMoistKNM3: 18, GammaSatKNM3: 20, CohesionKPa: 5, PhiDeg: 30},
			{ID: 2, Description: "Stiff clay", TopM: 2.5, BottomM: 12, GammaMoistKNM3: 18.5, GammaSatKNM3: 19.5, CohesionKPa: 60, PhiDeg: 0},
		},
		DepthsM: []float64{1, 1.5, 2},
		WidthsM: []float64{1, 1.5, 2, 2.5},
		Ratios:  []float64{1, 1.5, 2},
		Footings: []analysis.Footing{
			{Support: "A1", WidthM: 2, LengthM: 2, DepthM: 1.5, LoadKN: 900},
			{Support: "A2", WidthM: 1.5, LengthM: 2.5, DepthM: 1.5, DeadKN: 400, LiveKN: 150},
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <project.yaml|.xlsx>",
		Short: "Write an example project to start from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			in := exampleProject()
			switch strings.ToLower(filepath.Ext(path)) {
			case ".xlsx":
				// the footing sheet carries design loads only
				for i, ft := range in.Footings {
					if ft.LoadKN == 0 {
						in.Footings[i].LoadKN = ft.DeadKN + ft.LiveKN
						in.Footings[i].DeadKN, in.Footings[i].LiveKN = 0, 0
					}
				}
				f, err := importer.Write(in)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := f.SaveAs(path); err != nil {
					return err
				}
			case ".yaml", ".yml":
				if err := analysis.WriteYAML(path, in); err != nil {
					return err
				}
			default:
				return fmt.Errorf("init writes .yaml, .yml or .xlsx projects, not %q", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
