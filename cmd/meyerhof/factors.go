package main

import (
	"fmt"
	"text/tabwriter"

	bearing "Meyerhof/internal/calc/bearing"

	"github.com/spf13/cobra"
)

func newFactorsCmd() *cobra.Command {
	var phi, b, l, df float64
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Print the Meyerhof bearing, shape and depth factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := bearing.BearingFactors(phi)
			if err != nil {
				return err
			}
			s, err := bearing.ShapeFactors(f, b, l)
			if err != nil {
				return err
			}
			d, err := bearing.DepthFactors(f, df, b)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "phi\t%.2f deg\n", phi)
			fmt.Fprintf(tw, "Kp\t%.4f\n", f.Kp)
			fmt.Fprintf(tw, "Nc\t%.4f\tSc\t%.4f\tDc\t%.4f\n", f.Nc, s.Sc, d.Dc)
			fmt.Fprintf(tw, "Nq\t%.4f\tSq\t%.4f\tDq\t%.4f\n", f.Nq, s.Sq, d.Dq)
			fmt.Fprintf(tw, "Ngamma\t%.4f\tSgamma\t%.4f\tDgamma\t%.4f\n", f.Ngamma, s.Sgamma, d.Dgamma)
			fmt.Fprintf(tw, "Hcrit\t%.4f m\n", bearing.CriticalDepth(phi, b))
			return tw.Flush()
		},
	}
	cmd.Flags().Float64Var(&phi, "phi", 30, "friction angle (deg)")
	cmd.Flags().Float64Var(&b, "b", 1, "footing width B (m)")
	cmd.Flags().Float64Var(&l, "l", 1, "footing length L (m)")
	cmd.Flags().Float64Var(&df, "df", 1, "embedment depth Df (m)")
	return cmd
}
