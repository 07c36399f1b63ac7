// Command meyerhof runs bearing capacity analyses from project files and
// writes the result workbooks and report.
package main

import (
	"fmt"
	"os"

	log "Meyerhof/internal/log"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:           "meyerhof",
		Short:         "Meyerhof bearing capacity of shallow foundations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Init(debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Sync()
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "development logging")
	root.AddCommand(newAnalyzeCmd(), newFactorsCmd(), newInitCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
