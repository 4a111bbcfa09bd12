package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeUseOnsets bool

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeUseOnsets, "use-onsets", true, "fuse detected onsets with the beat grid")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <song-id>",
	Short: "Find candidate hits and measure band energies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := buildService(cmd.Context())
		if err != nil {
			return err
		}

		analysis, err := svc.Analyze(cmd.Context(), args[0], analyzeUseOnsets)
		if err != nil {
			return err
		}

		fmt.Printf("analyzed %s: %.1f BPM, %d candidate events over %.1fs\n",
			args[0], analysis.BPM, analysis.EventCount, analysis.Duration)
		return nil
	},
}
