package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	chartDifficulty string
	chartAll        bool
)

func init() {
	chartCmd.Flags().StringVar(&chartDifficulty, "difficulty", "normal", "difficulty to generate")
	chartCmd.Flags().BoolVar(&chartAll, "all", false, "generate every configured difficulty")
	rootCmd.AddCommand(chartCmd)
}

var chartCmd = &cobra.Command{
	Use:   "chart <song-id>",
	Short: "Generate playable charts from a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := buildService(cmd.Context())
		if err != nil {
			return err
		}
		songID := args[0]

		if chartAll {
			charts, err := svc.GenerateAll(cmd.Context(), songID)
			if err != nil {
				return err
			}
			for difficulty, chart := range charts {
				fmt.Printf("chart %s/%s: %d notes\n", songID, difficulty, chart.Metadata.NoteCount)
			}
			return nil
		}

		chart, issues, err := svc.GenerateChart(cmd.Context(), songID, chartDifficulty)
		if err != nil {
			return err
		}
		fmt.Printf("chart %s/%s: %d notes, %d validation issues\n",
			songID, chartDifficulty, chart.Metadata.NoteCount, len(issues))
		return nil
	},
}
