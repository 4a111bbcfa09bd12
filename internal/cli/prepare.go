package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prepareSongID string

func init() {
	prepareCmd.Flags().StringVar(&prepareSongID, "song-id", "", "song identifier (default: fresh UUID)")
	rootCmd.AddCommand(prepareCmd)
}

var prepareCmd = &cobra.Command{
	Use:   "prepare <audio-file>",
	Short: "Normalize a track and estimate its tempo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := buildService(cmd.Context())
		if err != nil {
			return err
		}

		meta, err := svc.Prepare(cmd.Context(), args[0], prepareSongID)
		if err != nil {
			return err
		}

		fmt.Printf("prepared %s: %.1fs at %d Hz, %.1f BPM\n",
			meta.SongID, meta.Duration, meta.SampleRate, meta.BPM)
		return nil
	},
}
