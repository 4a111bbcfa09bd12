package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderWithBackground bool

func init() {
	renderCmd.Flags().BoolVar(&renderWithBackground, "with-background", true, "mix hits over the prepared track")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <song-id> <difficulty>",
	Short: "Render a chart into an audio preview",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := buildService(cmd.Context())
		if err != nil {
			return err
		}

		out, err := svc.RenderPreview(cmd.Context(), args[0], args[1], renderWithBackground)
		if err != nil {
			return err
		}
		fmt.Printf("preview rendered: %s\n", out)
		return nil
	},
}
