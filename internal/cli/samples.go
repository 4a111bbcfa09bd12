package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(samplesCmd)
}

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Synthesize the drum kit used for previews",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, _, err := buildService(cmd.Context())
		if err != nil {
			return err
		}

		if err := svc.GenerateSamples(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("drum samples generated")
		return nil
	},
}
