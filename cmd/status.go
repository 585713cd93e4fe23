package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the backend is online",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		status, err := api.GetStatus(cmd.Context())
		if err != nil {
			fail("checking status", err)
		}

		if printStructured(status) {
			return
		}

		fmt.Printf("%s %s: %s\n", status.System, status.Version, status.Status)
		w := newTable()
		for name, state := range status.Modules {
			fmt.Fprintf(w, "  %s\t%s\n", name, state)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
