package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Inspect the event type taxonomy",
}

var typesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List event types",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		types, err := api.ListEventTypes(cmd.Context())
		if err != nil {
			fail("fetching event types", err)
		}

		if printStructured(types) {
			return
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tCOLOR\tAUTOMATIC\tDURATION")
		fmt.Fprintln(w, "--\t----\t-----\t---------\t--------")

		for _, t := range types {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Name, orNA(t.Color), yesNo(t.Automatic), durationRange(t.MinMinutes, t.MaxMinutes))
		}
		w.Flush()
	},
}

func durationRange(lo, hi *int) string {
	switch {
	case lo != nil && hi != nil:
		return fmt.Sprintf("%d-%d min", *lo, *hi)
	case lo != nil:
		return fmt.Sprintf(">= %d min", *lo)
	case hi != nil:
		return fmt.Sprintf("<= %d min", *hi)
	}
	return "-"
}

func init() {
	rootCmd.AddCommand(typesCmd)
	typesCmd.AddCommand(typesListCmd)
}
