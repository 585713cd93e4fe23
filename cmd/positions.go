package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"sigx-cli/internal/client"
	"sigx-cli/internal/config"
	"sigx-cli/internal/dashboard"
	"sigx-cli/pkg/models"
)

var (
	posVehicle   int64
	posLimit     int
	posProcessed string
	posFrom      string
	posTo        string
	posFile      string
	posClassify  bool
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Inspect, import and classify tracker positions",
}

var positionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent positions of a vehicle",
	Run: func(cmd *cobra.Command, args []string) {
		filter := models.PositionFilter{Limit: posLimit, From: posFrom, To: posTo}
		if filter.Limit <= 0 {
			filter.Limit = config.Load().PositionsLimit
		}
		if posProcessed != "" {
			b, err := strconv.ParseBool(posProcessed)
			if err != nil {
				fmt.Printf("Error: invalid --processed %q\n", posProcessed)
				os.Exit(1)
			}
			filter.Processed = &b
		}

		api := getClient()
		positions, err := api.ListPositions(cmd.Context(), posVehicle, filter)
		if err != nil {
			fail("fetching positions", err)
		}

		if printStructured(positions) {
			return
		}

		if len(positions) == 0 {
			fmt.Println("No positions found.")
			return
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tTIMESTAMP\tSPEED\tADDRESS\tSTATUS")
		fmt.Fprintln(w, "--\t---------\t-----\t-------\t------")

		for _, p := range positions {
			status := "pending"
			if p.Processed {
				status = "processed"
			}
			fmt.Fprintf(w, "%d\t%s\t%.1f km/h\t%s\t%s\n",
				p.ID,
				dashboard.FormatDateTime(p.Timestamp.Time),
				p.Speed,
				orNA(p.Address),
				status,
			)
		}
		w.Flush()
	},
}

var positionsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show position statistics of a vehicle",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		stats, err := api.GetPositionStats(cmd.Context(), posVehicle)
		if err != nil {
			fail("fetching statistics", err)
		}

		if printStructured(stats) {
			return
		}

		s := stats.Stats
		w := newTable()
		if p := stats.Period; p != nil {
			fmt.Fprintf(w, "Period:\t%s - %s\t(%.1f h)\n", dashboard.FormatDateTime(p.Start.Time), dashboard.FormatDateTime(p.End.Time), p.DurationHours)
		}
		fmt.Fprintf(w, "Positions:\t%d\n", s.Total)
		fmt.Fprintf(w, "Processed:\t%d\n", s.Processed)
		fmt.Fprintf(w, "Pending:\t%d\n", s.Pending)
		fmt.Fprintf(w, "Stopped / moving:\t%d / %d\n", s.Stopped, s.Moving)
		fmt.Fprintf(w, "Distance:\t%.2f km\n", s.DistanceKm)
		fmt.Fprintf(w, "Moving time:\t%.2f h\n", s.MovingHours)
		fmt.Fprintf(w, "Stopped time:\t%.2f h\n", s.StoppedHours)
		fmt.Fprintf(w, "Average speed:\t%.1f km/h\n", s.AverageSpeedKmh)
		w.Flush()
	},
}

var positionsClassifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Derive events from the unprocessed positions of a vehicle",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		fmt.Printf("Classifying positions of vehicle %d ...\n", posVehicle)
		result, err := api.ClassifyPositions(cmd.Context(), posVehicle)
		if err != nil {
			fmt.Printf("Error: %s\n", client.ErrorMessage(err, err.Error()))
			os.Exit(1)
		}

		if printStructured(result) {
			return
		}
		fmt.Printf("%d events classified automatically.\n", result.EventsClassified)
	},
}

var positionsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a JSON batch of positions",
	Example: `  sigx-cli positions example --json > batch.json
  sigx-cli positions import --file batch.json --classify=false`,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(posFile)
		if err != nil {
			fail("reading file", err)
		}

		var payload models.ImportPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			fail("parsing "+posFile, err)
		}

		api := getClient()
		result, err := api.ImportPositions(cmd.Context(), payload, posClassify)
		if err != nil {
			fmt.Printf("Import failed: %s\n", client.ErrorMessage(err, err.Error()))
			os.Exit(1)
		}

		if printStructured(result) {
			return
		}

		fmt.Printf("Imported: %d\n", result.Imported)
		fmt.Printf("Duplicates: %d\n", result.Duplicates)
		if result.EventsClassified != nil {
			fmt.Printf("Events classified: %d\n", *result.EventsClassified)
		}
		if result.ClassificationErr != "" {
			fmt.Printf("Classification error: %s\n", result.ClassificationErr)
		}
	},
}

var positionsExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print the sample import document",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		example, err := api.GetImportExample(cmd.Context())
		if err != nil {
			fail("fetching example", err)
		}

		if jsonOutput {
			var doc any
			if err := json.Unmarshal(example.Example, &doc); err != nil {
				fail("decoding example", err)
			}
			printStructured(doc)
			return
		}
		if printStructured(example) {
			return
		}

		pretty, err := json.MarshalIndent(example.Example, "", "  ")
		if err != nil {
			fail("formatting example", err)
		}
		fmt.Println(string(pretty))

		if len(example.Instructions) > 0 {
			fmt.Println()
			keys := make([]string, 0, len(example.Instructions))
			for k := range example.Instructions {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			w := newTable()
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%s\n", k, example.Instructions[k])
			}
			w.Flush()
		}
	},
}

func init() {
	rootCmd.AddCommand(positionsCmd)
	positionsCmd.AddCommand(positionsListCmd, positionsStatsCmd, positionsClassifyCmd, positionsImportCmd, positionsExampleCmd)

	for _, c := range []*cobra.Command{positionsListCmd, positionsStatsCmd, positionsClassifyCmd} {
		c.Flags().Int64Var(&posVehicle, "vehicle", 0, "Vehicle ID")
		_ = c.MarkFlagRequired("vehicle")
	}

	positionsListCmd.Flags().IntVar(&posLimit, "limit", 0, "Maximum positions to fetch (default from config)")
	positionsListCmd.Flags().StringVar(&posProcessed, "processed", "", "true or false to filter by processing state")
	positionsListCmd.Flags().StringVar(&posFrom, "from", "", "Positions at or after (2006-01-02T15:04)")
	positionsListCmd.Flags().StringVar(&posTo, "to", "", "Positions at or before (2006-01-02T15:04)")

	positionsImportCmd.Flags().StringVar(&posFile, "file", "", "JSON document to import")
	positionsImportCmd.Flags().BoolVar(&posClassify, "classify", true, "Classify events after importing")
	_ = positionsImportCmd.MarkFlagRequired("file")
}
