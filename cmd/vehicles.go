package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "Inspect the vehicle fleet",
}

var vehiclesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all vehicles",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		vehicles, err := api.ListVehicles(cmd.Context())
		if err != nil {
			fail("fetching vehicles", err)
		}

		if printStructured(vehicles) {
			return
		}

		if len(vehicles) == 0 {
			fmt.Println("No vehicles found.")
			return
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tPLATE\tIDENTIFIER\tACTIVE\tDRIVER")
		fmt.Fprintln(w, "--\t-----\t----------\t------\t------")

		for _, v := range vehicles {
			driver := "Unassigned"
			if v.Driver != nil && v.Driver.Name != "" {
				driver = v.Driver.Name
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				v.ID,
				v.Plate,
				orNA(v.Identifier),
				yesNo(v.Active),
				driver,
			)
		}
		w.Flush()
	},
}

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "Inspect registered drivers",
}

var driversListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all drivers",
	Run: func(cmd *cobra.Command, args []string) {
		api := getClient()

		drivers, err := api.ListDrivers(cmd.Context())
		if err != nil {
			fail("fetching drivers", err)
		}

		if printStructured(drivers) {
			return
		}

		if len(drivers) == 0 {
			fmt.Println("No drivers found.")
			return
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tMATRICULA\tROLE")
		fmt.Fprintln(w, "--\t----\t---------\t----")

		for _, d := range drivers {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", d.ID, d.Name, orNA(d.EmployeeNumber), orNA(d.Role))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(vehiclesCmd)
	vehiclesCmd.AddCommand(vehiclesListCmd)

	rootCmd.AddCommand(driversCmd)
	driversCmd.AddCommand(driversListCmd)
}
