package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sigx-cli/internal/client"
	"sigx-cli/internal/config"
)

var skipCheck bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the local configuration",
}

var configSetHostCmd = &cobra.Command{
	Use:     "set-host <url>",
	Short:   "Save the backend base URL",
	Example: `  sigx-cli config set-host http://10.0.0.5:5001`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		host := strings.TrimRight(args[0], "/")

		if !skipCheck {
			fmt.Printf("Checking %s ...\n", host)
			api := client.New(client.ClientConfig{BaseURL: host, Timeout: config.Load().Timeout})
			status, err := api.GetStatus(cmd.Context())
			if err != nil {
				fail("reaching backend (use --skip-check to save anyway)", err)
			}
			fmt.Printf("Connected to %s %s.\n", status.System, status.Version)
		}

		if err := config.SaveBaseURL(host); err != nil {
			fail("saving configuration", err)
		}
		fmt.Println("Configuration saved.")
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if printStructured(cfg) {
			return
		}

		w := newTable()
		fmt.Fprintf(w, "base_url\t%s\n", cfg.BaseURL)
		fmt.Fprintf(w, "approver\t%s\n", cfg.Approver)
		fmt.Fprintf(w, "positions_limit\t%d\n", cfg.PositionsLimit)
		fmt.Fprintf(w, "timeout\t%s\n", cfg.Timeout)
		fmt.Fprintf(w, "listen\t%s\n", cfg.Listen)
		fmt.Fprintf(w, "exporter.port\t%s\n", cfg.ExporterPort)
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetHostCmd)
	configCmd.AddCommand(configShowCmd)

	configSetHostCmd.Flags().BoolVar(&skipCheck, "skip-check", false, "Save without contacting the backend")
}
