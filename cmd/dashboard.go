package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sigx-cli/internal/config"
	"sigx-cli/internal/dashboard"
	"sigx-cli/internal/web"
)

var dashListen string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the operator dashboard",
	Long: `Starts the web dashboard: event review and approval, fleet overview,
position statistics, automatic classification and position import.`,
	Run: func(cmd *cobra.Command, args []string) {
		if dashListen != "" {
			viper.Set("listen", dashListen)
		}
		cfg := config.Load()
		logger := slog.Default()

		ctrl := dashboard.New(getClient(), dashboard.Options{
			Approver:       cfg.Approver,
			PositionsLimit: cfg.PositionsLimit,
			Logger:         logger.With("component", "dashboard"),
		})

		logger.Info("loading reference data", "backend", cfg.BaseURL)
		if err := ctrl.Bootstrap(cmd.Context()); err != nil {
			fail("starting dashboard", err)
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		srv := web.NewServer(ctrl, web.Options{
			Logger:   logger.With("component", "web"),
			Registry: registry,
		})

		fmt.Printf("Dashboard listening on %s\n", cfg.Listen)
		if err := srv.ListenAndServe(cmd.Context(), cfg.Listen); err != nil {
			logger.Error("dashboard stopped", "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashListen, "listen", "", "Address to listen on (default from config, :8080)")
}
