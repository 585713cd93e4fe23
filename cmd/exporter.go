package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"sigx-cli/internal/client"
	"sigx-cli/internal/config"
	"sigx-cli/internal/exporter"
)

var (
	expPort       string
	serviceAction string // install, uninstall, start, stop
)

// program implements the kardianos/service interface
type program struct {
	server *http.Server
	api    *client.SigxClient
	port   string
	logger service.Logger
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	go p.run()
	return nil
}

func (p *program) run() {
	registry := prometheus.NewRegistry()
	registry.MustRegister(&exporter.Collector{
		Source: p.api,
		Logger: slog.Default().With("component", "exporter"),
	})

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", p.port)
	p.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	p.infof("SIGx exporter listening on %s, backend %s", addr, p.api.Config.BaseURL)
	if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		p.errorf("HTTP server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	p.infof("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			p.errorf("Server forced to shutdown: %v", err)
		}
	}
	return nil
}

func (p *program) infof(format string, a ...any) {
	if p.logger != nil {
		_ = p.logger.Infof(format, a...)
		return
	}
	log.Printf(format, a...)
}

func (p *program) errorf(format string, a ...any) {
	if p.logger != nil {
		_ = p.logger.Errorf(format, a...)
		return
	}
	log.Printf(format, a...)
}

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes SIGx event and position
statistics. Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if expPort == "" {
			expPort = cfg.ExporterPort
		}

		svcConfig := &service.Config{
			Name:        "sigx-exporter",
			DisplayName: "SIGx Prometheus Exporter",
			Description: "Exposes SIGx journey automation metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--host", cfg.BaseURL,
				"--port", expPort,
			},
		}

		prg := &program{
			api:  getClient(),
			port: expPort,
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// Service control actions (install, start, stop, uninstall)
		if serviceAction != "" {
			if err := service.Control(s, serviceAction); err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// Run blocks; reached when the service manager starts the binary or when run interactively.
		prg.logger, err = s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			_ = prg.logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expPort, "port", "", "Port to listen on (default from config, 9100)")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
