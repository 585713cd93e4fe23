package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"sigx-cli/internal/client"
	"sigx-cli/internal/config"
)

// getClient builds an API client from the resolved configuration.
func getClient() *client.SigxClient {
	cfg := config.Load()
	if cfg.BaseURL == "" {
		fmt.Println("Error: No backend configured. Run 'sigx-cli config set-host <url>' or pass --host.")
		os.Exit(1)
	}
	return client.New(client.ClientConfig{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: "sigx-cli",
	})
}

// printStructured writes v as JSON or YAML when one of the output flags is
// set, and reports whether it did.
func printStructured(v any) bool {
	switch {
	case jsonOutput:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			fmt.Printf("Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
		return true
	case yamlOutput:
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			fmt.Printf("Error encoding YAML: %v\n", err)
			os.Exit(1)
		}
		_ = enc.Close()
		return true
	}
	return false
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
}

func fail(msg string, err error) {
	fmt.Printf("Error %s: %v\n", msg, err)
	os.Exit(1)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
