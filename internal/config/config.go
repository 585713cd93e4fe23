package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL  = "http://localhost:5001"
	DefaultApprover = "Sistema"
)

// Settings is the resolved configuration shared by every command.
type Settings struct {
	BaseURL        string        `json:"base_url" yaml:"base_url"`
	Approver       string        `json:"approver" yaml:"approver"`
	PositionsLimit int           `json:"positions_limit" yaml:"positions_limit"`
	Timeout        time.Duration `json:"timeout" yaml:"timeout"`
	Listen         string        `json:"listen" yaml:"listen"`
	ExporterPort   string        `json:"exporter_port" yaml:"exporter_port"`
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetDefault("base_url", DefaultBaseURL)
	viper.SetDefault("approver", DefaultApprover)
	viper.SetDefault("positions_limit", 50)
	viper.SetDefault("timeout", "10s")
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("exporter.port", "9100")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".sigx-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sigx-cli")
	}

	// SIGX_BASE_URL, SIGX_APPROVER, SIGX_EXPORTER_PORT ...
	viper.SetEnvPrefix("sigx")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Printf("Warning: could not read config %s: %v\n", cfgFile, err)
		}
	}
}

// Load resolves the current viper state into Settings.
func Load() Settings {
	return Settings{
		BaseURL:        strings.TrimRight(viper.GetString("base_url"), "/"),
		Approver:       viper.GetString("approver"),
		PositionsLimit: viper.GetInt("positions_limit"),
		Timeout:        viper.GetDuration("timeout"),
		Listen:         viper.GetString("listen"),
		ExporterPort:   viper.GetString("exporter.port"),
	}
}

// SaveBaseURL updates the config file with the backend address.
func SaveBaseURL(baseURL string) error {
	viper.Set("base_url", strings.TrimRight(baseURL, "/"))

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, ".sigx-cli.yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
