// ABOUTME: Root command for the secretary CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Depaula010/meusecretariofront/internal/config"
)

var (
	apiURL     string
	jsonOutput bool
	configDir  string
	ephemeral  bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "secretary",
	Short: "Terminal client for Meu Secretário",
	Long: `secretary is a terminal client for the Meu Secretário personal finance API.

Use it from scripts through the subcommands, or run "secretary tui" for the
interactive interface.

Exit codes:
  0 - Success
  1 - The API rejected the request
  2 - Usage, authentication, or connectivity error

Environment Variables:
  SECRETARY_API_URL     Backend API URL (default: http://localhost:5000)
  SECRETARY_API_PREFIX  Route prefix (default: /api)
  SECRETARY_CONFIG_DIR  Where the session is stored (default: ~/.config/meu-secretario)
  SECRETARY_TIMEOUT     Request timeout (default: 30s)
  LOG_LEVEL             debug, info, warn, error (default: info)
  LOG_FORMAT            text, json (default: text)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides SECRETARY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Session storage directory (overrides SECRETARY_CONFIG_DIR)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep the session in memory for this run only")
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(config.Overrides{APIURL: apiURL, ConfigDir: configDir}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	cfg, err := loadConfig()
	if err != nil {
		if apiURL != "" {
			return apiURL
		}
		return config.DefaultAPIURL
	}
	return cfg.APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
