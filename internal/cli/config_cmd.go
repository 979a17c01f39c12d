package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alanmeadows/issuepr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage issuepr configuration",
	Long:  `Show and modify issuepr configuration values.`,
}

var (
	configJSONFlag bool
	configUserFlag bool
)

func init() {
	configShowCmd.Flags().BoolVar(&configJSONFlag, "json", false, "Output raw JSON without formatting")
	configSetCmd.Flags().BoolVar(&configUserFlag, "user", false, "Write to the user config instead of the repository config")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show merged configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if cfg == nil {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		}

		// Redact secrets before display.
		redacted := redactConfig(cfg)

		var data []byte
		var err error
		if configJSONFlag {
			data, err = json.Marshal(redacted)
		} else {
			data, err = json.MarshalIndent(redacted, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// redactConfig returns a copy of the config with secret fields masked.
func redactConfig(cfg *config.Config) *config.Config {
	copy := *cfg
	if copy.GitHub.Token != "" {
		copy.GitHub.Token = "***"
	}
	return &copy
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a configuration value using a dotted key path.

The value is written to .issuepr/issuepr.jsonc in the repository root,
or to the user config with --user. The file is created if it does not
exist.

Note: JSONC comments are not preserved on write.`,
	Example: `  issuepr config set github.api_url https://ghe.example.com/api/v3
  issuepr config set --user github.wait_on_rate_limit true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value, err := parseConfigValue(key, args[1])
		if err != nil {
			return err
		}

		path, err := configSetPath()
		if err != nil {
			return err
		}

		if err := config.Set(path, key, value); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v in %s\n", key, value, path)
		return nil
	},
}

// configKeys maps every settable key to its value kind.
var configKeys = map[string]string{
	"github.token":              "string",
	"github.api_url":            "string",
	"github.wait_on_rate_limit": "bool",
}

// parseConfigValue converts raw to the type key holds.
func parseConfigValue(key, raw string) (any, error) {
	kind, ok := configKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}

	if kind == "bool" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: expected true or false, got %q", key, raw)
		}
		return b, nil
	}
	return raw, nil
}

// configSetPath returns the file config set writes to.
func configSetPath() (string, error) {
	if configUserFlag {
		path := config.UserPath()
		if path == "" {
			return "", fmt.Errorf("cannot determine user config directory")
		}
		return path, nil
	}

	repoRoot := config.RepoRoot()
	if repoRoot == "" {
		return "", fmt.Errorf("not in a git repository")
	}
	return filepath.Join(repoRoot, config.RepoConfigDir, config.RepoConfigFile), nil
}
