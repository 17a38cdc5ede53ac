package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/ptero/internal/constants"
)

// Config is the persisted CLI configuration.
type Config struct {
	URL     string `json:"url,omitempty"      yaml:"url,omitempty"`
	Token   string `json:"token,omitempty"    yaml:"token,omitempty"`
	Output  string `json:"output,omitempty"   yaml:"output,omitempty"`
	Timeout string `json:"timeout,omitempty"  yaml:"timeout,omitempty"`
	Retries int    `json:"retries,omitempty"  yaml:"retries,omitempty"`
	Cache   string `json:"cache,omitempty"    yaml:"cache,omitempty"`
	NATSURL string `json:"nats_url,omitempty" yaml:"nats_url,omitempty"`
}

var configKeys = []string{"url", "token", "output", "timeout", "retries", "cache", "nats_url"}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the ptero config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = constants.MaskedSecret
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if format != constants.FormatTable {
				return encode(cmd.OutOrStdout(), format, config)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Key", "Value")
			_ = table.Append("url", config.URL)
			_ = table.Append("token", config.Token)
			_ = table.Append("output", config.Output)
			_ = table.Append("timeout", config.Timeout)
			_ = table.Append("retries", cast.ToString(config.Retries))
			_ = table.Append("cache", config.Cache)
			_ = table.Append("nats_url", config.NATSURL)

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: url, token, output, timeout, retries, cache, nats_url",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], args[1])
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, args[0], "")
		},
	}
}

func updateConfig(cmd *cobra.Command, key, value string) error {
	if !slices.Contains(configKeys, key) {
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	config := loadConfig()

	switch key {
	case "url":
		config.URL = value
	case "token":
		config.Token = value
	case "output":
		config.Output = value
	case "timeout":
		config.Timeout = value
	case "retries":
		retries, err := cast.ToIntE(value)
		if value != "" && err != nil {
			return fmt.Errorf("retries must be a number: %w", err)
		}

		config.Retries = retries
	case "cache":
		config.Cache = value
	case "nats_url":
		config.NATSURL = value
	}

	if err := saveConfig(config); err != nil {
		return err
	}

	viper.Set(key, value)

	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)
	}

	return nil
}

func loadConfig() *Config {
	return &Config{
		URL:     viper.GetString("url"),
		Token:   viper.GetString("token"),
		Output:  viper.GetString("output"),
		Timeout: viper.GetString("timeout"),
		Retries: viper.GetInt("retries"),
		Cache:   viper.GetString("cache"),
		NATSURL: viper.GetString("nats_url"),
	}
}

func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".ptero", "config.yml"), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(configFile, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
