package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ptero/internal/constants"
)

// NewRootCommand builds the ptero command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ptero",
		Short: "Pterodactyl panel CLI",
		Long: `A command-line interface for the Pterodactyl panel.

Application keys (pacc_) manage servers, nodes, users, locations and nests.
Client keys (ptlc_) control servers: power, console commands, files,
backups, databases and subusers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.ptero/config.yml)")
	rootCmd.PersistentFlags().String("env-file", "", "load environment variables from a .env file")
	rootCmd.PersistentFlags().StringP("url", "u", "", "panel URL")
	rootCmd.PersistentFlags().StringP("token", "t", "", "panel API key")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().Duration("timeout", constants.DefaultHTTPTimeout, "request timeout")
	rootCmd.PersistentFlags().Int("retries", constants.DefaultRetryMax, "retries for 429 and 5xx responses")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests to stderr")

	for _, name := range []string{"url", "token", "output", "timeout", "retries", "verbose"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewServersCommand())
	rootCmd.AddCommand(NewNodesCommand())
	rootCmd.AddCommand(NewUsersCommand())
	rootCmd.AddCommand(NewLocationsCommand())
	rootCmd.AddCommand(NewNestsCommand())
	rootCmd.AddCommand(NewEggsCommand())
	rootCmd.AddCommand(NewPowerCommand())
	rootCmd.AddCommand(NewCommandCommand())
	rootCmd.AddCommand(NewFilesCommand())
	rootCmd.AddCommand(NewBackupsCommand())
	rootCmd.AddCommand(NewDatabasesCommand())
	rootCmd.AddCommand(NewSubusersCommand())

	return rootCmd
}

func initConfig(cmd *cobra.Command) error {
	if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfgFile, _ := cmd.Flags().GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		viper.AddConfigPath(filepath.Join(home, ".ptero"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("PTERO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	return nil
}
