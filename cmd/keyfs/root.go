package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arthur-debert/keyfs/pkg/keyfs"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "keyfs",
	Short: "A key-based file registry and folder-spec tool",
	Long: `keyfs manages files by short symbolic keys and interprets compact
nested-list folder specs to create or delete directory hierarchies in bulk,
e.g. '["a",["b","c"],"d"]'.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initConfig()
	}
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newMkTreeCommand())
	rootCmd.AddCommand(newRmTreeCommand())
}

// initConfig loads the optional keyfs.yaml and applies defaults. Flags set
// on the command line win over config values.
func initConfig() error {
	viper.SetConfigName("keyfs")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.keyfs")
	viper.SetEnvPrefix("KEYFS")
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "warn")
	viper.SetDefault("delete_mode", "preserve")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flag := rootCmd.PersistentFlags().Lookup("log-level"); flag != nil && flag.Changed {
		viper.Set("log_level", flag.Value.String())
	}
	return nil
}

// cliLogger builds the logger used by subcommands from the configured level.
func cliLogger() (zerolog.Logger, error) {
	level, err := keyfs.LogLevelFromString(viper.GetString("log_level"))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", viper.GetString("log_level"), err)
	}
	return keyfs.NewLogger(os.Stderr, level), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Print the version number of keyfs`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("keyfs version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
