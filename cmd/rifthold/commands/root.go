package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	logPretty bool

	rootCmd = &cobra.Command{
		Use:   "rifthold",
		Short: "Rifthold - global-hotkey window switcher engine",
		Long: `Rifthold enumerates all user-visible on-screen windows, captures live
thumbnails for them, and brings any one of them to the foreground.

Features:
  • Native window discovery (X11 on Linux, Core Graphics on macOS)
  • Parallel thumbnail capture with stale-request cancellation
  • Multi-strategy window activation
  • Persistent shortcut configuration
  • REST API plus websocket event stream for the overlay UI`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rifthold/config.yaml)")
	rootCmd.PersistentFlags().Int("port", 0, "API server port (default is 8080)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", false, "human-readable log output")

	viper.BindPFlag("server_port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}
