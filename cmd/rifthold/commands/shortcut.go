package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bryanchriswhite/rifthold/internal/config"
	"github.com/bryanchriswhite/rifthold/internal/hotkey"
)

var shortcutCmd = &cobra.Command{
	Use:   "shortcut",
	Short: "Show or change the overlay shortcut",
}

var shortcutGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the configured shortcut",
	RunE: func(cmd *cobra.Command, args []string) error {
		configMgr, err := config.NewManager(GetConfigFile())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fmt.Println(configMgr.Get().Shortcut)
		return nil
	},
}

var shortcutSetCmd = &cobra.Command{
	Use:   "set <shortcut>",
	Short: "Set and persist the shortcut",
	Long: `Set the overlay shortcut, e.g. "alt+space" or "ctrl+shift+k".
The new value is validated and written back to the config file. A running
daemon picks it up via the HTTP API, not this command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shortcut := args[0]
		if _, _, err := hotkey.Parse(shortcut); err != nil {
			return fmt.Errorf("invalid shortcut %q: %w", shortcut, err)
		}

		configMgr, err := config.NewManager(GetConfigFile())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := configMgr.SetShortcut(shortcut); err != nil {
			return fmt.Errorf("failed to save shortcut: %w", err)
		}

		fmt.Printf("Shortcut set to %s\n", shortcut)
		return nil
	},
}

func init() {
	shortcutCmd.AddCommand(shortcutGetCmd)
	shortcutCmd.AddCommand(shortcutSetCmd)
	rootCmd.AddCommand(shortcutCmd)
}
