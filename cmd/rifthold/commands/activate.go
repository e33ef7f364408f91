package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bryanchriswhite/rifthold/internal/config"
	"github.com/bryanchriswhite/rifthold/internal/logger"
	"github.com/bryanchriswhite/rifthold/internal/window"
)

var activateCmd = &cobra.Command{
	Use:   "activate <window-id>",
	Short: "Bring a window to the foreground",
	Long: `Activate the window with the given id, focusing its application
and raising the window itself where the platform allows it.

Window ids come from the output of "rifthold list".`,
	Args: cobra.ExactArgs(1),
	RunE: runActivate,
}

func init() {
	rootCmd.AddCommand(activateCmd)
}

func runActivate(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(configMgr.Get().LogLevel, logPretty)

	provider, err := window.NewProvider()
	if err != nil {
		return fmt.Errorf("failed to initialize window provider: %w", err)
	}

	id := args[0]
	if err := provider.Activate(id); err != nil {
		if errors.Is(err, window.ErrNotFound) {
			return fmt.Errorf("no window with id %s", id)
		}
		return fmt.Errorf("failed to activate window %s: %w", id, err)
	}

	fmt.Printf("Activated window %s\n", id)
	return nil
}
