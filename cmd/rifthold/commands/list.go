package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bryanchriswhite/rifthold/internal/config"
	"github.com/bryanchriswhite/rifthold/internal/logger"
	"github.com/bryanchriswhite/rifthold/internal/window"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List on-screen windows",
	Long: `List all user-visible on-screen windows as the switcher sees them:
filtered, with derived titles, optionally with thumbnails captured.`,
	Example: `  # List windows in table format (default)
  rifthold list

  # List windows in JSON format, including thumbnails
  rifthold list --format json --thumbnails`,
	RunE: runList,
}

var (
	listFormat     string
	listThumbnails bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table or json)")
	listCmd.Flags().BoolVarP(&listThumbnails, "thumbnails", "t", false, "capture thumbnails")
}

func runList(cmd *cobra.Command, args []string) error {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(configMgr.Get().LogLevel, logPretty)

	provider, err := window.NewProvider()
	if err != nil {
		return fmt.Errorf("failed to initialize window provider: %w", err)
	}

	windows := provider.List(listThumbnails)

	switch listFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(windows)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tAPP\tTITLE\tFALLBACK\tTHUMBNAIL")
		for _, win := range windows {
			thumb := "-"
			if win.Thumbnail != "" {
				thumb = fmt.Sprintf("%d bytes", len(win.Thumbnail))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n",
				win.ID, win.AppName, win.Title, win.IsTitleFallback, thumb)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown format %q (expected table or json)", listFormat)
	}
}
