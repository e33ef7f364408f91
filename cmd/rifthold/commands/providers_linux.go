//go:build linux

package commands

// Register the X11 native provider.
import _ "github.com/bryanchriswhite/rifthold/internal/window/x11"
