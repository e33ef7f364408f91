//go:build darwin && cgo

package commands

// Register the Core Graphics native provider.
import _ "github.com/bryanchriswhite/rifthold/internal/window/darwin"
