package window

import (
	"fmt"

	"github.com/bryanchriswhite/rifthold/internal/logger"
)

// MockProvider serves a fixed window set on platforms without a native
// backend, and doubles as the deterministic provider for tests.
type MockProvider struct{}

// NewMockProvider returns the mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// List returns a fixed four-window set. Thumbnails are never captured.
func (p *MockProvider) List(captureThumbnails bool) []Info {
	return []Info{
		{ID: "1", Title: "Mock Window — code editor", AppName: "VS Code"},
		{ID: "2", Title: "Mock Window — product specs", AppName: "Notion"},
		{ID: "3", Title: "Mock Window — design board", AppName: "Figma"},
		{ID: "4", Title: "Mock Window — browser", AppName: "Arc"},
	}
}

// Activate logs the request and succeeds for any known mock id.
func (p *MockProvider) Activate(id string) error {
	for _, info := range p.List(false) {
		if info.ID == id {
			logger.WithComponent("mock").Info().
				Str("id", id).
				Msg("activate")
			return nil
		}
	}
	return fmt.Errorf("window id %s: %w", id, ErrNotFound)
}

// Thumbnail always reports no capture support.
func (p *MockProvider) Thumbnail(id string) (string, error) {
	return "", fmt.Errorf("mock provider: %w", ErrNoThumbnail)
}

// ClearCache is a no-op; the mock holds no state.
func (p *MockProvider) ClearCache() {}
