package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSelfPID = 4242

func TestFilterDropsSelfLayersAndControlCenter(t *testing.T) {
	records := []RawRecord{
		{Number: 1, Title: "main.go — rifthold", OwnerName: "VS Code", OwnerPID: 100, Layer: 0},
		{Number: 2, Title: "", OwnerName: "rifthold", OwnerPID: testSelfPID, Layer: 0},
		{Number: 3, Title: "Menubar", OwnerName: "SystemUIServer", OwnerPID: 101, Layer: 25},
		{Number: 4, Title: "", OwnerName: "Control Center", OwnerPID: 102, Layer: 0},
		{Number: 5, Title: "Inbox", OwnerName: "Mail", OwnerPID: 103, Layer: 0},
	}

	entries, stats := Filter(records, testSelfPID)

	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, "5", entries[1].ID)
	assert.Equal(t, 1, stats.Self)
	assert.Equal(t, 1, stats.Layers)
	assert.Equal(t, 1, stats.ControlCenter)
}

func TestFilterTitleDerivation(t *testing.T) {
	tests := []struct {
		name         string
		record       RawRecord
		wantTitle    string
		wantApp      string
		wantFallback bool
	}{
		{
			name:      "native title kept",
			record:    RawRecord{Number: 1, Title: "notes.md", OwnerName: "Notion", OwnerPID: 1},
			wantTitle: "notes.md",
			wantApp:   "Notion",
		},
		{
			name:         "empty title falls back to app name",
			record:       RawRecord{Number: 2, Title: "", OwnerName: "VS Code", OwnerPID: 2},
			wantTitle:    "VS Code",
			wantApp:      "VS Code",
			wantFallback: true,
		},
		{
			name:         "blank title falls back to app name",
			record:       RawRecord{Number: 3, Title: "   ", OwnerName: "Figma", OwnerPID: 3},
			wantTitle:    "Figma",
			wantApp:      "Figma",
			wantFallback: true,
		},
		{
			name:         "missing owner name defaults",
			record:       RawRecord{Number: 4, Title: "", OwnerName: "", OwnerPID: 4},
			wantTitle:    "App",
			wantApp:      "App",
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, _ := Filter([]RawRecord{tt.record}, testSelfPID)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantTitle, entries[0].Title)
			assert.Equal(t, tt.wantApp, entries[0].AppName)
			assert.Equal(t, tt.wantFallback, entries[0].IsTitleFallback)
		})
	}
}

func TestFilterFallbackFlag(t *testing.T) {
	records := []RawRecord{
		{Number: 1, Title: "doc", OwnerName: "Pages", OwnerPID: 1},
		{Number: 2, Title: "", OwnerName: "Arc", OwnerPID: 2},
		{Number: 3, Title: "Arc", OwnerName: "Arc", OwnerPID: 3},
	}

	entries, _ := Filter(records, testSelfPID)
	for _, e := range entries {
		// Fallback flag tracks whether the title was substituted, so it
		// can only be set when title and app name coincide.
		if e.IsTitleFallback {
			assert.Equal(t, e.AppName, e.Title)
		}
	}
}

func TestFilterUniqueIDs(t *testing.T) {
	records := []RawRecord{
		{Number: 10, Title: "a", OwnerName: "A", OwnerPID: 1},
		{Number: 11, Title: "b", OwnerName: "B", OwnerPID: 2},
		{Number: 12, Title: "c", OwnerName: "C", OwnerPID: 3},
	}

	entries, _ := Filter(records, testSelfPID)
	seen := make(map[string]bool)
	for _, e := range entries {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestInfosOmitThumbnails(t *testing.T) {
	entries := []Entry{
		{ID: "1", Title: "t", AppName: "A", OwnerPID: 7},
	}
	infos := Infos(entries)
	require.Len(t, infos, 1)
	assert.Equal(t, "1", infos[0].ID)
	assert.Empty(t, infos[0].Thumbnail)
}
