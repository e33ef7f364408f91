package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		shortcut string
		wantMods []string
		wantKey  string
		wantErr  bool
	}{
		{shortcut: "alt+space", wantMods: []string{"alt"}, wantKey: "space"},
		{shortcut: "Ctrl+Shift+P", wantMods: []string{"ctrl", "shift"}, wantKey: "p"},
		{shortcut: "cmd+tab", wantMods: []string{"cmd"}, wantKey: "tab"},
		{shortcut: "space", wantErr: true},
		{shortcut: "", wantErr: true},
		{shortcut: "hyper+space", wantErr: true},
		{shortcut: "alt+", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.shortcut, func(t *testing.T) {
			mods, key, err := Parse(tt.shortcut)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMods, mods)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

type recordingBinder struct {
	bound   []string
	unbinds int
}

func (b *recordingBinder) Bind(shortcut string, h Handler) error {
	b.bound = append(b.bound, shortcut)
	return nil
}

func (b *recordingBinder) Unbind() error {
	b.unbinds++
	return nil
}

func TestManagerBindAndRebind(t *testing.T) {
	binder := &recordingBinder{}
	m := NewManager(binder)

	fired := 0
	require.NoError(t, m.Bind("alt+space", func() { fired++ }))
	assert.Equal(t, "alt+space", m.Current())
	assert.Zero(t, binder.unbinds)

	require.NoError(t, m.Rebind("ctrl+space"))
	assert.Equal(t, "ctrl+space", m.Current())
	assert.Equal(t, 1, binder.unbinds)
	assert.Equal(t, []string{"alt+space", "ctrl+space"}, binder.bound)
}

func TestManagerRejectsInvalidShortcut(t *testing.T) {
	binder := &recordingBinder{}
	m := NewManager(binder)

	require.NoError(t, m.Bind("alt+space", func() {}))
	assert.Error(t, m.Rebind("nonsense"))
	assert.Equal(t, "alt+space", m.Current(), "failed rebind keeps the old shortcut")
}

func TestManagerRebindWithoutHandler(t *testing.T) {
	m := NewManager(NopBinder{})
	assert.Error(t, m.Rebind("alt+space"))
}
