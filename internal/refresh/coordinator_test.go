package refresh

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanchriswhite/rifthold/internal/window"
)

// fakeProvider serves a fixed window set and lets tests gate List so
// overlapping refresh passes interleave deterministically.
type fakeProvider struct {
	windows     []window.Info
	listStarted chan struct{}
	listGate    chan struct{}

	mu         sync.Mutex
	listCalls  int
	thumbFails map[string]bool
}

func (p *fakeProvider) List(captureThumbnails bool) []window.Info {
	if p.listStarted != nil {
		p.listStarted <- struct{}{}
	}
	if p.listGate != nil {
		<-p.listGate
	}
	p.mu.Lock()
	p.listCalls++
	p.mu.Unlock()
	return p.windows
}

func (p *fakeProvider) Activate(id string) error { return nil }

func (p *fakeProvider) Thumbnail(id string) (string, error) {
	p.mu.Lock()
	fail := p.thumbFails[id]
	p.mu.Unlock()
	if fail {
		return "", fmt.Errorf("capture %s: %w", id, window.ErrNoThumbnail)
	}
	return "data:image/jpeg;base64,thumb-" + id, nil
}

func (p *fakeProvider) ClearCache() {}

type recordingEmitter struct {
	mu        sync.Mutex
	lists     [][]window.Info
	thumbs    map[string]string
	completes int
	complete  chan struct{}
}

func newRecordingEmitter() *recordingEmitter {
	return &recordingEmitter{
		thumbs:   make(map[string]string),
		complete: make(chan struct{}, 4),
	}
}

func (e *recordingEmitter) WindowList(windows []window.Info) {
	e.mu.Lock()
	e.lists = append(e.lists, windows)
	e.mu.Unlock()
}

func (e *recordingEmitter) Thumbnail(id, thumbnail string) {
	e.mu.Lock()
	e.thumbs[id] = thumbnail
	e.mu.Unlock()
}

func (e *recordingEmitter) RefreshComplete() {
	e.mu.Lock()
	e.completes++
	e.mu.Unlock()
	e.complete <- struct{}{}
}

func (e *recordingEmitter) waitComplete(t *testing.T) {
	t.Helper()
	select {
	case <-e.complete:
	case <-time.After(5 * time.Second):
		t.Fatal("refresh did not complete")
	}
}

func testWindows() []window.Info {
	return []window.Info{
		{ID: "1", Title: "one", AppName: "A"},
		{ID: "2", Title: "two", AppName: "B"},
		{ID: "3", Title: "three", AppName: "C"},
	}
}

func TestRefreshEmitsListThumbnailsAndCompletion(t *testing.T) {
	provider := &fakeProvider{windows: testWindows()}
	emitter := newRecordingEmitter()
	c := NewCoordinator(provider, emitter)

	c.Refresh()
	emitter.waitComplete(t)

	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	require.Len(t, emitter.lists, 1)
	assert.Equal(t, testWindows(), emitter.lists[0])
	assert.Len(t, emitter.thumbs, 3)
	assert.Equal(t, "data:image/jpeg;base64,thumb-2", emitter.thumbs["2"])
	assert.Equal(t, 1, emitter.completes)
}

func TestRefreshSkipsFailedCaptures(t *testing.T) {
	provider := &fakeProvider{
		windows:    testWindows(),
		thumbFails: map[string]bool{"2": true},
	}
	emitter := newRecordingEmitter()
	c := NewCoordinator(provider, emitter)

	c.Refresh()
	emitter.waitComplete(t)

	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	assert.Len(t, emitter.thumbs, 2)
	_, ok := emitter.thumbs["2"]
	assert.False(t, ok)
	assert.Equal(t, 1, emitter.completes)
}

func TestSupersededRefreshEmitsNothing(t *testing.T) {
	provider := &fakeProvider{
		windows:     testWindows(),
		listStarted: make(chan struct{}),
		listGate:    make(chan struct{}),
	}
	emitter := newRecordingEmitter()
	c := NewCoordinator(provider, emitter)

	// First pass enters enumeration and blocks there.
	c.Refresh()
	<-provider.listStarted

	// Second pass supersedes it before it returns.
	c.Refresh()
	provider.listGate <- struct{}{} // release first pass: now stale
	<-provider.listStarted
	provider.listGate <- struct{}{} // release second pass

	emitter.waitComplete(t)

	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	require.Len(t, emitter.lists, 1, "stale pass must not emit its list")
	assert.Equal(t, 1, emitter.completes)
	assert.Len(t, emitter.thumbs, 3)
}

func TestGenerationIncrementsPerRequest(t *testing.T) {
	provider := &fakeProvider{windows: nil}
	emitter := newRecordingEmitter()
	c := NewCoordinator(provider, emitter)

	before := c.Generation()
	c.Refresh()
	emitter.waitComplete(t)
	c.Refresh()
	emitter.waitComplete(t)

	assert.Equal(t, before+2, c.Generation())
}
