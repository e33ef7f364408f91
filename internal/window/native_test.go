package window

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu      sync.Mutex
	records []RawRecord
	enumErr error

	captureFails map[string]bool
	pidCalls     []int64
	nameCalls    []string
	raiseCalls   []string
}

func (b *fakeBackend) Enumerate() ([]RawRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enumErr != nil {
		return nil, b.enumErr
	}
	return b.records, nil
}

func (b *fakeBackend) CaptureImage(id string) (image.Image, error) {
	b.mu.Lock()
	fail := b.captureFails[id]
	b.mu.Unlock()
	if fail {
		return nil, fmt.Errorf("capture failed")
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img, nil
}

func (b *fakeBackend) ActivateProcess(pid int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pidCalls = append(b.pidCalls, pid)
	return nil
}

func (b *fakeBackend) ActivateApp(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nameCalls = append(b.nameCalls, name)
	return nil
}

func (b *fakeBackend) RaiseWindow(pid int64, title string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.raiseCalls = append(b.raiseCalls, title)
	return nil
}

func testRecords() []RawRecord {
	return []RawRecord{
		{Number: 1, Title: "main.go", OwnerName: "VS Code", OwnerPID: 100, Layer: 0},
		{Number: 2, Title: "", OwnerName: "Arc", OwnerPID: 200, Layer: 0},
		{Number: 3, Title: "Dock", OwnerName: "Dock", OwnerPID: 300, Layer: 20},
	}
}

func TestNativeListFiltersAndDerivesTitles(t *testing.T) {
	backend := &fakeBackend{records: testRecords()}
	p := NewNativeProvider(backend, 999)

	infos := p.List(false)
	require.Len(t, infos, 2)

	assert.Equal(t, "1", infos[0].ID)
	assert.Equal(t, "main.go", infos[0].Title)
	assert.False(t, infos[0].IsTitleFallback)
	assert.Empty(t, infos[0].Thumbnail)

	assert.Equal(t, "2", infos[1].ID)
	assert.Equal(t, "Arc", infos[1].Title)
	assert.True(t, infos[1].IsTitleFallback)
}

func TestNativeListWithThumbnails(t *testing.T) {
	backend := &fakeBackend{
		records:      testRecords(),
		captureFails: map[string]bool{"2": true},
	}
	p := NewNativeProvider(backend, 999)

	infos := p.List(true)
	require.Len(t, infos, 2)

	assert.Contains(t, infos[0].Thumbnail, "data:image/jpeg;base64,")
	assert.Empty(t, infos[1].Thumbnail, "failed capture yields no thumbnail, not an error")
}

func TestNativeListEnumerationFailureIsEmpty(t *testing.T) {
	backend := &fakeBackend{enumErr: errors.New("registry query failed")}
	p := NewNativeProvider(backend, 999)

	assert.Empty(t, p.List(true))
}

func TestNativeEnumerationFailureClearsSnapshot(t *testing.T) {
	backend := &fakeBackend{records: testRecords()}
	p := NewNativeProvider(backend, 999)
	p.List(false)

	backend.mu.Lock()
	backend.enumErr = errors.New("registry query failed")
	backend.mu.Unlock()
	p.List(false)

	// Activation resolves against the latest snapshot only; ids from the
	// previous pass are gone even though enumeration failed transiently.
	err := p.Activate("1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNativeActivateResolvesFromSnapshot(t *testing.T) {
	backend := &fakeBackend{records: testRecords()}
	p := NewNativeProvider(backend, 999)
	p.resolver.SettleDelay = 1 // keep the test fast

	p.List(false)
	require.NoError(t, p.Activate("1"))

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, []int64{100}, backend.pidCalls)
	assert.Equal(t, []string{"main.go"}, backend.raiseCalls)
	assert.Empty(t, backend.nameCalls)
}

func TestNativeActivateMissRefreshesOnce(t *testing.T) {
	backend := &fakeBackend{records: testRecords()}
	p := NewNativeProvider(backend, 999)
	p.resolver.SettleDelay = 1

	// Snapshot is empty; activation triggers one enumeration.
	require.NoError(t, p.Activate("1"))
	backend.mu.Lock()
	assert.Equal(t, []int64{100}, backend.pidCalls)
	backend.mu.Unlock()
}

func TestNativeClearCacheForcesFreshResolution(t *testing.T) {
	backend := &fakeBackend{records: testRecords()}
	p := NewNativeProvider(backend, 999)
	p.resolver.SettleDelay = 1
	p.List(false)

	p.ClearCache()
	backend.mu.Lock()
	backend.records = []RawRecord{
		{Number: 9, Title: "fresh", OwnerName: "Mail", OwnerPID: 900, Layer: 0},
	}
	backend.mu.Unlock()

	// Old id must not leak from the cleared cache; the re-enumeration
	// only knows the new window set.
	err := p.Activate("1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, p.Activate("9"))
}

func TestNativeProviderPermissionsDefault(t *testing.T) {
	p := NewNativeProvider(&fakeBackend{}, 1)
	assert.True(t, ScreenRecordingPermitted(p))
}
