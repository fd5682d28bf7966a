package sequence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookflip-renderer/internal/book"
)

type pages struct{}

func (pages) PageImages(index int) (string, string) {
	return fmt.Sprintf("p%d-front", index), fmt.Sprintf("p%d-back", index)
}

func TestTimelineForward(t *testing.T) {
	s := Script{StartPage: 1, EndPage: 4, FPS: 30, LeadIn: 0.5, Gap: 0.25}
	events, frames := s.timeline(1.0)

	require.Len(t, events, 3)
	assert.Equal(t, 2, events[0].page)
	assert.Equal(t, 3, events[1].page)
	assert.Equal(t, 4, events[2].page)
	assert.InDelta(t, 0.5, events[0].at, 1e-9)
	assert.InDelta(t, 1.75, events[1].at, 1e-9)
	assert.InDelta(t, 3.0, events[2].at, 1e-9)
	assert.Greater(t, frames, 0)
}

func TestTimelineBackward(t *testing.T) {
	s := Script{StartPage: 3, EndPage: 1, FPS: 30, LeadIn: 0.5}
	events, _ := s.timeline(1.0)

	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].page)
	assert.Equal(t, 1, events[1].page)
}

func TestTimelineNoTurns(t *testing.T) {
	s := Script{StartPage: 2, EndPage: 2, FPS: 10, Tail: 0.5}
	events, frames := s.timeline(1.0)

	assert.Empty(t, events)
	assert.Equal(t, 6, frames)
}

func TestRunWritesFrames(t *testing.T) {
	dir := t.TempDir()

	params := book.DefaultParams()
	params.PageCount = 4
	params.FlipDuration = 0.3

	cfg := Config{
		OutputDir:   dir,
		RenderSize:  32,
		Supersample: 1,
		Workers:     2,
		View:        "reader",
	}
	script := Script{StartPage: 0, EndPage: 1, FPS: 10, LeadIn: 0.2, Tail: 0.2}

	results, err := Run(cfg, params, pages{}, script)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.True(t, r.Success, "frame %d: %s", r.Frame, r.Error)
		path := filepath.Join(dir, fmt.Sprintf("%05d.webp", r.Frame))
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRunRejectsBadGeometry(t *testing.T) {
	params := book.DefaultParams()
	params.Sheet.Segments = 0

	cfg := Config{OutputDir: t.TempDir(), RenderSize: 16, Workers: 1}
	_, err := Run(cfg, params, pages{}, Script{StartPage: 0, EndPage: 1, FPS: 10})
	require.Error(t, err)
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	results := []Result{
		{Frame: 0, Success: true},
		{Frame: 1, Error: "encode failed"},
	}
	require.NoError(t, WriteManifest(path, 30, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, 30, m.FPS)
	require.Len(t, m.Frames, 2)
	assert.Equal(t, "00000.webp", m.Frames[0].Image)
	assert.InDelta(t, 1.0/30.0, m.Frames[1].Time, 1e-9)
	assert.Equal(t, "encode failed", m.Frames[1].Error)
}
