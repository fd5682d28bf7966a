package sequence

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame int     `json:"frame"`
	Time  float64 `json:"time"`
	Image string  `json:"image"`
	Error string  `json:"error,omitempty"`
}

// Manifest is the top-level manifest.json document.
type Manifest struct {
	FPS    int             `json:"fps"`
	Frames []ManifestEntry `json:"frames"`
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, fps int, results []Result) error {
	m := Manifest{
		FPS:    fps,
		Frames: make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		entry := ManifestEntry{
			Frame: r.Frame,
			Time:  float64(r.Frame) / float64(fps),
		}
		if r.Success {
			entry.Image = fmt.Sprintf("%05d.webp", r.Frame)
		} else {
			entry.Error = r.Error
		}
		m.Frames[i] = entry
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
