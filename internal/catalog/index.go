package catalog

import (
	"os"
	"path/filepath"
	"strings"
)

// formatRank orders extensions when one stem exists in several formats.
// Alpha-capable formats win so page edges can stay transparent.
var formatRank = map[string]int{".png": 3, ".tga": 2, ".jpg": 1, ".jpeg": 1}

// Index maps lowercase image stems to filesystem paths.
type Index struct {
	entries map[string]string
}

// BuildIndex scans assetDir and its immediate subdirectories for page
// images. Missing directories simply produce an empty index; resolution
// failures surface later as blank pages, never as errors.
func BuildIndex(assetDir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(assetDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !imageExt(ext) {
			return nil
		}
		stem := stemOf(path)

		existing, exists := idx.entries[stem]
		if !exists || formatRank[ext] > formatRank[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for an image identifier, or
// ("", false) when unknown.
func (idx *Index) ResolvePath(name string) (string, bool) {
	path, ok := idx.entries[stemOf(name)]
	return path, ok
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}
