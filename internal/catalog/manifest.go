package catalog

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
)

// PageDef names the two images of one sheet.
type PageDef struct {
	Index int
	Front string
	Back  string
}

// Manifest is the parsed book manifest: an ordered page list plus the
// cover image. It implements the book core's ContentSource.
type Manifest struct {
	Title string
	Cover string
	Pages []PageDef
}

type xmlBook struct {
	Title string    `xml:"Title,attr"`
	Cover string    `xml:"Cover,attr"`
	Pages []xmlPage `xml:"Page"`
}

type xmlPage struct {
	Index string `xml:"Index,attr"`
	Front string `xml:"Front,attr"`
	Back  string `xml:"Back,attr"`
}

// ParseManifest reads a book manifest XML file. Pages with unparsable
// indices are skipped; the rest are stored in index order as listed.
func ParseManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var b xmlBook
	if err := xml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	m := &Manifest{Title: b.Title, Cover: b.Cover}
	for _, p := range b.Pages {
		idx, err := strconv.Atoi(p.Index)
		if err != nil {
			continue
		}
		m.Pages = append(m.Pages, PageDef{Index: idx, Front: p.Front, Back: p.Back})
	}

	return m, nil
}

// PageImages returns the front/back identifiers for a page index, clamped
// into the page list. An empty manifest yields blank paper.
func (m *Manifest) PageImages(index int) (front, back string) {
	if len(m.Pages) == 0 {
		return "", ""
	}
	if index < 0 {
		index = 0
	}
	if index >= len(m.Pages) {
		index = len(m.Pages) - 1
	}
	p := m.Pages[index]
	return p.Front, p.Back
}

// PageCount returns the number of sheets listed.
func (m *Manifest) PageCount() int {
	return len(m.Pages)
}
