// Package config loads render and book settings from a JSON file, with
// CLI flags overriding and sensible defaults filling the rest.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"bookflip-renderer/internal/book"
	"bookflip-renderer/internal/bookgeom"
)

// Config holds all configurable paths, book dimensions, and render
// settings.
type Config struct {
	// Paths
	AssetDir    string `json:"asset_dir"`
	ManifestXML string `json:"manifest_xml"`
	OutputDir   string `json:"output_dir"`

	// Book shape
	PageCount     int     `json:"page_count"`
	PageWidth     float64 `json:"page_width"`
	PageHeight    float64 `json:"page_height"`
	MinThickness  float64 `json:"min_thickness"`
	MaxThickness  float64 `json:"max_thickness"`
	CoverThick    float64 `json:"cover_thickness"`
	CoverOverhang float64 `json:"cover_overhang"`
	Columns       int     `json:"columns"`
	Segments      int     `json:"segments"`

	// Animation
	FlipDuration  float64 `json:"flip_duration"`
	HingeDampTime float64 `json:"hinge_damp_time"`
	FPS           int     `json:"fps"`

	// Render settings
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	WebPQuality int    `json:"webp_quality"`
	Workers     int    `json:"workers"`
	View        string `json:"view"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir  string
	OutputDir string
	Quality   int
	Workers   int
	Size      int
}

// Resolve fills in any empty fields with defaults. CLI flags take
// priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}

	if c.AssetDir == "" {
		c.AssetDir = "assets"
	}
	if c.ManifestXML == "" {
		c.ManifestXML = filepath.Join(c.AssetDir, "book.xml")
	} else if !filepath.IsAbs(c.ManifestXML) {
		c.ManifestXML = filepath.Join(c.AssetDir, c.ManifestXML)
	}
	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}

	def := book.DefaultParams()
	if c.PageCount <= 0 {
		c.PageCount = def.PageCount
	}
	if c.PageWidth <= 0 {
		c.PageWidth = def.Block.Width
	}
	if c.PageHeight <= 0 {
		c.PageHeight = def.Block.Height
	}
	if c.MinThickness <= 0 {
		c.MinThickness = def.Block.MinThick
	}
	if c.MaxThickness <= 0 {
		c.MaxThickness = def.Block.MaxThick
	}
	if c.CoverThick <= 0 {
		c.CoverThick = def.Cover.Thick
	}
	if c.CoverOverhang <= 0 {
		c.CoverOverhang = def.Cover.Overhang
	}
	if c.Columns <= 0 {
		c.Columns = def.Block.Columns
	}
	if c.Segments <= 0 {
		c.Segments = def.Sheet.Segments
	}
	if c.FlipDuration <= 0 {
		c.FlipDuration = def.FlipDuration
	}
	if c.HingeDampTime <= 0 {
		c.HingeDampTime = def.HingeDampTime
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}

	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.View == "" {
		c.View = "reader"
	}
}

// BookParams maps the resolved config onto book construction parameters.
func (c *Config) BookParams() book.Params {
	p := book.DefaultParams()
	p.PageCount = c.PageCount
	p.FlipDuration = c.FlipDuration
	p.HingeDampTime = c.HingeDampTime
	p.Block = bookgeom.PageBlockDims{
		Width:    c.PageWidth,
		Height:   c.PageHeight,
		MinThick: c.MinThickness,
		MaxThick: c.MaxThickness,
		Columns:  c.Columns,
	}
	p.Cover = bookgeom.CoverDims{
		Width:    c.PageWidth,
		Height:   c.PageHeight,
		Thick:    c.CoverThick,
		Overhang: c.CoverOverhang,
	}
	p.Sheet = bookgeom.SheetDims{
		Width:    c.PageWidth,
		Height:   c.PageHeight,
		Thick:    c.MinThickness / 8,
		Segments: c.Segments,
	}
	return p
}
