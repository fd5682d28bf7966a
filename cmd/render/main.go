package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bookflip-renderer/internal/book"
	"bookflip-renderer/internal/catalog"
	"bookflip-renderer/internal/config"
	"bookflip-renderer/internal/sequence"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	assetDir := flag.String("assets", "", "Path to asset directory (default: assets)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	size := flag.Int("size", 0, "Output frame size in pixels (default: 512)")
	startPage := flag.Int("start", 0, "Page index the sequence starts on")
	endPage := flag.Int("end", -1, "Page index the sequence ends on (default: last page)")
	leadIn := flag.Float64("lead", 0.6, "Seconds between opening the book and the first turn")
	gap := flag.Float64("gap", 0.25, "Seconds between successive turns")
	tail := flag.Float64("tail", 0.5, "Seconds held after the last turn")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		AssetDir:  *assetDir,
		OutputDir: *outputDir,
		Quality:   *quality,
		Workers:   *workers,
		Size:      *size,
	})

	// Load page manifest; without one the book renders blank paper.
	var src book.ContentSource
	manifest, err := catalog.ParseManifest(cfg.ManifestXML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest load: %v (rendering blank pages)\n", err)
		src = blankPages{}
	} else {
		src = manifest
		if n := manifest.PageCount(); n > 0 {
			cfg.PageCount = n
		}
	}

	params := cfg.BookParams()

	if *endPage < 0 {
		*endPage = params.PageCount
	}
	if *startPage < 0 || *startPage > params.PageCount || *endPage > params.PageCount {
		fmt.Fprintf(os.Stderr, "Error: page range %d..%d outside 0..%d\n", *startPage, *endPage, params.PageCount)
		os.Exit(1)
	}

	// Build image index
	index := catalog.BuildIndex(cfg.AssetDir)
	cache := catalog.NewCache(index)
	fmt.Printf("Images: %d indexed\n", index.Len())

	// Print summary
	fmt.Printf("Book Page-Turn Renderer → WebP\n")
	fmt.Printf("Pages: %d..%d of %d, FPS: %d, Workers: %d\n", *startPage, *endPage, params.PageCount, cfg.FPS, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	seqCfg := sequence.Config{
		OutputDir:   cfg.OutputDir,
		Resolver:    cache,
		RenderSize:  cfg.RenderSize,
		WebPQuality: cfg.WebPQuality,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		View:        cfg.View,
	}
	script := sequence.Script{
		StartPage: *startPage,
		EndPage:   *endPage,
		FPS:       cfg.FPS,
		LeadIn:    *leadIn,
		Gap:       *gap,
		Tail:      *tail,
	}

	results, err := sequence.Run(seqCfg, params, src, script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []sequence.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d frames\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %05d: %s\n", e.Frame, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := sequence.WriteManifest(manifestPath, cfg.FPS, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// blankPages satisfies the content source with no images at all.
type blankPages struct{}

func (blankPages) PageImages(int) (string, string) { return "", "" }
