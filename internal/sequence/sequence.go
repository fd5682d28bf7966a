// Package sequence renders a scripted page-turn animation to numbered
// WebP frames. Frames are independent jobs: each worker replays the book
// deterministically from t=0 at a fixed frame delta, so no animation state
// is ever shared between goroutines.
package sequence

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"bookflip-renderer/internal/book"
	"bookflip-renderer/internal/catalog"
	"bookflip-renderer/internal/postprocess"
	"bookflip-renderer/internal/raster"
	"bookflip-renderer/internal/scene"
)

// Config holds all shared resources for a sequence run.
type Config struct {
	OutputDir   string
	Resolver    catalog.Resolver
	RenderSize  int
	WebPQuality int
	Supersample int
	Workers     int
	View        string
}

// Script describes the animation timeline: open the book, settle, then
// turn one page at a time from StartPage to EndPage.
type Script struct {
	StartPage int
	EndPage   int
	FPS       int
	LeadIn    float64 // seconds between opening and the first turn
	Gap       float64 // pause between successive turns
	Tail      float64 // seconds held after the last turn completes
}

// event is one scheduled page-index change on the timeline.
type event struct {
	at   float64
	page int
}

// timeline expands the script into its events and total frame count for
// the given flip duration.
func (s Script) timeline(flipDuration float64) ([]event, int) {
	step := 1
	if s.EndPage < s.StartPage {
		step = -1
	}
	turns := (s.EndPage - s.StartPage) * step

	events := make([]event, 0, turns)
	t := s.LeadIn
	for p := s.StartPage; p != s.EndPage; p += step {
		events = append(events, event{at: t, page: p + step})
		t += flipDuration + s.Gap
	}

	total := t + s.Tail
	frames := int(total*float64(s.FPS)) + 1
	return events, frames
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Success bool
	Error   string
}

// Run renders every frame of the script using a worker pool and reports
// per-frame results. Construction failures abort before any worker
// starts; per-frame failures are collected, not fatal.
func Run(cfg Config, params book.Params, src book.ContentSource, script Script) ([]Result, error) {
	if script.FPS <= 0 {
		return nil, fmt.Errorf("sequence: fps must be positive")
	}
	// Validate geometry once up front so workers cannot hit build errors.
	if _, err := book.New(params, src); err != nil {
		return nil, fmt.Errorf("sequence: %w", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("sequence: output dir: %w", err)
	}

	events, total := script.timeline(params.FlipDuration)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = renderFrame(cfg, params, src, script, events, idx)
				processed.Add(1)
			}
		}()
	}

	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results, nil
}

// renderFrame replays the timeline up to frame idx and rasterizes it.
func renderFrame(cfg Config, params book.Params, src book.ContentSource, script Script, events []event, idx int) Result {
	b, err := book.New(params, src)
	if err != nil {
		return Result{Frame: idx, Error: err.Error()}
	}

	dt := 1.0 / float64(script.FPS)
	b.SetOpen(true)
	next := 0
	for f := 0; f <= idx; f++ {
		t := float64(f) * dt
		for next < len(events) && events[next].at <= t {
			b.SetPageIndex(events[next].page)
			next++
		}
		b.Update(dt)
	}

	cam := &scene.Camera{View: scene.ViewByName(cfg.View)}
	img := raster.Render(b.Scene(), cam, cfg.Resolver, cfg.RenderSize, cfg.Supersample)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%05d.webp", idx))
	f, err := os.Create(outPath)
	if err != nil {
		return Result{Frame: idx, Error: err.Error()}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return Result{Frame: idx, Error: fmt.Sprintf("WebP encode: %v", err)}
	}

	return Result{Frame: idx, Success: true}
}
