package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"
)

// stubProber answers probes from a fixed set and records every call
type stubProber struct {
	mu       sync.Mutex
	existing map[string]bool
	delays   map[string]time.Duration
	calls    []string
	gate     chan struct{} // when non-nil, probes block until it is closed
}

func newStubProber(existing ...string) *stubProber {
	p := &stubProber{existing: map[string]bool{}, delays: map[string]time.Duration{}}
	for _, e := range existing {
		p.existing[e] = true
	}
	return p
}

func (p *stubProber) Probe(ctx context.Context, ref string) bool {
	p.mu.Lock()
	p.calls = append(p.calls, ref)
	delay := p.delays[ref]
	gate := p.gate
	ok := p.existing[ref]
	p.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return false
		}
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false
		}
	}
	return ok
}

func (p *stubProber) probed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

// recordingPreloader records preload requests instead of fetching
type recordingPreloader struct {
	mu   sync.Mutex
	refs []string
}

func (p *recordingPreloader) Preload(ref string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs = append(p.refs, ref)
}

func (p *recordingPreloader) preloaded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.refs...)
}

// pngBytes encodes a small solid PNG
func pngBytes(t testing.TB, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
