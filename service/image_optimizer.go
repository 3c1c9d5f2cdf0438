package service

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800

	// preloadWorkers bounds concurrent preload fetches
	preloadWorkers = 4
)

// PreloaderInterface warms images ahead of display. Preload must not block.
type PreloaderInterface interface {
	Preload(ref string)
}

// ImageSourceInterface serves optimized renditions of image references
type ImageSourceInterface interface {
	Get(ctx context.Context, ref string, size string) ([]byte, error)
}

// ImageCache serves optimized JPEG renditions of card images from a disk cache
// and preloads gallery images into it
type ImageCache struct {
	dir     string
	fetcher ImageFetcherInterface

	sem      chan struct{}
	mu       sync.Mutex
	inflight map[string]bool
	wg       sync.WaitGroup
}

// Ensure ImageCache implements PreloaderInterface
var _ PreloaderInterface = (*ImageCache)(nil)
var _ ImageSourceInterface = (*ImageCache)(nil)

// NewImageCache creates a new ImageCache storing renditions under dir
func NewImageCache(dir string, fetcher ImageFetcherInterface) *ImageCache {
	return &ImageCache{
		dir:      dir,
		fetcher:  fetcher,
		sem:      make(chan struct{}, preloadWorkers),
		inflight: make(map[string]bool),
	}
}

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func (c *ImageCache) EnsureCacheDir() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// CachePath returns the cache file path for an image reference and size
func (c *ImageCache) CachePath(ref string, size string) string {
	sum := sha1.Sum([]byte(ref))
	filename := fmt.Sprintf("img_%s_%s.jpg", hex.EncodeToString(sum[:]), normalizeSize(size))
	return filepath.Join(c.dir, filename)
}

// CacheExists checks if a cached image exists
func CacheExists(cachePath string) bool {
	_, err := os.Stat(cachePath)
	return err == nil
}

// saveToCache saves an image to the cache
func saveToCache(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Get returns the optimized rendition of ref, fetching and caching it on a miss
func (c *ImageCache) Get(ctx context.Context, ref string, size string) ([]byte, error) {
	cachePath := c.CachePath(ref, size)
	if CacheExists(cachePath) {
		data, err := os.ReadFile(cachePath)
		if err == nil {
			return data, nil
		}
		log.Printf("⚠️  Failed to read cache %s, refetching: %v", cachePath, err)
	}

	raw, err := c.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ref, err)
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize %s: %w", ref, err)
	}

	if err := saveToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️  %v", err)
	}
	return optimized, nil
}

// Preload warms the medium rendition of ref in the background.
// Concurrent preloads of the same reference collapse into one.
func (c *ImageCache) Preload(ref string) {
	if ref == "" || CacheExists(c.CachePath(ref, "medium")) {
		return
	}

	c.mu.Lock()
	if c.inflight[ref] {
		c.mu.Unlock()
		return
	}
	c.inflight[ref] = true
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			c.mu.Lock()
			delete(c.inflight, ref)
			c.mu.Unlock()
		}()

		c.sem <- struct{}{}
		defer func() { <-c.sem }()

		// Preloads outlive the request that triggered them
		if _, err := c.Get(context.Background(), ref, "medium"); err != nil {
			log.Printf("⚠️  Preload skipped for %s: %v", ref, err)
		}
	}()
}

// Wait blocks until every pending preload has finished
func (c *ImageCache) Wait() {
	c.wg.Wait()
}

// normalizeSize maps unknown sizes to "medium"
func normalizeSize(size string) string {
	if size == "thumb" {
		return "thumb"
	}
	return "medium"
}

// OptimizeImage optimizes an image by converting to JPEG and resizing
// imageData: raw image bytes (PNG, JPEG, GIF, WebP)
// size: "thumb" or "medium"
// Returns optimized JPEG image bytes
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	if normalizeSize(size) == "thumb" {
		maxDim, quality = maxSizeThumb, qualityThumb
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resizedImg image.Image = img
	if width > maxDim || height > maxDim {
		// Passing 0 for one side keeps the aspect ratio
		if width > height {
			resizedImg = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			resizedImg = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
		log.Printf("🔄 Resized %s image: %dx%d -> %v", format, width, height, resizedImg.Bounds().Size())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resizedImg, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
