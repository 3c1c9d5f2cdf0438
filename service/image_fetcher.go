package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// maxImageBytes caps how much of a remote image body is read
const maxImageBytes = 20 << 20

// ImageFetcherInterface defines the contract for reading raw image bytes by reference
type ImageFetcherInterface interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// HTTPFetcher reads images over HTTP, resolving relative references against a base URL
type HTTPFetcher struct {
	client  *http.Client
	baseURL *url.URL
}

// Ensure HTTPFetcher implements ImageFetcherInterface
var _ ImageFetcherInterface = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a new HTTPFetcher
func NewHTTPFetcher(client *http.Client, baseURL string) (*HTTPFetcher, error) {
	if client == nil {
		client = &http.Client{}
	}
	f := &HTTPFetcher{client: client}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
		}
		f.baseURL = u
	}
	return f, nil
}

// Fetch downloads ref. References outside the base URL's origin are refused.
func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	u, err := resolveImageURL(f.baseURL, ref)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", u, maxImageBytes)
	}
	return data, nil
}

// FileFetcher reads images from a local static directory
type FileFetcher struct {
	root string
}

// Ensure FileFetcher implements ImageFetcherInterface
var _ ImageFetcherInterface = (*FileFetcher)(nil)

// NewFileFetcher creates a new FileFetcher rooted at root
func NewFileFetcher(root string) *FileFetcher {
	return &FileFetcher{root: root}
}

// Fetch reads ref under the root
func (f *FileFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return nil, fmt.Errorf("not a local image reference: %s", ref)
	}
	local := filepath.Join(f.root, filepath.FromSlash(path.Clean("/"+u.Path)))
	data, err := os.ReadFile(local)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// DriveFetcher reads images stored by file name in a Google Drive folder
type DriveFetcher struct {
	driveService DriveServiceInterface
	folderID     string
}

// Ensure DriveFetcher implements ImageFetcherInterface
var _ ImageFetcherInterface = (*DriveFetcher)(nil)

// NewDriveFetcher creates a new DriveFetcher for folderID
func NewDriveFetcher(driveService DriveServiceInterface, folderID string) *DriveFetcher {
	return &DriveFetcher{
		driveService: driveService,
		folderID:     folderID,
	}
}

// Fetch resolves the file name of ref in the folder and downloads it
func (f *DriveFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	name := path.Base(ref)
	fileID, found, err := f.driveService.FindImageByName(ctx, f.folderID, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("image %s not found in drive folder", name)
	}
	return f.driveService.DownloadImage(ctx, fileID)
}
