package service

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	// Decoders for the formats a card image may use
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ProberInterface defines the contract for image existence checks.
// Probe never fails: a missing, unreachable or undecodable image is false.
type ProberInterface interface {
	Probe(ctx context.Context, ref string) bool
}

// HTTPProber checks that an image reference loads over HTTP and decodes as an image
type HTTPProber struct {
	client  *http.Client
	baseURL *url.URL // relative references are resolved against it
}

// Ensure HTTPProber implements ProberInterface
var _ ProberInterface = (*HTTPProber)(nil)

// NewHTTPProber creates a new HTTPProber. baseURL may be empty when every reference is absolute.
// No client timeout is set; probes end when the server answers or ctx is canceled.
func NewHTTPProber(client *http.Client, baseURL string) (*HTTPProber, error) {
	if client == nil {
		client = &http.Client{}
	}
	p := &HTTPProber{client: client}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, err
		}
		p.baseURL = u
	}
	return p, nil
}

// resolve turns an image reference into an absolute URL on the base URL's origin
func (p *HTTPProber) resolve(ref string) (string, bool) {
	u, err := resolveImageURL(p.baseURL, ref)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// resolveImageURL resolves ref against base. With a base set, only references
// on the same scheme and host are accepted.
func resolveImageURL(base *url.URL, ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid image reference %q: %w", ref, err)
	}
	if base != nil {
		u = base.ResolveReference(u)
		if u.Scheme != base.Scheme || u.Host != base.Host {
			return nil, fmt.Errorf("image reference %q is outside %s://%s", ref, base.Scheme, base.Host)
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported image scheme %q", u.Scheme)
	}
	return u, nil
}

// Probe loads ref and reports whether it is a decodable image
func (p *HTTPProber) Probe(ctx context.Context, ref string) bool {
	target, ok := p.resolve(ref)
	if !ok {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}

	_, _, err = image.DecodeConfig(io.LimitReader(resp.Body, maxImageBytes))
	return err == nil
}

// FileProber checks image references against a local static directory
type FileProber struct {
	root string
}

// Ensure FileProber implements ProberInterface
var _ ProberInterface = (*FileProber)(nil)

// NewFileProber creates a new FileProber serving references from root
func NewFileProber(root string) *FileProber {
	return &FileProber{root: root}
}

// localPath maps a reference onto the root, refusing anything that escapes it
func (p *FileProber) localPath(ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	// Cleaning against "/" drops any leading ".." segments
	clean := path.Clean("/" + u.Path)
	return filepath.Join(p.root, filepath.FromSlash(clean)), true
}

// Probe opens ref under the root and reports whether it decodes as an image
func (p *FileProber) Probe(ctx context.Context, ref string) bool {
	if ctx.Err() != nil {
		return false
	}
	local, ok := p.localPath(ref)
	if !ok {
		return false
	}

	f, err := os.Open(local)
	if err != nil {
		return false
	}
	defer f.Close()

	_, _, err = image.DecodeConfig(f)
	return err == nil
}

// DriveProber checks whether a candidate file name exists as an image in a Drive folder
type DriveProber struct {
	driveService DriveServiceInterface
	folderID     string
}

// Ensure DriveProber implements ProberInterface
var _ ProberInterface = (*DriveProber)(nil)

// NewDriveProber creates a new DriveProber for folderID
func NewDriveProber(driveService DriveServiceInterface, folderID string) *DriveProber {
	return &DriveProber{
		driveService: driveService,
		folderID:     folderID,
	}
}

// Probe looks the base file name of ref up in the folder
func (p *DriveProber) Probe(ctx context.Context, ref string) bool {
	name := path.Base(ref)
	if name == "." || name == "/" {
		return false
	}
	_, found, err := p.driveService.FindImageByName(ctx, p.folderID, name)
	return err == nil && found
}
