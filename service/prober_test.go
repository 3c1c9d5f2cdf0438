package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPProber(t *testing.T) {
	t.Parallel()

	img := pngBytes(t, 4, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cuadros/a_1.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(img)
		case "/cuadros/roto.png":
			_, _ = w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	prober, err := NewHTTPProber(srv.Client(), srv.URL)
	require.NoError(t, err)

	ctx := context.Background()
	require.True(t, prober.Probe(ctx, "/cuadros/a_1.png"))
	require.True(t, prober.Probe(ctx, "cuadros/a_1.png"))
	require.True(t, prober.Probe(ctx, srv.URL+"/cuadros/a_1.png"))
	require.False(t, prober.Probe(ctx, "/cuadros/a_2.png"), "404 is a miss")
	require.False(t, prober.Probe(ctx, "/cuadros/roto.png"), "undecodable body is a miss")
	require.False(t, prober.Probe(ctx, "ftp://example.com/a.png"))
}

func TestHTTPProberStaysOnBaseOrigin(t *testing.T) {
	t.Parallel()

	img := pngBytes(t, 4, 4)
	var otherHits atomic.Int32
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		otherHits.Add(1)
		_, _ = w.Write(img)
	}))
	defer other.Close()

	imageHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(img)
	}))
	defer imageHost.Close()

	prober, err := NewHTTPProber(nil, imageHost.URL)
	require.NoError(t, err)

	ctx := context.Background()
	require.True(t, prober.Probe(ctx, "/cuadros/a.png"))
	require.False(t, prober.Probe(ctx, other.URL+"/secret.png"))
	require.False(t, prober.Probe(ctx, "//"+other.Listener.Addr().String()+"/secret.png"))
	require.Zero(t, otherHits.Load(), "no request may leave the image host")
}

func TestHTTPProberUnreachableAndCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	prober, err := NewHTTPProber(nil, url)
	require.NoError(t, err)
	require.False(t, prober.Probe(context.Background(), "/a.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.False(t, prober.Probe(ctx, "/a.png"))
}

func TestFileProber(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cuadros"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cuadros", "a_1.png"), pngBytes(t, 2, 2), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cuadros", "a_2.png"), []byte("corrupt"), 0644))

	prober := NewFileProber(root)
	ctx := context.Background()

	require.True(t, prober.Probe(ctx, "cuadros/a_1.png"))
	require.True(t, prober.Probe(ctx, "/cuadros/a_1.png"))
	require.False(t, prober.Probe(ctx, "cuadros/a_2.png"))
	require.False(t, prober.Probe(ctx, "cuadros/a_3.png"))
	require.False(t, prober.Probe(ctx, "http://example.com/cuadros/a_1.png"))
	require.False(t, prober.Probe(ctx, "../../etc/passwd"))
}

type fakeDrive struct {
	files map[string]string
	err   error
}

func (f *fakeDrive) FindImageByName(ctx context.Context, folderID string, name string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	id, ok := f.files[folderID+"/"+name]
	return id, ok, nil
}

func (f *fakeDrive) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func TestDriveProber(t *testing.T) {
	t.Parallel()

	drive := &fakeDrive{files: map[string]string{"carpeta/cuadro7_1.jpg": "f1"}}
	prober := NewDriveProber(drive, "carpeta")
	ctx := context.Background()

	require.True(t, prober.Probe(ctx, "img/cuadro7_1.jpg"))
	require.False(t, prober.Probe(ctx, "img/cuadro7_2.jpg"))

	drive.err = errors.New("quota exceeded")
	require.False(t, prober.Probe(ctx, "img/cuadro7_1.jpg"))
}
