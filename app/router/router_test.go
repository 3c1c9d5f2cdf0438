package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"galeria-cuadros/app/controller"
	"galeria-cuadros/models"
	"galeria-cuadros/service"
)

type staticCards []models.ProductCard

func (s staticCards) ListCards(ctx context.Context) ([]models.ProductCard, error) {
	return s, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *service.PageStore) {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "hola.txt"), []byte("hola"), 0644))

	cards := staticCards{
		{Key: "1", Title: "Cuadro 1", Image: &models.CardImage{DataImages: "a.jpg,a_1.jpg"}},
	}
	discovery := service.NewDiscoveryService(service.NewFileProber(staticDir))
	pages := service.NewPageStore(context.Background(), cards, discovery, nil)
	t.Cleanup(pages.CloseAll)

	images := service.NewImageCache(t.TempDir(), service.NewFileFetcher(staticDir))
	controllers := &Controllers{
		Catalog:  controller.NewCatalogController(pages, service.NewCatalogService("Cuadros", "http://localhost")),
		Gallery:  controller.NewGalleryController(pages),
		Lightbox: controller.NewLightboxController(pages),
		Image:    controller.NewImageController(images),
		Discover: controller.NewDiscoverController(discovery),
	}

	srv := httptest.NewServer(NewRouter(controllers, staticDir))
	t.Cleanup(srv.Close)
	return srv, pages
}

func TestPingAndStatic(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])

	resp, err = http.Get(srv.URL + "/static/hola.txt")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPageRoutesEndToEnd(t *testing.T) {
	t.Parallel()
	srv, pages := newTestServer(t)

	resp, err := http.Get(srv.URL + "/catalog")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, pages.Len())

	var pageID string
	for _, c := range resp.Cookies() {
		if c.Name == controller.PageCookie {
			pageID = c.Value
		}
	}
	require.NotEmpty(t, pageID)
	base := srv.URL + "/api/pages/" + pageID

	resp, err = http.Post(base+"/cards/1/next", "application/json", nil)
	require.NoError(t, err)
	var view models.GalleryView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	resp.Body.Close()
	require.Equal(t, "a_1.jpg", view.Src)

	resp, err = http.Post(base+"/lightbox/open", "application/json", strings.NewReader(`{"cardKey":"1"}`))
	require.NoError(t, err)
	var lb models.LightboxView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lb))
	resp.Body.Close()
	require.True(t, lb.Visible)
	require.Equal(t, 1, lb.Index)

	// Wrong method on a known route
	resp, err = http.Get(base + "/lightbox/open")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, base, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, 0, pages.Len())
}
