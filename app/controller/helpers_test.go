package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"galeria-cuadros/models"
	"galeria-cuadros/service"
)

type staticCards []models.ProductCard

func (s staticCards) ListCards(ctx context.Context) ([]models.ProductCard, error) {
	return s, nil
}

// fixedDiscovery reports the same variants for every list
type fixedDiscovery struct {
	found []string
}

func (d fixedDiscovery) Discover(ctx context.Context, list []string) []string {
	return append([]string{}, d.found...)
}

func (d fixedDiscovery) Candidates(list []string) []models.VariantCandidate {
	return nil
}

// gatedDiscovery reports its variants once gate is closed
type gatedDiscovery struct {
	gate  chan struct{}
	found []string
}

func (d gatedDiscovery) Discover(ctx context.Context, list []string) []string {
	select {
	case <-d.gate:
		return append([]string{}, d.found...)
	case <-ctx.Done():
		return nil
	}
}

func (d gatedDiscovery) Candidates(list []string) []models.VariantCandidate {
	return nil
}

func testCards() staticCards {
	return staticCards{
		{Key: "1", Title: "Cuadro 1", Image: &models.CardImage{Src: "a.jpg"}},
		{Key: "2", Title: "Cuadro 2", Image: &models.CardImage{DataImages: "b.jpg,b_1.jpg,b_2.jpg"}},
		{Key: "3", Title: "Marco"},
	}
}

func newTestStore(t *testing.T, discovery service.DiscoveryServiceInterface) *service.PageStore {
	t.Helper()
	store := service.NewPageStore(context.Background(), testCards(), discovery, nil)
	t.Cleanup(store.CloseAll)
	return store
}

func newTestRouter(t *testing.T, add func(r chi.Router)) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	add(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
