package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"galeria-cuadros/models"
)

func lightboxRoutes(c *LightboxController) func(r chi.Router) {
	return func(r chi.Router) {
		r.Route("/api/pages/{pageID}/lightbox", func(r chi.Router) {
			r.Get("/", c.Get)
			r.Post("/open", c.Open)
			r.Post("/index", c.SetIndex)
			r.Post("/prev", c.Prev)
			r.Post("/next", c.Next)
			r.Post("/key", c.Key)
			r.Post("/click", c.Click)
			r.Post("/close", c.Close)
		})
	}
}

func TestLightboxOpenFollowsCardIndex(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, nil)
	page, err := store.Create(context.Background())
	require.NoError(t, err)
	g, ok := page.Registry.Get("2")
	require.True(t, ok)
	g.SetIndex(1)

	srv := newTestRouter(t, lightboxRoutes(NewLightboxController(store)))
	base := "/api/pages/" + page.ID + "/lightbox"

	rec := doRequest(t, srv, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decodeBody[models.LightboxView](t, rec).Visible)

	rec = doRequest(t, srv, http.MethodPost, base+"/open", `{"cardKey":"2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeBody[models.LightboxView](t, rec)
	require.True(t, view.Visible)
	require.Equal(t, 1, view.Index)
	require.Equal(t, "b_1.jpg", view.Src)
	require.Len(t, view.Dots, 3)

	// Navigating the lightbox leaves the card alone
	rec = doRequest(t, srv, http.MethodPost, base+"/next", "")
	require.Equal(t, 2, decodeBody[models.LightboxView](t, rec).Index)
	rec = doRequest(t, srv, http.MethodPost, base+"/next", "")
	require.Equal(t, 0, decodeBody[models.LightboxView](t, rec).Index)
	require.Equal(t, 1, g.Index())

	rec = doRequest(t, srv, http.MethodPost, base+"/prev", "")
	require.Equal(t, 2, decodeBody[models.LightboxView](t, rec).Index)
	rec = doRequest(t, srv, http.MethodPost, base+"/index", `{"index": 4}`)
	require.Equal(t, 1, decodeBody[models.LightboxView](t, rec).Index)
}

func TestLightboxKeysAndClicks(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, nil)
	page, err := store.Create(context.Background())
	require.NoError(t, err)
	srv := newTestRouter(t, lightboxRoutes(NewLightboxController(store)))
	base := "/api/pages/" + page.ID + "/lightbox"

	// Keys are ignored while closed
	rec := doRequest(t, srv, http.MethodPost, base+"/key", `{"key":"ArrowRight"}`)
	require.False(t, decodeBody[models.LightboxView](t, rec).Visible)

	doRequest(t, srv, http.MethodPost, base+"/open", `{"cardKey":"2"}`)
	rec = doRequest(t, srv, http.MethodPost, base+"/key", `{"key":"ArrowLeft"}`)
	require.Equal(t, 2, decodeBody[models.LightboxView](t, rec).Index)
	rec = doRequest(t, srv, http.MethodPost, base+"/key", `{"key":"Enter"}`)
	require.Equal(t, 2, decodeBody[models.LightboxView](t, rec).Index)

	rec = doRequest(t, srv, http.MethodPost, base+"/click", `{"target":"image"}`)
	require.True(t, decodeBody[models.LightboxView](t, rec).Visible)
	rec = doRequest(t, srv, http.MethodPost, base+"/click", `{"target":"overlay"}`)
	require.False(t, decodeBody[models.LightboxView](t, rec).Visible)

	doRequest(t, srv, http.MethodPost, base+"/open", `{"cardKey":"1"}`)
	rec = doRequest(t, srv, http.MethodPost, base+"/key", `{"key":"Escape"}`)
	require.False(t, decodeBody[models.LightboxView](t, rec).Visible)

	doRequest(t, srv, http.MethodPost, base+"/open", `{"cardKey":"1"}`)
	rec = doRequest(t, srv, http.MethodPost, base+"/close", "")
	view := decodeBody[models.LightboxView](t, rec)
	require.False(t, view.Visible)
	require.Empty(t, view.List)
}

func TestLightboxOpenErrors(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, nil)
	page, err := store.Create(context.Background())
	require.NoError(t, err)
	srv := newTestRouter(t, lightboxRoutes(NewLightboxController(store)))
	base := "/api/pages/" + page.ID + "/lightbox"

	rec := doRequest(t, srv, http.MethodPost, base+"/open", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, base+"/open", `{"cardKey":"3"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, base+"/open", `{"cardKey":"99"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/pages/gone/lightbox", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
