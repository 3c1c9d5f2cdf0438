package controller

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"galeria-cuadros/models"
	"galeria-cuadros/service"
)

// discoveryWaitTimeout bounds how long GetCard holds a ?wait=1 request.
// It outlasts the HTTP backend's client timeout so a pass can settle.
const discoveryWaitTimeout = 20 * time.Second

// GalleryController handles HTTP requests for the card carousels of a page
type GalleryController struct {
	pages *service.PageStore
}

// NewGalleryController creates a new GalleryController
func NewGalleryController(pages *service.PageStore) *GalleryController {
	return &GalleryController{pages: pages}
}

// gallery resolves the page and card of the request
func (c *GalleryController) gallery(r *http.Request) (*service.Page, *service.CardGallery, error) {
	page, err := c.pages.Get(strings.TrimSpace(chi.URLParam(r, "pageID")))
	if err != nil {
		return nil, nil, err
	}
	cardID := strings.TrimSpace(chi.URLParam(r, "cardID"))
	g, ok := page.Registry.Get(cardID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", service.ErrCardNotFound, cardID)
	}
	return page, g, nil
}

// ListCards handles GET /api/pages/{pageID}/cards
func (c *GalleryController) ListCards(w http.ResponseWriter, r *http.Request) {
	page, err := c.pages.Get(strings.TrimSpace(chi.URLParam(r, "pageID")))
	if err != nil {
		writeServiceError(w, "ListCards", err)
		return
	}

	views := []models.GalleryView{}
	for _, g := range page.Registry.Galleries() {
		views = append(views, g.View())
	}
	writeJSON(w, http.StatusOK, views)
}

// GetCard handles GET /api/pages/{pageID}/cards/{cardID}
// With ?wait=1 the response is held until the card's discovery pass settles.
// On timeout the current view is returned.
func (c *GalleryController) GetCard(w http.ResponseWriter, r *http.Request) {
	page, g, err := c.gallery(r)
	if err != nil {
		writeServiceError(w, "GetCard", err)
		return
	}

	if r.URL.Query().Get("wait") == "1" {
		ctx, cancel := context.WithTimeout(r.Context(), discoveryWaitTimeout)
		defer cancel()
		if err := page.Registry.Wait(ctx, g.Key()); err != nil {
			log.Printf("⚠️ Card %s: discovery still pending: %v", g.Key(), err)
		}
	}
	writeJSON(w, http.StatusOK, g.View())
}

// DeleteCard handles DELETE /api/pages/{pageID}/cards/{cardID}
// The card leaves the page; a discovery pass still running for it is ignored
func (c *GalleryController) DeleteCard(w http.ResponseWriter, r *http.Request) {
	page, g, err := c.gallery(r)
	if err != nil {
		writeServiceError(w, "DeleteCard", err)
		return
	}
	if err := page.RemoveCard(g.Key()); err != nil {
		writeServiceError(w, "DeleteCard", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetIndex handles POST /api/pages/{pageID}/cards/{cardID}/index
// Request body: {"index": 3}. Any integer is accepted and wrapped.
func (c *GalleryController) SetIndex(w http.ResponseWriter, r *http.Request) {
	_, g, err := c.gallery(r)
	if err != nil {
		writeServiceError(w, "SetIndex", err)
		return
	}

	var req models.SetIndexRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	g.SetIndex(req.Index)
	writeJSON(w, http.StatusOK, g.View())
}

// Prev handles POST /api/pages/{pageID}/cards/{cardID}/prev
func (c *GalleryController) Prev(w http.ResponseWriter, r *http.Request) {
	_, g, err := c.gallery(r)
	if err != nil {
		writeServiceError(w, "Prev", err)
		return
	}
	g.Prev()
	writeJSON(w, http.StatusOK, g.View())
}

// Next handles POST /api/pages/{pageID}/cards/{cardID}/next
func (c *GalleryController) Next(w http.ResponseWriter, r *http.Request) {
	_, g, err := c.gallery(r)
	if err != nil {
		writeServiceError(w, "Next", err)
		return
	}
	g.Next()
	writeJSON(w, http.StatusOK, g.View())
}
