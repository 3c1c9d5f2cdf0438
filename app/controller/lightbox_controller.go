package controller

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"galeria-cuadros/models"
	"galeria-cuadros/service"
)

// LightboxController handles HTTP requests for the lightbox of a page
type LightboxController struct {
	pages *service.PageStore
}

// NewLightboxController creates a new LightboxController
func NewLightboxController(pages *service.PageStore) *LightboxController {
	return &LightboxController{pages: pages}
}

func (c *LightboxController) page(r *http.Request) (*service.Page, error) {
	return c.pages.Get(strings.TrimSpace(chi.URLParam(r, "pageID")))
}

// Get handles GET /api/pages/{pageID}/lightbox
func (c *LightboxController) Get(w http.ResponseWriter, r *http.Request) {
	page, err := c.page(r)
	if err != nil {
		writeServiceError(w, "GetLightbox", err)
		return
	}
	writeJSON(w, http.StatusOK, page.Lightbox.View())
}

// Open handles POST /api/pages/{pageID}/lightbox/open
// Request body: {"cardKey": "cuadro-7"}. The lightbox shows a copy of the
// card's current list starting at the card's current index.
func (c *LightboxController) Open(w http.ResponseWriter, r *http.Request) {
	page, err := c.page(r)
	if err != nil {
		writeServiceError(w, "OpenLightbox", err)
		return
	}

	var req models.LightboxOpenRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CardKey) == "" {
		http.Error(w, "cardKey is required", http.StatusBadRequest)
		return
	}

	if err := page.OpenCard(req.CardKey); err != nil {
		writeServiceError(w, "OpenLightbox", err)
		return
	}
	writeJSON(w, http.StatusOK, page.Lightbox.View())
}

// SetIndex handles POST /api/pages/{pageID}/lightbox/index
// Request body: {"index": 2}
func (c *LightboxController) SetIndex(w http.ResponseWriter, r *http.Request) {
	page, err := c.page(r)
	if err != nil {
		writeServiceError(w, "SetLightboxIndex", err)
		return
	}

	var req models.SetIndexRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page.Lightbox.SetIndex(req.Index)
	writeJSON(w, http.StatusOK, page.Lightbox.View())
}

// Prev handles POST /api/pages/{pageID}/lightbox/prev
func (c *LightboxController) Prev(w http.ResponseWriter, r *http.Request) {
	page, err := c.page(r)
	if err != nil {
		writeServiceError(w, "LightboxPrev", err)
		return
	}
	page.Lightbox.Prev()
	writeJSON(w, http.StatusOK, page.Lightbox.View())
}

// Next handles POST /api/pages/{pageID}/lightbox/next
func (c *LightboxController) Next(w http.ResponseWriter, r *http.Request) {
	page, err := c.page(r)
	if err != nil {
		writeServiceError(w, "LightboxNext", err)
		return
	}
	page.Lightbox.Next()
	writeJSON(w, http.StatusOK, page.Lightbox.View())
}

// Key handles POST /api/pages/{pageID}/lightbox/key
// Request body: {"key": "ArrowLeft"}. Unknown keys and keys sent while the
// lightbox is closed leave it unchanged.
func (c *LightboxController) Key(w http.ResponseWriter, r *http.Request) {
	page, err := c.page(r)
	if err != nil {
		writeServiceError(w, "LightboxKey", err)
		return
	}

	var req models.LightboxKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page.Lightbox.HandleKey(req.Key)
	writeJSON(w, http.StatusOK, page.Lightbox.View())
}

// Click handles POST /api/pages/{pageID}/lightbox/click
// Request body: {"target": "overlay"}. Only a click on the overlay background closes it.
func (c *LightboxController) Click(w http.ResponseWriter, r *http.Request) {
	page, err := c.page(r)
	if err != nil {
		writeServiceError(w, "LightboxClick", err)
		return
	}

	var req models.LightboxClickRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page.Lightbox.Click(req.Target)
	writeJSON(w, http.StatusOK, page.Lightbox.View())
}

// Close handles POST /api/pages/{pageID}/lightbox/close
func (c *LightboxController) Close(w http.ResponseWriter, r *http.Request) {
	page, err := c.page(r)
	if err != nil {
		writeServiceError(w, "CloseLightbox", err)
		return
	}
	page.Lightbox.Close()
	writeJSON(w, http.StatusOK, page.Lightbox.View())
}
