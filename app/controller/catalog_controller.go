package controller

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"galeria-cuadros/service"
)

// PageCookie carries the id of the page session rendered for the browser
const PageCookie = "galeria_page"

// printSettleTimeout bounds how long a print render waits for discovery
const printSettleTimeout = 10 * time.Second

// CatalogController handles HTTP requests for the catalog page and its export
type CatalogController struct {
	pages          *service.PageStore
	catalogService service.CatalogServiceInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(pages *service.PageStore, catalogService service.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		pages:          pages,
		catalogService: catalogService,
	}
}

// ShowCatalog handles GET /catalog
// Every load sets up a new page session: one gallery per card and a closed lightbox.
// With ?print=1 the page is rendered without the client script after discovery has
// settled, and the session is dropped right away.
func (c *CatalogController) ShowCatalog(w http.ResponseWriter, r *http.Request) {
	printMode := r.URL.Query().Get("print") == "1"

	page, err := c.pages.Create(r.Context())
	if err != nil {
		log.Printf("❌ ShowCatalog: %v", err)
		http.Error(w, "Failed to load cards", http.StatusInternalServerError)
		return
	}

	if printMode {
		defer c.pages.Close(page.ID)

		ctx, cancel := context.WithTimeout(r.Context(), printSettleTimeout)
		defer cancel()
		if err := page.Registry.WaitAll(ctx); err != nil {
			log.Printf("⚠️  ShowCatalog: rendering print page before discovery settled: %v", err)
		}
	}

	html, err := c.catalogService.RenderPage(page, !printMode)
	if err != nil {
		log.Printf("❌ ShowCatalog: %v", err)
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
		return
	}

	if !printMode {
		http.SetCookie(w, &http.Cookie{
			Name:     PageCookie,
			Value:    page.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("❌ ShowCatalog: failed to write response: %v", err)
	}
}

// DownloadPDF handles GET /catalog/pdf
func (c *CatalogController) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := c.catalogService.GeneratePDF(r.Context())
	if err != nil {
		log.Printf("❌ DownloadPDF: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="catalogo.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("❌ DownloadPDF: failed to write response: %v", err)
	}
}

// ClosePage handles DELETE /api/pages/{pageID}
// Sent when the browser leaves the page; pending discovery is canceled
func (c *CatalogController) ClosePage(w http.ResponseWriter, r *http.Request) {
	pageID := strings.TrimSpace(chi.URLParam(r, "pageID"))
	if err := c.pages.Close(pageID); err != nil {
		writeServiceError(w, "ClosePage", err)
		return
	}
	log.Printf("🧹 Page %s closed by client", pageID)
	w.WriteHeader(http.StatusNoContent)
}
