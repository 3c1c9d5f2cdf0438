package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"galeria-cuadros/app/controller"
)

type Controllers struct {
	Catalog  *controller.CatalogController
	Gallery  *controller.GalleryController
	Lightbox *controller.LightboxController
	Image    *controller.ImageController
	Discover *controller.DiscoverController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// NewRouter builds the HTTP routes. staticDir, when set, is served under /static/.
func NewRouter(controllers *Controllers, staticDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/ping", pingHandler)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/catalog", http.StatusFound)
	})

	// Catalog page and export
	r.Get("/catalog", controllers.Catalog.ShowCatalog)
	r.Get("/catalog/pdf", controllers.Catalog.DownloadPDF)

	// Optimized images from the preload cache
	r.Get("/images", controllers.Image.GetImage)
	if staticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/discover", controllers.Discover.Discover)

		r.Route("/pages/{pageID}", func(r chi.Router) {
			r.Delete("/", controllers.Catalog.ClosePage)

			r.Get("/cards", controllers.Gallery.ListCards)
			r.Route("/cards/{cardID}", func(r chi.Router) {
				r.Get("/", controllers.Gallery.GetCard)
				r.Delete("/", controllers.Gallery.DeleteCard)
				r.Post("/index", controllers.Gallery.SetIndex)
				r.Post("/prev", controllers.Gallery.Prev)
				r.Post("/next", controllers.Gallery.Next)
			})

			r.Route("/lightbox", func(r chi.Router) {
				r.Get("/", controllers.Lightbox.Get)
				r.Post("/open", controllers.Lightbox.Open)
				r.Post("/index", controllers.Lightbox.SetIndex)
				r.Post("/prev", controllers.Lightbox.Prev)
				r.Post("/next", controllers.Lightbox.Next)
				r.Post("/key", controllers.Lightbox.Key)
				r.Post("/click", controllers.Lightbox.Click)
				r.Post("/close", controllers.Lightbox.Close)
			})
		})
	})

	return r
}
