package controller

import (
	"log"
	"net/http"
	"strings"

	"galeria-cuadros/service"
)

// ImageController serves optimized card images from the preload cache
type ImageController struct {
	images service.ImageSourceInterface
}

// NewImageController creates a new ImageController
func NewImageController(images service.ImageSourceInterface) *ImageController {
	return &ImageController{images: images}
}

// GetImage handles GET /images?src=cuadros/cuadro1_2.jpg&size=thumb|medium
func (c *ImageController) GetImage(w http.ResponseWriter, r *http.Request) {
	src := strings.TrimSpace(r.URL.Query().Get("src"))
	if src == "" {
		http.Error(w, "src parameter is required", http.StatusBadRequest)
		return
	}
	size := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("size")))

	data, err := c.images.Get(r.Context(), src, size)
	if err != nil {
		log.Printf("❌ GetImage %s: %v", src, err)
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ GetImage: failed to write response: %v", err)
	}
}
