package controller

import (
	"log"
	"net/http"

	"galeria-cuadros/models"
	"galeria-cuadros/service"
)

// DiscoverController exposes variant discovery without a page session
type DiscoverController struct {
	discovery service.DiscoveryServiceInterface
}

// NewDiscoverController creates a new DiscoverController
func NewDiscoverController(discovery service.DiscoveryServiceInterface) *DiscoverController {
	return &DiscoverController{discovery: discovery}
}

// Discover handles POST /api/discover
// Request body: {"images": ["cuadros/cuadro1.jpg"]}
// Returns the variants found next to the first image and the candidates probed.
func (c *DiscoverController) Discover(w http.ResponseWriter, r *http.Request) {
	var req models.DiscoverRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := models.DiscoverResponse{
		Found:      c.discovery.Discover(r.Context(), req.Images),
		Candidates: c.discovery.Candidates(req.Images),
	}
	if resp.Found == nil {
		resp.Found = []string{}
	}
	if resp.Candidates == nil {
		resp.Candidates = []models.VariantCandidate{}
	}

	log.Printf("🔍 Discover: %d candidate(s), %d found", len(resp.Candidates), len(resp.Found))
	writeJSON(w, http.StatusOK, resp)
}
