package models

// VariantCandidate is a derived candidate file name for variant discovery.
// Recomputed on every discovery pass, never stored.
type VariantCandidate struct {
	Path      string `json:"path"`
	Base      string `json:"base"`
	Extension string `json:"extension"`
	Ordinal   int    `json:"ordinal"` // 1..MaxVariants
}

// DiscoverRequest represents the request body for POST /api/discover
// Example: {"images": ["cuadros/cuadro1.jpg", "cuadros/cuadro1_4.jpg"]}
type DiscoverRequest struct {
	Images []string `json:"images"`
}

// DiscoverResponse represents the variants found for a DiscoverRequest
type DiscoverResponse struct {
	Found      []string           `json:"found"`
	Candidates []VariantCandidate `json:"candidates"`
}
