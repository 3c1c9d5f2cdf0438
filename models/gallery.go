package models

// Dot represents one dot indicator of a gallery or the lightbox
type Dot struct {
	Index  int    `json:"index"`
	Active bool   `json:"active"`
	Label  string `json:"label"`
}

// GalleryState is the exposed state of a card gallery
type GalleryState struct {
	List  []string `json:"list"`
	Index int      `json:"index"`
}

// GalleryView is a rendering snapshot of a card gallery
type GalleryView struct {
	CardKey      string   `json:"cardKey"`
	Title        string   `json:"title"`
	Alt          string   `json:"alt,omitempty"`
	Src          string   `json:"src"`
	List         []string `json:"list"`
	Index        int      `json:"index"`
	Dots         []Dot    `json:"dots"`
	ShowControls bool     `json:"showControls"` // prev/next and dots are hidden with a single image
	Attached     bool     `json:"attached"`
	Zoomable     bool     `json:"zoomable"` // clicking the image opens the lightbox
}

// SetIndexRequest represents the request body for index changes
// Example: {"index": -1}
type SetIndexRequest struct {
	Index int `json:"index"`
}
