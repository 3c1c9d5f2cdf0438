package models

// LightboxState is a value copy of a gallery list taken when the lightbox opens
type LightboxState struct {
	List  []string `json:"list"`
	Index int      `json:"index"`
}

// LightboxView is a rendering snapshot of the shared lightbox overlay
type LightboxView struct {
	Visible bool     `json:"visible"`
	Src     string   `json:"src,omitempty"`
	List    []string `json:"list"`
	Index   int      `json:"index"`
	Dots    []Dot    `json:"dots"`
}

// LightboxOpenRequest opens the lightbox from a card
// Example: {"cardKey": "cuadro-7"}
type LightboxOpenRequest struct {
	CardKey string `json:"cardKey"`
}

// LightboxKeyRequest forwards a key press to the lightbox
// key values: "Escape", "ArrowLeft", "ArrowRight"
type LightboxKeyRequest struct {
	Key string `json:"key"`
}

// LightboxClickRequest forwards a click inside the overlay
// target values: "overlay" (background, closes) or "image"
type LightboxClickRequest struct {
	Target string `json:"target"`
}
