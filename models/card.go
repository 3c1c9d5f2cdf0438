package models

// CardImage represents the product image element of a card
type CardImage struct {
	Src        string `json:"src"`
	CurrentSrc string `json:"currentSrc,omitempty"` // Resolved source, preferred over Src when set
	DataImages string `json:"dataImages,omitempty"` // Raw comma separated data-images attribute
	Alt        string `json:"alt,omitempty"`
}

// ResolvedSrc returns the image's currently resolved source
func (i *CardImage) ResolvedSrc() string {
	if i.CurrentSrc != "" {
		return i.CurrentSrc
	}
	return i.Src
}

// ProductCard represents a product card on the catalog page
// Image is nil when the card has no product image element
type ProductCard struct {
	Key         string     `json:"key"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Image       *CardImage `json:"image,omitempty"`
}
