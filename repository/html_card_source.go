package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"galeria-cuadros/models"
)

const (
	// cardSelector matches every product card of the catalog page
	cardSelector = "main > div"
	// imageSelector matches the product image inside a card
	imageSelector = "img.product-image"
)

// HTMLCardSource reads product cards from a static catalog HTML page
// Implements CardSourceInterface
type HTMLCardSource struct {
	path string
}

// NewHTMLCardSource creates a new HTMLCardSource for the page at path
func NewHTMLCardSource(path string) *HTMLCardSource {
	return &HTMLCardSource{path: path}
}

// Ensure HTMLCardSource implements CardSourceInterface
var _ CardSourceInterface = (*HTMLCardSource)(nil)

// ListCards parses the page on every call so edits show up on the next page load
func (s *HTMLCardSource) ListCards(ctx context.Context) ([]models.ProductCard, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog page: %w", err)
	}
	defer f.Close()

	return ParseCards(f)
}

// ParseCards extracts product cards from catalog HTML. Cards are keyed by their
// data-card-id attribute, or by document position when it is missing.
// A card without a product image is returned with a nil Image.
func ParseCards(r io.Reader) ([]models.ProductCard, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog page: %w", err)
	}

	var cards []models.ProductCard
	doc.Find(cardSelector).Each(func(i int, sel *goquery.Selection) {
		key := strings.TrimSpace(sel.AttrOr("data-card-id", ""))
		if key == "" {
			key = fmt.Sprintf("card-%d", i+1)
		}

		card := models.ProductCard{
			Key:         key,
			Title:       strings.TrimSpace(sel.Find("h2").First().Text()),
			Description: strings.TrimSpace(sel.Find("p").First().Text()),
		}

		if img := sel.Find(imageSelector).First(); img.Length() > 0 {
			card.Image = &models.CardImage{
				Src:        img.AttrOr("src", ""),
				DataImages: img.AttrOr("data-images", ""),
				Alt:        img.AttrOr("alt", ""),
			}
		}
		cards = append(cards, card)
	})

	return cards, nil
}
