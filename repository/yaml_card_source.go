package repository

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"galeria-cuadros/models"
)

// yamlCard is one entry of a cards YAML file
//
//	- key: cuadro-1
//	  title: Cuadro 1
//	  image: img/cuadro1.jpg
//	  images: [img/cuadro1.jpg, img/cuadro1_detalle.jpg]
type yamlCard struct {
	Key         string   `yaml:"key"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Images      []string `yaml:"images"`
	Alt         string   `yaml:"alt"`
}

// YAMLCardSource reads product cards from a YAML file
// Implements CardSourceInterface
type YAMLCardSource struct {
	path string
}

// NewYAMLCardSource creates a new YAMLCardSource for the file at path
func NewYAMLCardSource(path string) *YAMLCardSource {
	return &YAMLCardSource{path: path}
}

// Ensure YAMLCardSource implements CardSourceInterface
var _ CardSourceInterface = (*YAMLCardSource)(nil)

// ListCards reads the file on every call
func (s *YAMLCardSource) ListCards(ctx context.Context) ([]models.ProductCard, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cards file: %w", err)
	}
	return ParseYAMLCards(data)
}

// ParseYAMLCards decodes a YAML list of cards
func ParseYAMLCards(data []byte) ([]models.ProductCard, error) {
	var entries []yamlCard
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}

	cards := make([]models.ProductCard, 0, len(entries))
	for i, e := range entries {
		key := e.Key
		if key == "" {
			key = fmt.Sprintf("card-%d", i+1)
		}
		card := models.ProductCard{Key: key, Title: e.Title, Description: e.Description}
		if e.Image != "" || len(e.Images) > 0 {
			card.Image = &models.CardImage{
				Src:        e.Image,
				DataImages: strings.Join(e.Images, ","),
				Alt:        e.Alt,
			}
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// IsYAMLPath reports whether path names a YAML file
func IsYAMLPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
