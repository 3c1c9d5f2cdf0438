package repository

import (
	"context"

	"galeria-cuadros/models"
)

// CardSourceInterface defines the contract for loading the product cards of the catalog page
type CardSourceInterface interface {
	ListCards(ctx context.Context) ([]models.ProductCard, error)
}

// CardStoreInterface defines the contract for the persistent card table
type CardStoreInterface interface {
	CardSourceInterface
	Upsert(ctx context.Context, card models.ProductCard, position int) error
}
