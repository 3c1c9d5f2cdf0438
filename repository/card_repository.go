package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"galeria-cuadros/models"
)

const createProductCardsTable = `
	CREATE TABLE IF NOT EXISTS product_cards (
		key         TEXT PRIMARY KEY,
		title       TEXT NOT NULL DEFAULT '',
		description TEXT,
		image_src   TEXT,
		data_images TEXT,
		image_alt   TEXT,
		position    INTEGER NOT NULL DEFAULT 0,
		is_active   BOOLEAN NOT NULL DEFAULT true
	)
`

// CardRepository handles database operations for product cards
// Implements CardStoreInterface
type CardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Ensure CardRepository implements CardStoreInterface
var _ CardStoreInterface = (*CardRepository)(nil)

// EnsureSchema creates the product_cards table when missing
func (r *CardRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProductCardsTable); err != nil {
		return fmt.Errorf("failed to create product_cards table: %w", err)
	}
	return nil
}

// ListCards retrieves all active cards in display order.
// A card with neither image_src nor data_images has no image element.
func (r *CardRepository) ListCards(ctx context.Context) ([]models.ProductCard, error) {
	query := `
		SELECT
			key,
			title,
			COALESCE(description, '') as description,
			COALESCE(image_src, '') as image_src,
			COALESCE(data_images, '') as data_images,
			COALESCE(image_alt, '') as image_alt
		FROM product_cards
		WHERE is_active = true
		ORDER BY position ASC, key ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying product cards: %v", err)
		return nil, fmt.Errorf("failed to query product cards: %w", err)
	}
	defer rows.Close()

	var cards []models.ProductCard
	for rows.Next() {
		var card models.ProductCard
		var src, dataImages, alt string
		if err := rows.Scan(&card.Key, &card.Title, &card.Description, &src, &dataImages, &alt); err != nil {
			log.Printf("❌ Error scanning product card: %v", err)
			continue
		}
		if src != "" || dataImages != "" {
			card.Image = &models.CardImage{Src: src, DataImages: dataImages, Alt: alt}
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product cards: %w", err)
	}

	log.Printf("✓ Loaded %d product card(s) from database", len(cards))
	return cards, nil
}

// Upsert inserts or replaces a card
func (r *CardRepository) Upsert(ctx context.Context, card models.ProductCard, position int) error {
	var src, dataImages, alt string
	if card.Image != nil {
		src, dataImages, alt = card.Image.Src, card.Image.DataImages, card.Image.Alt
	}

	query := `
		INSERT INTO product_cards (key, title, description, image_src, data_images, image_alt, position, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		ON CONFLICT (key) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			image_src = EXCLUDED.image_src,
			data_images = EXCLUDED.data_images,
			image_alt = EXCLUDED.image_alt,
			position = EXCLUDED.position,
			is_active = true
	`
	if _, err := r.db.ExecContext(ctx, query, card.Key, card.Title, card.Description, src, dataImages, alt, position); err != nil {
		return fmt.Errorf("failed to upsert card %s: %w", card.Key, err)
	}
	return nil
}
