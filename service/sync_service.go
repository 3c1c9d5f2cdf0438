package service

import (
	"context"
	"fmt"
	"log"

	"galeria-cuadros/repository"
)

// SyncServiceInterface defines the contract for importing cards into the database
type SyncServiceInterface interface {
	// SyncCards copies every card of the source into the store and returns stats:
	// synced = cards written, skipped = duplicate keys, total = cards seen in the source.
	SyncCards(ctx context.Context) (synced int, skipped int, total int, err error)
}

// SyncService imports cards from an HTML or YAML source into PostgreSQL
// Implements SyncServiceInterface
type SyncService struct {
	source repository.CardSourceInterface
	store  repository.CardStoreInterface
}

// NewSyncService creates a new SyncService
func NewSyncService(source repository.CardSourceInterface, store repository.CardStoreInterface) *SyncService {
	return &SyncService{
		source: source,
		store:  store,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncCards upserts the source cards keeping their document order as position.
// A failing card is logged and counted neither as synced nor skipped.
func (s *SyncService) SyncCards(ctx context.Context) (synced int, skipped int, total int, err error) {
	log.Printf("🔄 Starting card synchronization")

	cards, err := s.source.ListCards(ctx)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to list source cards: %w", err)
	}
	total = len(cards)
	log.Printf("📦 Processing %d card(s) from source", total)

	seen := make(map[string]bool, len(cards))
	for i, card := range cards {
		if seen[card.Key] {
			log.Printf("⏭️  Skipping card %s (duplicate key)", card.Key)
			skipped++
			continue
		}
		seen[card.Key] = true

		if err := s.store.Upsert(ctx, card, i); err != nil {
			log.Printf("❌ Error saving card %s: %v", card.Key, err)
			continue
		}
		synced++
	}

	log.Printf("🎉 Synchronization completed: %d synced, %d skipped, %d total", synced, skipped, total)
	return synced, skipped, total, nil
}
