package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"galeria-cuadros/models"
	"galeria-cuadros/repository"
)

// ErrPageNotFound is returned for unknown or expired page ids
var ErrPageNotFound = errors.New("page not found")

// Page is one rendering of the catalog: a gallery per card and the lightbox they share
type Page struct {
	ID        string
	CreatedAt time.Time

	Registry *GalleryRegistry
	Lightbox *Lightbox

	cards  []models.ProductCard
	byKey  map[string]models.ProductCard
	cancel context.CancelFunc

	mu       sync.Mutex
	lastSeen time.Time
}

// NewPage sets up a gallery for every card. Cards without a product image are
// left without a gallery; the other cards are unaffected.
func NewPage(ctx context.Context, id string, cards []models.ProductCard, discovery DiscoveryServiceInterface, preloader PreloaderInterface) *Page {
	pageCtx, cancel := context.WithCancel(ctx)
	now := time.Now()

	p := &Page{
		ID:        id,
		CreatedAt: now,
		Registry:  NewGalleryRegistry(pageCtx, discovery, preloader),
		Lightbox:  NewLightbox(),
		cards:     cards,
		byKey:     make(map[string]models.ProductCard, len(cards)),
		cancel:    cancel,
		lastSeen:  now,
	}

	for _, card := range cards {
		if _, dup := p.byKey[card.Key]; dup {
			log.Printf("⚠️  Page %s: duplicate card key %q ignored", id, card.Key)
			continue
		}
		p.byKey[card.Key] = card
		if _, err := p.Registry.Setup(card); err != nil && !errors.Is(err, ErrNoImage) {
			log.Printf("⚠️  Page %s: gallery setup failed for card %s: %v", id, card.Key, err)
		}
	}
	return p
}

// Cards returns the cards of the page in document order
func (p *Page) Cards() []models.ProductCard {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.ProductCard(nil), p.cards...)
}

// OpenCard opens the lightbox on the image list of a card at its current index.
// A card without a gallery opens with just its image source.
func (p *Page) OpenCard(cardKey string) error {
	p.mu.Lock()
	card, ok := p.byKey[cardKey]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotFound, cardKey)
	}

	if g, ok := p.Registry.Get(cardKey); ok {
		state := g.State()
		p.Lightbox.Open(state.List, state.Index)
		return nil
	}

	if card.Image == nil || card.Image.ResolvedSrc() == "" {
		return fmt.Errorf("%w: %s", ErrNoImage, cardKey)
	}
	p.Lightbox.Open([]string{card.Image.ResolvedSrc()}, 0)
	return nil
}

// RemoveCard takes a card off the page
func (p *Page) RemoveCard(cardKey string) error {
	if err := p.Registry.Remove(cardKey); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.byKey, cardKey)
	for i, c := range p.cards {
		if c.Key == cardKey {
			p.cards = append(p.cards[:i:i], p.cards[i+1:]...)
			break
		}
	}
	return nil
}

// Close tears the page down, canceling pending discovery
func (p *Page) Close() {
	p.Registry.Close()
	p.Lightbox.Close()
	p.cancel()
}

func (p *Page) touch(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSeen = now
}

func (p *Page) idleSince() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSeen
}

// PageStore keeps the live pages of the server
type PageStore struct {
	ctx       context.Context
	source    repository.CardSourceInterface
	discovery DiscoveryServiceInterface
	preloader PreloaderInterface
	now       func() time.Time

	mu    sync.RWMutex
	pages map[string]*Page
}

// NewPageStore creates a new PageStore. Pages and their discovery run under ctx,
// independent of the request that created them.
func NewPageStore(ctx context.Context, source repository.CardSourceInterface, discovery DiscoveryServiceInterface, preloader PreloaderInterface) *PageStore {
	return &PageStore{
		ctx:       ctx,
		source:    source,
		discovery: discovery,
		preloader: preloader,
		now:       time.Now,
		pages:     make(map[string]*Page),
	}
}

// Create loads the cards and sets up a new page
func (s *PageStore) Create(ctx context.Context) (*Page, error) {
	cards, err := s.source.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	page := NewPage(s.ctx, uuid.NewString(), cards, s.discovery, s.preloader)
	page.touch(s.now())

	s.mu.Lock()
	s.pages[page.ID] = page
	s.mu.Unlock()

	log.Printf("📄 Page %s ready with %d card(s)", page.ID, len(cards))
	return page, nil
}

// Get returns a live page and marks it as seen
func (s *PageStore) Get(id string) (*Page, error) {
	s.mu.RLock()
	page, ok := s.pages[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	page.touch(s.now())
	return page, nil
}

// Close tears a page down and forgets it
func (s *PageStore) Close(id string) error {
	s.mu.Lock()
	page, ok := s.pages[id]
	delete(s.pages, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	page.Close()
	return nil
}

// Sweep closes pages idle for longer than maxAge and returns how many were closed
func (s *PageStore) Sweep(maxAge time.Duration) int {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	var expired []*Page
	for id, page := range s.pages {
		if page.idleSince().Before(cutoff) {
			expired = append(expired, page)
			delete(s.pages, id)
		}
	}
	s.mu.Unlock()

	for _, page := range expired {
		page.Close()
	}
	if len(expired) > 0 {
		log.Printf("🧹 Swept %d idle page(s)", len(expired))
	}
	return len(expired)
}

// Len returns the number of live pages
func (s *PageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// CloseAll tears every page down
func (s *PageStore) CloseAll() {
	s.mu.Lock()
	pages := s.pages
	s.pages = make(map[string]*Page)
	s.mu.Unlock()

	for _, page := range pages {
		page.Close()
	}
}
