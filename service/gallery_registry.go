package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"galeria-cuadros/models"
)

var (
	// ErrCardNotFound is returned when no gallery is registered for a card key
	ErrCardNotFound = errors.New("card not found")
	// ErrDuplicateCard is returned when a card key is set up twice
	ErrDuplicateCard = errors.New("card already set up")
)

// discoveryTask is the single background discovery pass of one gallery
type discoveryTask struct {
	cancel context.CancelFunc
	done   chan struct{}
	ignore bool // set on teardown, guarded by GalleryRegistry.mu
}

// GalleryRegistry owns the galleries of one page, keyed by card key, and their
// discovery tasks
type GalleryRegistry struct {
	ctx       context.Context
	discovery DiscoveryServiceInterface
	preloader PreloaderInterface

	mu        sync.RWMutex
	order     []string
	galleries map[string]*CardGallery
	tasks     map[string]*discoveryTask
}

// NewGalleryRegistry creates a new GalleryRegistry. Discovery tasks run under ctx.
func NewGalleryRegistry(ctx context.Context, discovery DiscoveryServiceInterface, preloader PreloaderInterface) *GalleryRegistry {
	return &GalleryRegistry{
		ctx:       ctx,
		discovery: discovery,
		preloader: preloader,
		galleries: make(map[string]*CardGallery),
		tasks:     make(map[string]*discoveryTask),
	}
}

// Setup builds the gallery of a card, registers it and starts its discovery pass
func (r *GalleryRegistry) Setup(card models.ProductCard) (*CardGallery, error) {
	g, err := NewCardGallery(card, r.preloader)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.galleries[card.Key]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, card.Key)
	}
	r.galleries[card.Key] = g
	r.order = append(r.order, card.Key)
	r.startDiscovery(g)
	return g, nil
}

// startDiscovery requires r.mu held
func (r *GalleryRegistry) startDiscovery(g *CardGallery) {
	if r.discovery == nil {
		return
	}

	ctx, cancel := context.WithCancel(r.ctx)
	task := &discoveryTask{cancel: cancel, done: make(chan struct{})}
	r.tasks[g.Key()] = task
	initial := g.List()

	go func() {
		defer close(task.done)
		defer cancel()

		found := r.discovery.Discover(ctx, initial)

		r.mu.Lock()
		defer r.mu.Unlock()
		if task.ignore || ctx.Err() != nil {
			return
		}
		if added := g.Extend(found); added > 0 {
			log.Printf("🔍 Card %s: %d variant(s) discovered, %d image(s) total", g.Key(), added, len(g.List()))
		}
	}()
}

// Get returns the gallery of a card
func (r *GalleryRegistry) Get(key string) (*CardGallery, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.galleries[key]
	return g, ok
}

// Galleries returns the registered galleries in setup order
func (r *GalleryRegistry) Galleries() []*CardGallery {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*CardGallery, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.galleries[key])
	}
	return out
}

// Remove tears a card down: the gallery is detached and unregistered, and a
// pending discovery result is ignored when it arrives
func (r *GalleryRegistry) Remove(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.galleries[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotFound, key)
	}
	r.teardown(key, g)

	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// teardown requires r.mu held
func (r *GalleryRegistry) teardown(key string, g *CardGallery) {
	if task, ok := r.tasks[key]; ok {
		task.ignore = true
		task.cancel()
	}
	g.Detach()
	delete(r.galleries, key)
}

// Close tears every card down
func (r *GalleryRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, g := range r.galleries {
		r.teardown(key, g)
	}
	r.order = nil
}

// Wait blocks until the discovery pass of a card has settled or ctx is done
func (r *GalleryRegistry) Wait(ctx context.Context, key string) error {
	r.mu.RLock()
	task, ok := r.tasks[key]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	select {
	case <-task.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitAll blocks until every pending discovery pass has settled or ctx is done
func (r *GalleryRegistry) WaitAll(ctx context.Context) error {
	r.mu.RLock()
	keys := append([]string(nil), r.order...)
	r.mu.RUnlock()

	for _, key := range keys {
		if err := r.Wait(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
