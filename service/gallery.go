package service

import (
	"errors"
	"fmt"
	"sync"

	"galeria-cuadros/models"
	"galeria-cuadros/utils"
)

// ErrNoImage is returned when a card has no usable product image
var ErrNoImage = errors.New("card has no product image")

// wrapIndex maps any integer onto [0, n) with wraparound in both directions
func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

// dotLabel is the accessible label of the dot for position i
func dotLabel(i int) string {
	return fmt.Sprintf("Ir a imagen %d", i+1)
}

// buildDots returns one dot per list entry with only index marked active
func buildDots(n int, index int) []models.Dot {
	dots := make([]models.Dot, n)
	for i := range dots {
		dots[i] = models.Dot{Index: i, Active: i == index, Label: dotLabel(i)}
	}
	return dots
}

// CardGallery is the carousel of one product card: an ordered, duplicate free
// image list and the currently displayed position
type CardGallery struct {
	mu sync.RWMutex

	card      models.ProductCard
	preloader PreloaderInterface

	list  []string
	index int

	// Rendered state, only maintained while the card is attached
	src          string
	dots         []models.Dot
	showControls bool
	attached     bool
}

// NewCardGallery sets up the gallery of a card. The list comes from the image's
// data-images attribute or, without one, from its current source. Every entry
// is preloaded and the first one is displayed.
func NewCardGallery(card models.ProductCard, preloader PreloaderInterface) (*CardGallery, error) {
	if card.Image == nil {
		return nil, ErrNoImage
	}

	fromAttr := utils.SplitImageList(card.Image.DataImages)
	if len(fromAttr) == 0 {
		fromAttr = append(fromAttr, card.Image.ResolvedSrc())
	}
	list := utils.Unique(fromAttr)
	if len(list) == 0 {
		return nil, ErrNoImage
	}

	g := &CardGallery{
		card:      card,
		preloader: preloader,
		list:      list,
		attached:  true,
	}

	g.preload(list)
	g.rebuildDots()
	g.setImage(0)
	return g, nil
}

// Key returns the key of the card owning the gallery
func (g *CardGallery) Key() string {
	return g.card.Key
}

// List returns a copy of the current image list
func (g *CardGallery) List() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.list...)
}

// Index returns the currently displayed position
func (g *CardGallery) Index() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.index
}

// State returns list and index read under the same lock
func (g *CardGallery) State() models.GalleryState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return models.GalleryState{List: append([]string(nil), g.list...), Index: g.index}
}

// SetIndex displays position i, wrapping around both ends of the list
func (g *CardGallery) SetIndex(i int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setImage(i)
}

// Prev displays the previous image, the last one when at the start
func (g *CardGallery) Prev() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setImage(g.index - 1)
}

// Next displays the next image, the first one when at the end
func (g *CardGallery) Next() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setImage(g.index + 1)
}

// Extend appends the items not yet in the list and returns how many were added.
// Dots are rebuilt from scratch. On a detached gallery only the list grows.
func (g *CardGallery) Extend(items []string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	existing := make(map[string]bool, len(g.list))
	for _, item := range g.list {
		existing[item] = true
	}

	var extras []string
	for _, item := range items {
		if item == "" || existing[item] {
			continue
		}
		existing[item] = true
		extras = append(extras, item)
	}
	if len(extras) == 0 {
		return 0
	}

	g.list = append(g.list, extras...)
	if g.attached {
		g.preload(extras)
		g.rebuildDots()
	}
	return len(extras)
}

// Detach marks the card as removed from the page; the view is no longer maintained
func (g *CardGallery) Detach() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attached = false
}

// Attached reports whether the card is still on the page
func (g *CardGallery) Attached() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.attached
}

// View returns a rendering snapshot of the gallery
func (g *CardGallery) View() models.GalleryView {
	g.mu.RLock()
	defer g.mu.RUnlock()

	alt := ""
	if g.card.Image != nil {
		alt = g.card.Image.Alt
	}
	return models.GalleryView{
		CardKey:      g.card.Key,
		Title:        g.card.Title,
		Alt:          alt,
		Src:          g.src,
		List:         append([]string(nil), g.list...),
		Index:        g.index,
		Dots:         append([]models.Dot(nil), g.dots...),
		ShowControls: g.showControls,
		Attached:     g.attached,
		Zoomable:     true,
	}
}

// setImage requires g.mu held
func (g *CardGallery) setImage(i int) {
	g.index = wrapIndex(i, len(g.list))
	if !g.attached {
		return
	}
	g.src = g.list[g.index]
	g.updateDots()
}

// rebuildDots discards the dot set and builds one dot per entry. Requires g.mu held.
func (g *CardGallery) rebuildDots() {
	g.dots = buildDots(len(g.list), g.index)
	g.showControls = len(g.list) > 1
}

// updateDots requires g.mu held
func (g *CardGallery) updateDots() {
	for i := range g.dots {
		g.dots[i].Active = i == g.index
	}
}

func (g *CardGallery) preload(refs []string) {
	if g.preloader == nil {
		return
	}
	for _, ref := range refs {
		g.preloader.Preload(ref)
	}
}
