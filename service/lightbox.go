package service

import (
	"sync"

	"galeria-cuadros/models"
)

// Keys handled by the lightbox while it is visible
const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// Click targets inside the lightbox overlay
const (
	TargetOverlay = "overlay"
	TargetImage   = "image"
)

// lightboxSession is an open viewing session: a private copy of a gallery list
type lightboxSession struct {
	list  []string
	index int
}

// Lightbox is the full-screen viewer shared by every card of a page.
// At most one session is open; opening a new one replaces the previous one.
type Lightbox struct {
	mu      sync.Mutex
	session lightboxSession
	open    bool
}

// NewLightbox creates a closed Lightbox
func NewLightbox() *Lightbox {
	return &Lightbox{}
}

// Open shows list starting at index. The list is copied, so later changes to
// the source gallery are not seen by this session. An empty list leaves the
// lightbox unchanged and returns false.
func (lb *Lightbox) Open(list []string, index int) bool {
	if len(list) == 0 {
		return false
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.session = lightboxSession{
		list:  append([]string(nil), list...),
		index: wrapIndex(index, len(list)),
	}
	lb.open = true
	return true
}

// SetIndex moves the open session to position i with wraparound
func (lb *Lightbox) SetIndex(i int) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.setIndex(i)
}

// Prev moves to the previous image of the open session
func (lb *Lightbox) Prev() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.setIndex(lb.session.index - 1)
}

// Next moves to the next image of the open session
func (lb *Lightbox) Next() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.setIndex(lb.session.index + 1)
}

// setIndex requires lb.mu held
func (lb *Lightbox) setIndex(i int) {
	if !lb.open {
		return
	}
	lb.session.index = wrapIndex(i, len(lb.session.list))
}

// Close hides the overlay and discards the session
func (lb *Lightbox) Close() {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.session = lightboxSession{}
	lb.open = false
}

// HandleKey applies a key press. Keys are ignored while the lightbox is closed.
// It reports whether the key was handled.
func (lb *Lightbox) HandleKey(key string) bool {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if !lb.open {
		return false
	}
	switch key {
	case KeyEscape:
		lb.session = lightboxSession{}
		lb.open = false
	case KeyArrowLeft:
		lb.setIndex(lb.session.index - 1)
	case KeyArrowRight:
		lb.setIndex(lb.session.index + 1)
	default:
		return false
	}
	return true
}

// Click handles a click inside the overlay; only the background closes it
func (lb *Lightbox) Click(target string) {
	if target == TargetOverlay {
		lb.Close()
	}
}

// State returns a copy of the open session, ok is false when none is open
func (lb *Lightbox) State() (state models.LightboxState, ok bool) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if !lb.open {
		return models.LightboxState{}, false
	}
	return models.LightboxState{
		List:  append([]string(nil), lb.session.list...),
		Index: lb.session.index,
	}, true
}

// View returns a rendering snapshot of the overlay
func (lb *Lightbox) View() models.LightboxView {
	state, ok := lb.State()
	if !ok {
		return models.LightboxView{Visible: false, List: []string{}, Dots: []models.Dot{}}
	}
	return models.LightboxView{
		Visible: true,
		Src:     state.List[state.Index],
		List:    state.List,
		Index:   state.Index,
		Dots:    buildDots(len(state.List), state.Index),
	}
}
