package service

import (
	"context"
	"fmt"
	"log"

	"galeria-cuadros/repository"
	"galeria-cuadros/utils"
)

// DownloadServiceInterface defines the contract for warming the image cache
type DownloadServiceInterface interface {
	DownloadAllImages(ctx context.Context) (total int, downloaded int, errs []string, err error)
}

// DownloadService fetches and optimizes every card image, discovered variants
// included, into the image cache ahead of the first page load
// Implements DownloadServiceInterface
type DownloadService struct {
	source    repository.CardSourceInterface
	discovery DiscoveryServiceInterface
	images    ImageSourceInterface
	sizes     []string
}

// NewDownloadService creates a new DownloadService. discovery may be nil to
// warm only the images listed on the cards.
func NewDownloadService(source repository.CardSourceInterface, discovery DiscoveryServiceInterface, images ImageSourceInterface) *DownloadService {
	return &DownloadService{
		source:    source,
		discovery: discovery,
		images:    images,
		sizes:     []string{"thumb", "medium"},
	}
}

// Ensure DownloadService implements DownloadServiceInterface
var _ DownloadServiceInterface = (*DownloadService)(nil)

// cardImages returns the image list a gallery would show for the card after discovery
func (ds *DownloadService) cardImages(ctx context.Context, g *CardGallery) []string {
	list := g.List()
	if ds.discovery != nil {
		list = append(list, ds.discovery.Discover(ctx, list)...)
	}
	return utils.Unique(list)
}

// DownloadAllImages warms every rendition of every card image.
// Returns: images found, images fully cached, list of per-image errors, and error if fatal
func (ds *DownloadService) DownloadAllImages(ctx context.Context) (int, int, []string, error) {
	log.Printf("📥 Starting image download for all cards")

	cards, err := ds.source.ListCards(ctx)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to list cards: %w", err)
	}

	var refs []string
	for _, card := range cards {
		g, err := NewCardGallery(card, nil)
		if err != nil {
			continue
		}
		refs = append(refs, ds.cardImages(ctx, g)...)
	}
	refs = utils.Unique(refs)

	downloaded := 0
	var errs []string
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return len(refs), downloaded, errs, err
		}

		ok := true
		for _, size := range ds.sizes {
			if _, err := ds.images.Get(ctx, ref, size); err != nil {
				errs = append(errs, fmt.Sprintf("%s (%s): %v", ref, size, err))
				ok = false
				break
			}
		}
		if ok {
			downloaded++
		}
	}

	log.Printf("✅ Image download completed: %d/%d images cached, %d error(s)", downloaded, len(refs), len(errs))
	return len(refs), downloaded, errs, nil
}
