package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"galeria-cuadros/models"
	"galeria-cuadros/utils"
)

// DiscoveryServiceInterface defines the contract for variant discovery
type DiscoveryServiceInterface interface {
	Discover(ctx context.Context, initialList []string) []string
	Candidates(initialList []string) []models.VariantCandidate
}

// DiscoveryService finds image variants (_1, _2, ...) next to the first image of a list
// Implements DiscoveryServiceInterface
type DiscoveryService struct {
	prober      ProberInterface
	maxVariants int
}

// Ensure DiscoveryService implements DiscoveryServiceInterface
var _ DiscoveryServiceInterface = (*DiscoveryService)(nil)

// NewDiscoveryService creates a new DiscoveryService probing up to utils.MaxVariants candidates
func NewDiscoveryService(prober ProberInterface) *DiscoveryService {
	return &DiscoveryService{
		prober:      prober,
		maxVariants: utils.MaxVariants,
	}
}

// Candidates returns the candidates a discovery pass over initialList would probe.
// The pattern comes from the first element only; later elements never influence it.
func (s *DiscoveryService) Candidates(initialList []string) []models.VariantCandidate {
	if len(initialList) == 0 {
		return nil
	}

	base, ext := utils.ParseBase(initialList[0])
	existing := make(map[string]bool, len(initialList))
	for _, item := range initialList {
		existing[item] = true
	}

	var candidates []models.VariantCandidate
	for i, path := range utils.GenerateCandidates(base, ext, s.maxVariants) {
		if existing[path] {
			continue
		}
		candidates = append(candidates, models.VariantCandidate{
			Path:      path,
			Base:      base,
			Extension: ext,
			Ordinal:   i + 1,
		})
	}
	return candidates
}

// Discover probes every candidate concurrently and returns the ones that exist,
// in ascending ordinal order. Only the new items are returned, not the merged list.
func (s *DiscoveryService) Discover(ctx context.Context, initialList []string) []string {
	candidates := s.Candidates(initialList)
	if len(candidates) == 0 {
		return []string{}
	}

	results := make([]bool, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range candidates {
		g.Go(func() error {
			results[i] = s.prober.Probe(gctx, c.Path)
			return nil
		})
	}
	// Probes never fail, Wait only fans in
	_ = g.Wait()

	found := []string{}
	for i, c := range candidates {
		if results[i] {
			found = append(found, c.Path)
		}
	}
	return found
}
