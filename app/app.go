package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"galeria-cuadros/app/controller"
	"galeria-cuadros/app/router"
	"galeria-cuadros/config"
	"galeria-cuadros/db"
	"galeria-cuadros/repository"
	"galeria-cuadros/service"
)

// probeTimeout bounds a single HTTP existence probe or image fetch
const probeTimeout = 15 * time.Second

// App holds the wired services of a running server
type App struct {
	Handler   http.Handler
	Pages     *service.PageStore
	Images    *service.ImageCache
	Discovery *service.DiscoveryService
	Source    repository.CardSourceInterface

	cfg    config.Config
	cancel context.CancelFunc
}

// NewCardSource opens the configured card source
func NewCardSource(ctx context.Context, cfg config.Config) (repository.CardSourceInterface, error) {
	switch cfg.CardSource {
	case config.SourceHTML:
		return repository.NewHTMLCardSource(cfg.CardsPath), nil
	case config.SourceYAML:
		return repository.NewYAMLCardSource(cfg.CardsPath), nil
	case config.SourcePostgres:
		store, err := NewCardStore(ctx)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown card source %q", cfg.CardSource)
}

// NewCardStore connects to PostgreSQL and makes sure the card table exists
func NewCardStore(ctx context.Context) (*repository.CardRepository, error) {
	if db.DB == nil {
		if err := db.InitDB(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	repo := repository.NewCardRepository(db.DB)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// NewImageBackend builds the existence prober and image fetcher of the configured backend
func NewImageBackend(ctx context.Context, cfg config.Config) (service.ProberInterface, service.ImageFetcherInterface, error) {
	switch cfg.ProbeBackend {
	case config.ProbeHTTP:
		baseURL := cfg.ImageBaseURL
		if baseURL == "" {
			baseURL = cfg.BaseURL
		}
		client := &http.Client{Timeout: probeTimeout}
		prober, err := service.NewHTTPProber(client, baseURL)
		if err != nil {
			return nil, nil, err
		}
		fetcher, err := service.NewHTTPFetcher(client, baseURL)
		if err != nil {
			return nil, nil, err
		}
		return prober, fetcher, nil

	case config.ProbeFile:
		return service.NewFileProber(cfg.StaticDir), service.NewFileFetcher(cfg.StaticDir), nil

	case config.ProbeDrive:
		driveService, err := service.NewDriveService(ctx, cfg.CredentialsPath)
		if err != nil {
			return nil, nil, err
		}
		return service.NewDriveProber(driveService, cfg.DriveFolderID), service.NewDriveFetcher(driveService, cfg.DriveFolderID), nil
	}
	return nil, nil, fmt.Errorf("unknown probe backend %q", cfg.ProbeBackend)
}

// Initialize wires the card source, image backend, page store and HTTP routes
func Initialize(ctx context.Context, cfg config.Config) (*App, error) {
	source, err := NewCardSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	prober, fetcher, err := NewImageBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	images := service.NewImageCache(cfg.CacheDir, fetcher)
	if err := images.EnsureCacheDir(); err != nil {
		return nil, err
	}
	discovery := service.NewDiscoveryService(prober)

	appCtx, cancel := context.WithCancel(ctx)
	pages := service.NewPageStore(appCtx, source, discovery, images)
	catalogService := service.NewCatalogService(cfg.Title, cfg.BaseURL)

	// Create controllers
	controllers := &router.Controllers{
		Catalog:  controller.NewCatalogController(pages, catalogService),
		Gallery:  controller.NewGalleryController(pages),
		Lightbox: controller.NewLightboxController(pages),
		Image:    controller.NewImageController(images),
		Discover: controller.NewDiscoverController(discovery),
	}

	staticDir := ""
	if cfg.ProbeBackend == config.ProbeFile {
		staticDir = cfg.StaticDir
	}

	a := &App{
		Handler:   router.NewRouter(controllers, staticDir),
		Pages:     pages,
		Images:    images,
		Discovery: discovery,
		Source:    source,
		cfg:       cfg,
		cancel:    cancel,
	}
	go a.sweep(appCtx)

	log.Printf("✓ Application initialized (cards: %s, probe: %s)", cfg.CardSource, cfg.ProbeBackend)
	return a, nil
}

// sweep closes idle pages until ctx is done
func (a *App) sweep(ctx context.Context) {
	interval := a.cfg.PageTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Pages.Sweep(a.cfg.PageTTL)
		}
	}
}

// Close tears every page down and waits for pending preloads
func (a *App) Close() {
	a.cancel()
	a.Pages.CloseAll()
	a.Images.Wait()
	if err := db.CloseDB(); err != nil {
		log.Printf("⚠️  Failed to close database: %v", err)
	}
}
