package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"galeria-cuadros/models"
	"galeria-cuadros/templates"
)

// catalogCard is one card as seen by the catalog template
type catalogCard struct {
	Key         string
	Title       string
	Description string
	Image       *models.CardImage
	Gallery     *models.GalleryView // nil when the card has no gallery
}

// catalogData is the data passed to the catalog template
type catalogData struct {
	Title       string
	PageID      string
	Cards       []catalogCard
	Lightbox    models.LightboxView
	Interactive bool
}

// CatalogServiceInterface defines the contract for catalog rendering and export
type CatalogServiceInterface interface {
	RenderPage(p *Page, interactive bool) (string, error)
	GeneratePDF(ctx context.Context) ([]byte, error)
}

// CatalogService renders catalog pages and exports them
// Implements CatalogServiceInterface
type CatalogService struct {
	title   string
	baseURL string // Base URL the server is reachable at (e.g., "http://localhost:8080")
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// NewCatalogService creates a new CatalogService
func NewCatalogService(title string, baseURL string) *CatalogService {
	return &CatalogService{
		title:   title,
		baseURL: baseURL,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// RenderPage renders the catalog HTML of a page: every card with its carousel
// markup and the shared lightbox overlay. interactive adds the client script.
func (s *CatalogService) RenderPage(p *Page, interactive bool) (string, error) {
	data := catalogData{
		Title:       s.title,
		PageID:      p.ID,
		Lightbox:    p.Lightbox.View(),
		Interactive: interactive,
	}

	for _, c := range p.Cards() {
		cc := catalogCard{
			Key:         c.Key,
			Title:       c.Title,
			Description: c.Description,
			Image:       c.Image,
		}
		if g, ok := p.Registry.Get(c.Key); ok {
			view := g.View()
			cc.Gallery = &view
		}
		data.Cards = append(data.Cards, cc)
	}

	var buf bytes.Buffer
	if err := templates.Catalog.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the catalog page to PDF using chromedp
func (s *CatalogService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/catalog?print=1", s.baseURL)
	log.Printf("🖨️  Generating catalog PDF from %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for every card image to settle, loaded or failed
		chromedp.Evaluate(`
			Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
				if (img.complete) return true;
				return new Promise(resolve => {
					const timeout = setTimeout(resolve, 5000);
					img.onload = img.onerror = () => { clearTimeout(timeout); resolve(); };
				});
			}));
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ Catalog PDF generated: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}
