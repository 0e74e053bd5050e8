// Package export renders finished resumes to downloadable files using a
// headless Chrome instance.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/yassine/cvbuilder/internal/resume"
	"github.com/yassine/cvbuilder/internal/templates"
)

// renderTimeout bounds a single Chrome print job.
const renderTimeout = 60 * time.Second

// PDFExporter renders template HTML to A4 PDF bytes via headless Chrome.
type PDFExporter struct {
	registry *templates.Registry
}

func NewPDFExporter(registry *templates.Registry) *PDFExporter {
	return &PDFExporter{registry: registry}
}

// Export renders a document with the given template and returns PDF bytes.
func (e *PDFExporter) Export(ctx context.Context, doc resume.Document, templateID string) ([]byte, error) {
	d, err := e.registry.ByID(templateID)
	if err != nil {
		return nil, err
	}

	html, err := d.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", templateID, err)
	}

	return htmlToPDF(ctx, html)
}

// htmlToPDF prints an HTML page to A4 PDF bytes. CHROME_PATH overrides the
// browser binary for containers that ship their own Chromium.
func htmlToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, renderTimeout)
	defer cancelRun()

	// Chrome needs a file URL; data URLs break @page CSS in some versions.
	tmpDir, err := os.MkdirTemp("", "cvexport-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}
	return pdfBuf, nil
}
