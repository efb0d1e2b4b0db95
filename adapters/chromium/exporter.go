package renderchromium

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/goliatone/go-typeset/render"
)

const defaultPDFScale = 1.0

var pdfLengthPattern = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]*)\s*$`)

var pdfPageSizesInches = map[string]struct {
	width  float64
	height float64
}{
	render.PageA3:     {width: 11.69, height: 16.54},
	render.PageA4:     {width: 8.27, height: 11.69},
	render.PageA5:     {width: 5.83, height: 8.27},
	render.PageLetter: {width: 8.5, height: 11},
	render.PageLegal:  {width: 8.5, height: 14},
}

// PDFOptions configures Chromium print settings. Lengths accept in, cm, mm,
// pt and px units; a bare number is inches.
type PDFOptions struct {
	PageSize        string
	Landscape       *bool
	PrintBackground *bool
	Scale           float64
	MarginTop       string
	MarginBottom    string
	MarginLeft      string
	MarginRight     string
}

// Exporter prints documents to PDF using a shared headless Chromium instance.
type Exporter struct {
	BrowserPath string
	Headless    bool
	Timeout     time.Duration
	Args        []string

	// AllowExternalAssets lets the page fetch http(s) resources. Blocked by default.
	AllowExternalAssets bool

	DefaultPDF PDFOptions

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Export renders the document to HTML and prints it.
func (e *Exporter) Export(ctx context.Context, doc *render.Document, opts render.ExportOptions) ([]byte, error) {
	if e == nil {
		return nil, render.NewError(render.KindInternal, "chromium exporter is nil", nil)
	}
	if doc == nil {
		return nil, render.NewError(render.KindExport, "document is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	htmlInput, err := BuildHTML(doc)
	if err != nil {
		return nil, render.NewError(render.KindExport, "document html render failed", err)
	}

	params, err := e.printParams(firstNonEmpty(opts.PageSize, doc.PageSize))
	if err != nil {
		return nil, err
	}

	if err := e.ensureBrowser(); err != nil {
		return nil, render.NewError(render.KindExport, "chromium exporter init failed", err)
	}

	tabCtx, cancel := chromedp.NewContext(e.browserCtx)
	defer cancel()

	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-execCtx.Done():
		}
	}()
	if e.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, e.Timeout)
		defer cancelTimeout()
	}

	var pdf []byte
	actions := []chromedp.Action{}
	if !e.AllowExternalAssets {
		actions = append(actions,
			network.Enable(),
			network.SetBlockedURLs([]string{"http://*", "https://*"}),
		)
	}

	actions = append(actions,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(htmlInput)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = params.Do(ctx)
			return err
		}),
	)

	if err := chromedp.Run(execCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, render.NewError(render.KindExport, "chromium pdf render failed", err)
	}
	return pdf, nil
}

// Close releases Chromium resources if they have been initialized.
func (e *Exporter) Close() error {
	if e == nil {
		return nil
	}
	if e.browserCancel != nil {
		e.browserCancel()
	}
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

func (e *Exporter) ensureBrowser() error {
	e.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if e.BrowserPath != "" {
			options = append(options, chromedp.ExecPath(e.BrowserPath))
		}
		options = append(options, chromedp.Flag("headless", e.Headless))
		options = append(options, allocatorOptionsFromArgs(e.Args)...)

		e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		e.browserCtx, e.browserCancel = chromedp.NewContext(e.allocCtx)
	})
	if e.allocCtx == nil || e.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

func (e *Exporter) defaultPDFOptions() PDFOptions {
	defaults := e.DefaultPDF
	if defaults.Scale == 0 {
		defaults.Scale = defaultPDFScale
	}
	if defaults.PrintBackground == nil {
		defaults.PrintBackground = boolPtr(true)
	}
	return defaults
}

// printParams applies a per-request page size over DefaultPDF.
func (e *Exporter) printParams(pageSize string) (*page.PrintToPDFParams, error) {
	return buildPrintToPDFParams(mergePDFOptions(e.defaultPDFOptions(), PDFOptions{PageSize: pageSize}))
}

func mergePDFOptions(base, override PDFOptions) PDFOptions {
	merged := base
	if override.PageSize != "" {
		merged.PageSize = override.PageSize
	}
	if override.Landscape != nil {
		merged.Landscape = override.Landscape
	}
	if override.PrintBackground != nil {
		merged.PrintBackground = override.PrintBackground
	}
	if override.Scale != 0 {
		merged.Scale = override.Scale
	}
	if override.MarginTop != "" {
		merged.MarginTop = override.MarginTop
	}
	if override.MarginBottom != "" {
		merged.MarginBottom = override.MarginBottom
	}
	if override.MarginLeft != "" {
		merged.MarginLeft = override.MarginLeft
	}
	if override.MarginRight != "" {
		merged.MarginRight = override.MarginRight
	}
	return merged
}

func buildPrintToPDFParams(opts PDFOptions) (*page.PrintToPDFParams, error) {
	params := page.PrintToPDF()

	scale := opts.Scale
	if scale == 0 {
		scale = defaultPDFScale
	}
	if scale < 0.1 || scale > 2.0 {
		return nil, render.NewError(render.KindExport, "pdf scale must be between 0.1 and 2.0", nil)
	}
	params = params.WithScale(scale)

	if opts.Landscape != nil {
		params = params.WithLandscape(*opts.Landscape)
	}
	if opts.PrintBackground != nil {
		params = params.WithPrintBackground(*opts.PrintBackground)
	}

	pageSize := opts.PageSize
	if pageSize == "" {
		pageSize = render.PageA4
	}
	size, ok := pdfPageSizesInches[strings.ToUpper(pageSize)]
	if !ok {
		return nil, render.NewError(render.KindExport, fmt.Sprintf("unsupported page size: %s", pageSize), nil)
	}
	params = params.WithPaperWidth(size.width).WithPaperHeight(size.height)

	if opts.MarginTop != "" {
		value, err := parseLengthInches(opts.MarginTop)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginTop(value)
	}
	if opts.MarginBottom != "" {
		value, err := parseLengthInches(opts.MarginBottom)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginBottom(value)
	}
	if opts.MarginLeft != "" {
		value, err := parseLengthInches(opts.MarginLeft)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginLeft(value)
	}
	if opts.MarginRight != "" {
		value, err := parseLengthInches(opts.MarginRight)
		if err != nil {
			return nil, err
		}
		params = params.WithMarginRight(value)
	}

	return params, nil
}

func parseLengthInches(value string) (float64, error) {
	matches := pdfLengthPattern.FindStringSubmatch(value)
	if len(matches) != 3 {
		return 0, render.NewError(render.KindExport, fmt.Sprintf("invalid pdf length: %s", value), nil)
	}

	raw := matches[1]
	unit := strings.ToLower(matches[2])
	if unit == "" {
		unit = "in"
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, render.NewError(render.KindExport, fmt.Sprintf("invalid pdf length: %s", value), err)
	}

	switch unit {
	case "in":
		return amount, nil
	case "cm":
		return amount / 2.54, nil
	case "mm":
		return amount / 25.4, nil
	case "pt":
		return amount / 72.0, nil
	case "px":
		return amount / 96.0, nil
	default:
		return 0, render.NewError(render.KindExport, fmt.Sprintf("unsupported pdf length unit: %s", unit), nil)
	}
}

func allocatorOptionsFromArgs(args []string) []chromedp.ExecAllocatorOption {
	options := make([]chromedp.ExecAllocatorOption, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		arg = strings.TrimPrefix(arg, "--")
		if arg == "" {
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			options = append(options, chromedp.Flag(name, value))
			continue
		}
		options = append(options, chromedp.Flag(arg, true))
	}
	return options
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func boolPtr(value bool) *bool {
	return &value
}
