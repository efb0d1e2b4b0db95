package renderfpdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-typeset/render"
	"github.com/jung-kurt/gofpdf"
)

const (
	// DefaultFontSize is the body font size in points.
	DefaultFontSize = 11.0
	// DefaultMargin is the page margin in millimetres.
	DefaultMargin = 20.0
	// DefaultProducer is written to the PDF producer field.
	DefaultProducer = "go-typeset"

	bodyFamily  = "body"
	ptToMM      = 25.4 / 72.0
	lineSpacing = 1.4
	indentStep  = 6.0
	markerWidth = 6.0
)

var pageSizesMM = map[string]gofpdf.SizeType{
	render.PageA3:     {Wd: 297, Ht: 420},
	render.PageA4:     {Wd: 210, Ht: 297},
	render.PageA5:     {Wd: 148, Ht: 210},
	render.PageLetter: {Wd: 215.9, Ht: 279.4},
	render.PageLegal:  {Wd: 215.9, Ht: 355.6},
}

var headingScale = map[int]float64{1: 2.0, 2: 1.6, 3: 1.35, 4: 1.2, 5: 1.1, 6: 1.0}

// Exporter writes documents to PDF using gofpdf.
type Exporter struct {
	FontSize    float64
	Margin      float64
	PageNumbers bool
	Producer    string
	Now         func() time.Time
}

// New creates an exporter with default layout settings and page numbers.
func New() *Exporter {
	return &Exporter{
		FontSize:    DefaultFontSize,
		Margin:      DefaultMargin,
		PageNumbers: true,
		Producer:    DefaultProducer,
		Now:         time.Now,
	}
}

// Export lays out the document and returns the PDF bytes.
func (e *Exporter) Export(ctx context.Context, doc *render.Document, opts render.ExportOptions) (out []byte, err error) {
	if e == nil {
		return nil, render.NewError(render.KindInternal, "fpdf exporter is nil", nil)
	}
	if doc == nil {
		return nil, render.NewError(render.KindExport, "document is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	font := doc.Font()
	if len(font) == 0 {
		return nil, render.NewError(render.KindExport, "document has no font", nil)
	}
	if !IsFont(font) {
		return nil, render.NewError(render.KindExport, "font is not a TrueType font", nil)
	}

	pageSize := firstNonEmpty(opts.PageSize, doc.PageSize, render.PageA4)
	size, ok := pageSizesMM[strings.ToUpper(pageSize)]
	if !ok {
		return nil, render.NewError(render.KindExport, fmt.Sprintf("unsupported page size: %s", pageSize), nil)
	}

	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, render.NewError(render.KindExport, fmt.Sprintf("pdf writer panic: %v", rec), nil)
		}
	}()

	w := e.newWriter(size, font, firstNonEmpty(opts.Title, doc.Title))
	if err := w.pdf.Error(); err != nil {
		return nil, render.NewError(render.KindExport, "font could not be embedded", err)
	}

	pages := doc.Pages
	if len(pages) == 0 {
		pages = []render.Page{{}}
	}
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.pdf.AddPage()
		for _, block := range page.Blocks {
			w.block(block)
		}
	}

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, render.NewError(render.KindExport, "pdf output failed", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) newWriter(size gofpdf.SizeType, font []byte, title string) *writer {
	fontSize := e.FontSize
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	margin := e.Margin
	if margin <= 0 {
		margin = DefaultMargin
	}
	now := e.Now
	if now == nil {
		now = time.Now
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           size,
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreationDate(now())
	pdf.SetProducer(firstNonEmpty(e.Producer, DefaultProducer), true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	// gofpdf reads past len when cap allows, so hand it a clipped slice.
	font = font[:len(font):len(font)]
	for _, style := range []string{"", "B", "I", "BI"} {
		pdf.AddUTF8FontFromBytes(bodyFamily, style, font)
	}
	pdf.SetFont(bodyFamily, "", fontSize)

	w := &writer{
		pdf:      pdf,
		fontSize: fontSize,
		margin:   margin,
		width:    size.Wd,
	}
	if e.PageNumbers {
		pdf.SetFooterFunc(w.footer)
	}
	return w
}

type writer struct {
	pdf      *gofpdf.Fpdf
	fontSize float64
	margin   float64
	width    float64
}

func (w *writer) lineHeight(size float64) float64 {
	return size * ptToMM * lineSpacing
}

func (w *writer) footer() {
	w.pdf.SetY(-w.margin / 2)
	w.pdf.SetFont(bodyFamily, "", w.fontSize*0.8)
	w.pdf.SetTextColor(120, 120, 120)
	w.pdf.CellFormat(0, w.lineHeight(w.fontSize*0.8), fmt.Sprintf("%d", w.pdf.PageNo()), "", 0, "C", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *writer) block(block render.Block) {
	left := w.margin
	if block.Quote {
		left += indentStep
		w.pdf.SetTextColor(90, 90, 90)
		defer w.pdf.SetTextColor(0, 0, 0)
	}

	switch block.Kind {
	case render.BlockHeading:
		w.heading(block, left)
	case render.BlockParagraph:
		w.withLeft(left, func() {
			lh := w.lineHeight(w.fontSize)
			w.runs(block.Runs, w.fontSize)
			w.pdf.Ln(lh * 1.5)
		})
	case render.BlockListItem:
		w.listItem(block, left)
	case render.BlockCode:
		w.code(block, left+float64(block.Level)*indentStep)
	case render.BlockRule:
		lh := w.lineHeight(w.fontSize)
		y := w.pdf.GetY() + lh/2
		w.pdf.SetDrawColor(160, 160, 160)
		w.pdf.Line(w.margin, y, w.width-w.margin, y)
		w.pdf.SetY(y + lh/2)
	}
}

func (w *writer) heading(block render.Block, left float64) {
	scale, ok := headingScale[block.Level]
	if !ok {
		scale = 1.0
	}
	size := w.fontSize * scale
	lh := w.lineHeight(size)
	w.withLeft(left, func() {
		w.pdf.SetFont(bodyFamily, "B", size)
		w.pdf.MultiCell(0, lh, block.PlainText(), "", "L", false)
		w.pdf.Ln(lh * 0.3)
	})
	w.pdf.SetFont(bodyFamily, "", w.fontSize)
}

func (w *writer) listItem(block render.Block, left float64) {
	lh := w.lineHeight(w.fontSize)
	indent := left + float64(block.Level)*indentStep
	w.withLeft(indent, func() {
		if block.Marker != "" {
			w.pdf.SetFont(bodyFamily, "", w.fontSize)
			w.pdf.SetX(indent - markerWidth)
			w.pdf.CellFormat(markerWidth, lh, block.Marker, "", 0, "L", false, 0, "")
		} else {
			w.pdf.SetX(indent)
		}
		w.runs(block.Runs, w.fontSize)
		w.pdf.Ln(lh * 1.2)
	})
}

func (w *writer) code(block render.Block, left float64) {
	size := w.fontSize * 0.9
	lh := w.lineHeight(size)
	w.withLeft(left, func() {
		w.pdf.SetFont(bodyFamily, "", size)
		w.pdf.SetFillColor(242, 242, 242)
		w.pdf.MultiCell(0, lh, block.Text, "", "L", true)
		w.pdf.Ln(lh * 0.5)
	})
	w.pdf.SetFont(bodyFamily, "", w.fontSize)
}

func (w *writer) runs(runs []render.Run, size float64) {
	lh := w.lineHeight(size)
	for _, run := range runs {
		style := ""
		if run.Bold {
			style += "B"
		}
		if run.Italic {
			style += "I"
		}
		runSize := size
		if run.Code {
			runSize = size * 0.9
		}
		w.pdf.SetFont(bodyFamily, style, runSize)
		if run.Link != "" {
			w.pdf.SetTextColor(20, 60, 200)
			w.pdf.WriteLinkString(lh, run.Text, run.Link)
			w.pdf.SetTextColor(0, 0, 0)
			continue
		}
		w.pdf.Write(lh, run.Text)
	}
	w.pdf.SetFont(bodyFamily, "", size)
}

// withLeft runs fn with the left margin moved to left, restoring it after.
func (w *writer) withLeft(left float64, fn func()) {
	w.pdf.SetLeftMargin(left)
	w.pdf.SetX(left)
	fn()
	w.pdf.SetLeftMargin(w.margin)
	w.pdf.SetX(w.margin)
}

// IsFont reports whether data starts with a TrueType signature. CFF-based
// OpenType fonts and collections cannot be embedded by gofpdf.
func IsFont(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	switch string(data[:4]) {
	case "\x00\x01\x00\x00", "true":
		return true
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
