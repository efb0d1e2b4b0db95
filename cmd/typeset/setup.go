package main

import (
	"io"
	"strings"

	"github.com/goliatone/go-typeset"
	renderchromium "github.com/goliatone/go-typeset/adapters/chromium"
	renderfpdf "github.com/goliatone/go-typeset/adapters/fpdf"
	"github.com/goliatone/go-typeset/config"
	"github.com/goliatone/go-typeset/render"
	"github.com/sirupsen/logrus"
)

func setupLogging(cfg config.LoggingConfig) {
	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	typeset.InitLoggingWith(typeset.LoggingOptions{Level: level, JSON: cfg.JSON})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newRenderer builds the renderer for cfg. The closer releases exporter
// resources such as a running browser.
func newRenderer(cfg config.RenderConfig) (*render.Renderer, io.Closer) {
	var (
		exporter render.Exporter
		closer   io.Closer = nopCloser{}
	)
	switch cfg.Exporter {
	case config.ExporterChromium:
		chromium := &renderchromium.Exporter{
			BrowserPath: cfg.Chromium.Path,
			Headless:    cfg.Chromium.Headless,
			Timeout:     cfg.Chromium.Timeout,
			Args:        cfg.Chromium.Args,
			DefaultPDF:  chromiumPDFOptions(cfg.Chromium),
		}
		exporter, closer = chromium, chromium
	default:
		fpdf := renderfpdf.New()
		fpdf.FontSize = cfg.FontSize
		fpdf.PageNumbers = cfg.PageNumbers
		exporter = fpdf
	}

	r := typeset.NewRendererWith(exporter)
	r.MaxTemplateBytes = cfg.MaxTemplateBytes
	r.MaxFontBytes = cfg.MaxFontBytes
	return r, closer
}

func chromiumPDFOptions(cfg config.ChromiumConfig) renderchromium.PDFOptions {
	landscape := cfg.Landscape
	margin := strings.TrimSpace(cfg.Margin)
	return renderchromium.PDFOptions{
		Landscape:    &landscape,
		MarginTop:    margin,
		MarginBottom: margin,
		MarginLeft:   margin,
		MarginRight:  margin,
	}
}
