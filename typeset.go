// Package typeset renders a template plus JSON data into a PDF.
//
// It is the host boundary: InitLogging configures diagnostics once per
// process and RenderPDF runs one stateless render call, returning PDF bytes
// or an error whose message is safe to hand back to a host environment.
// The heavy lifting lives in the render package and its adapters.
package typeset

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	renderfpdf "github.com/goliatone/go-typeset/adapters/fpdf"
	renderpongo2 "github.com/goliatone/go-typeset/adapters/pongo2"
	"github.com/goliatone/go-typeset/render"
	"github.com/sirupsen/logrus"
)

var (
	logOnce sync.Once
	logger  atomic.Pointer[logrus.Logger]
)

// LoggingOptions configures InitLoggingWith.
type LoggingOptions struct {
	Level  logrus.Level
	Output io.Writer
	JSON   bool
}

// InitLogging sets up process-wide diagnostics at info level on stderr.
// Calling it again has no effect; rendering works without it.
func InitLogging() {
	InitLoggingWith(LoggingOptions{Level: logrus.InfoLevel})
}

// InitLoggingWith is InitLogging with explicit settings. Only the first
// call across InitLogging and InitLoggingWith takes effect.
func InitLoggingWith(opts LoggingOptions) {
	logOnce.Do(func() {
		l := logrus.New()
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		l.SetOutput(out)
		if opts.JSON {
			l.SetFormatter(&logrus.JSONFormatter{})
		} else {
			l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
		}
		level := opts.Level
		if level == 0 {
			level = logrus.InfoLevel
		}
		l.SetLevel(level)
		logger.Store(l)
	})
}

// Logger returns the process logger, or a no-op logger before InitLogging.
func Logger() render.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return render.NopLogger{}
}

// NewRenderer builds a renderer with both template syntaxes and the gofpdf
// exporter, logging through the process logger.
func NewRenderer() *render.Renderer {
	return NewRendererWith(renderfpdf.New())
}

// NewRendererWith is NewRenderer with a custom exporter.
func NewRendererWith(exporter render.Exporter) *render.Renderer {
	r := render.NewRenderer(exporter)
	if compiler, ok := r.Compiler.(*render.TemplateCompiler); ok {
		_ = renderpongo2.Register(compiler.Engines, renderpongo2.Engine{})
	}
	r.Logger = Logger()
	return r
}

// RenderPDF renders raw JSON options and data into PDF bytes. Every failure,
// including a panic in a collaborator, comes back as an error.
func RenderPDF(optionsRaw, dataRaw []byte) (pdf []byte, err error) {
	return RenderPDFContext(context.Background(), optionsRaw, dataRaw)
}

// RenderPDFContext is RenderPDF with a caller context.
func RenderPDFContext(ctx context.Context, optionsRaw, dataRaw []byte) (pdf []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = render.NewError(render.KindInternal, fmt.Sprintf("render panic: %v", rec), nil)
			Logger().Errorf("%v", err)
			pdf = nil
		}
	}()
	return NewRenderer().Render(ctx, optionsRaw, dataRaw)
}

// RenderPDFString is the boundary form of RenderPDF: the error is flattened
// to its message, empty on success.
func RenderPDFString(optionsRaw, dataRaw []byte) ([]byte, string) {
	pdf, err := RenderPDF(optionsRaw, dataRaw)
	if err != nil {
		return nil, err.Error()
	}
	return pdf, ""
}
