package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ExportOptions configures PDF export.
type ExportOptions struct {
	PageSize string
	Title    string
}

// Exporter serialises a compiled document into PDF bytes.
type Exporter interface {
	Export(ctx context.Context, doc *Document, opts ExportOptions) ([]byte, error)
}

// ExporterFunc adapts a function to an Exporter.
type ExporterFunc func(ctx context.Context, doc *Document, opts ExportOptions) ([]byte, error)

func (f ExporterFunc) Export(ctx context.Context, doc *Document, opts ExportOptions) ([]byte, error) {
	if f == nil {
		return nil, errors.New("exporter func is nil")
	}
	return f(ctx, doc, opts)
}

// Renderer orchestrates option decoding, value conversion, compilation and
// export for a single render call. A Renderer holds no per-call state and
// may be shared.
type Renderer struct {
	Compiler         Compiler
	Exporter         Exporter
	Logger           Logger
	MaxTemplateBytes int64
	MaxFontBytes     int64
	MaxOutputBytes   int64
	IDGenerator      func() string
}

// NewRenderer creates a renderer using the template compiler and exporter.
func NewRenderer(exporter Exporter) *Renderer {
	return &Renderer{
		Compiler:    NewTemplateCompiler(),
		Exporter:    exporter,
		Logger:      NopLogger{},
		IDGenerator: uuid.NewString,
	}
}

// Render decodes raw JSON options and data and renders a PDF.
func (r *Renderer) Render(ctx context.Context, optionsRaw, dataRaw []byte) ([]byte, error) {
	logger := r.logger()

	opts, err := DecodeOptions(optionsRaw)
	if err != nil {
		return nil, r.fail(logger, "", err)
	}

	data, err := DecodeData(dataRaw)
	if err != nil {
		return nil, r.fail(logger, "", err)
	}

	return r.RenderOptions(ctx, opts, data)
}

// RenderOptions renders decoded options against a generic JSON value.
func (r *Renderer) RenderOptions(ctx context.Context, opts Options, data any) (pdf []byte, err error) {
	if r == nil {
		return nil, NewError(KindInternal, "renderer is nil", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := r.logger()
	id := r.renderID()
	if r.Compiler == nil {
		return nil, r.fail(logger, id, NewError(KindInternal, "renderer requires compiler", nil))
	}
	if r.Exporter == nil {
		return nil, r.fail(logger, id, NewError(KindInternal, "renderer requires exporter", nil))
	}

	opts = opts.withDefaults()
	if err := r.checkInputs(opts); err != nil {
		return nil, r.fail(logger, id, err)
	}

	input := Converter{Logger: logger}.Convert(data)
	dict, ok := input.AsDict()
	if !ok {
		return nil, r.fail(logger, id, NewError(KindInputShape, fmt.Sprintf("expected dictionary input, found %s", input.Kind()), nil))
	}

	req := CompileRequest{
		Template: opts.Template,
		Syntax:   opts.Syntax,
		Fonts:    [][]byte{opts.Font},
		Input:    dict,
		PageSize: opts.PageSize,
		Title:    opts.Title,
	}
	logger.Debugf("render %s: template built", id)

	doc, err := r.compile(ctx, req)
	if err != nil {
		return nil, r.fail(logger, id, err)
	}
	logger.Debugf("render %s: template compiled", id)

	if err := ctx.Err(); err != nil {
		return nil, r.fail(logger, id, NewError(KindCanceled, "render canceled", err))
	}

	pdf, err = r.export(ctx, doc, ExportOptions{PageSize: opts.PageSize, Title: opts.Title})
	if err != nil {
		return nil, r.fail(logger, id, err)
	}
	if limit := limitOrDefault(r.MaxOutputBytes, DefaultMaxOutputBytes); int64(len(pdf)) > limit {
		return nil, r.fail(logger, id, NewError(KindExport, fmt.Sprintf("pdf exceeds %d bytes", limit), nil))
	}
	logger.Debugf("render %s: pdf compiled (%d bytes)", id, len(pdf))

	return pdf, nil
}

func (r *Renderer) checkInputs(opts Options) error {
	if limit := limitOrDefault(r.MaxTemplateBytes, DefaultMaxTemplateBytes); int64(len(opts.Template)) > limit {
		return NewError(KindDeserialization, fmt.Sprintf("template exceeds %d bytes", limit), nil)
	}
	if limit := limitOrDefault(r.MaxFontBytes, DefaultMaxFontBytes); int64(len(opts.Font)) > limit {
		return NewError(KindDeserialization, fmt.Sprintf("font exceeds %d bytes", limit), nil)
	}
	return nil
}

func (r *Renderer) compile(ctx context.Context, req CompileRequest) (doc *Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, NewError(KindCompilation, fmt.Sprintf("compiler panic: %v", rec), nil)
		}
	}()

	doc, err = r.Compiler.Compile(ctx, req)
	if err != nil {
		return nil, stageError(KindCompilation, err)
	}
	if doc == nil {
		return nil, NewError(KindCompilation, "compiler returned no document", nil)
	}
	return doc, nil
}

func (r *Renderer) export(ctx context.Context, doc *Document, opts ExportOptions) (pdf []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pdf, err = nil, NewError(KindExport, fmt.Sprintf("exporter panic: %v", rec), nil)
		}
	}()

	pdf, err = r.Exporter.Export(ctx, doc, opts)
	if err != nil {
		return nil, stageError(KindExport, err)
	}
	return pdf, nil
}

// stageError keeps kinded errors and cancellations, and tags anything else
// with the stage kind.
func stageError(kind ErrorKind, err error) error {
	var renderErr *Error
	if errors.As(err, &renderErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewError(KindCanceled, "render canceled", err)
	}
	return NewError(kind, "", err)
}

func (r *Renderer) fail(logger Logger, id string, err error) error {
	if id == "" {
		logger.Errorf("render failed: %v", err)
	} else {
		logger.Errorf("render %s failed: %v", id, err)
	}
	return err
}

func (r *Renderer) logger() Logger {
	if r == nil {
		return NopLogger{}
	}
	return loggerOrNop(r.Logger)
}

func (r *Renderer) renderID() string {
	if r.IDGenerator == nil {
		return uuid.NewString()
	}
	return r.IDGenerator()
}
