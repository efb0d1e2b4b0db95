package render

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestRenderer() (*Renderer, *countingCompiler, *stubExporter) {
	compiler := &countingCompiler{inner: NewTemplateCompiler()}
	exporter := &stubExporter{}
	r := NewRenderer(exporter)
	r.Compiler = compiler
	return r, compiler, exporter
}

func TestRendererRendersPDF(t *testing.T) {
	r, compiler, exporter := newTestRenderer()
	logger := &recordingLogger{}
	r.Logger = logger
	r.IDGenerator = func() string { return "req-1" }

	pdf, err := r.Render(context.Background(), optionsJSON("# Hello {{.name}}"), []byte(`{"name": "World"}`))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF-") {
		t.Fatalf("expected pdf output, got %q", pdf)
	}
	if string(pdf) != "%PDF-stub A4 Hello World" {
		t.Fatalf("unexpected output %q", pdf)
	}
	if compiler.calls != 1 || exporter.calls != 1 {
		t.Fatalf("expected one compile and one export, got %d and %d", compiler.calls, exporter.calls)
	}

	wantLogs := []string{
		"render req-1: template built",
		"render req-1: template compiled",
		"render req-1: pdf compiled (24 bytes)",
	}
	if len(logger.debugs) != len(wantLogs) {
		t.Fatalf("unexpected debug logs %v", logger.debugs)
	}
	for i, want := range wantLogs {
		if logger.debugs[i] != want {
			t.Fatalf("debug log %d = %q, want %q", i, logger.debugs[i], want)
		}
	}
}

func TestRendererEmptyTemplate(t *testing.T) {
	r, _, exporter := newTestRenderer()
	pdf, err := r.Render(context.Background(), optionsJSON(""), []byte(`{}`))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(pdf) == 0 || exporter.calls != 1 {
		t.Fatalf("expected an exported document")
	}
	if len(exporter.docs[0].Blocks()) != 0 {
		t.Fatalf("expected no content blocks")
	}
}

func TestRendererDeserializationFailuresSkipCompilation(t *testing.T) {
	cases := []struct {
		name    string
		options string
		data    string
	}{
		{"missing font", `{"template": "hi"}`, `{}`},
		{"missing template", `{"font": [0, 1, 0, 0]}`, `{}`},
		{"options not json", `nope`, `{}`},
		{"data not json", string(optionsJSON("hi")), `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, compiler, exporter := newTestRenderer()
			logger := &recordingLogger{}
			r.Logger = logger

			pdf, err := r.Render(context.Background(), []byte(tc.options), []byte(tc.data))
			if pdf != nil {
				t.Fatalf("expected no output")
			}
			if KindFromError(err) != KindDeserialization {
				t.Fatalf("expected deserialization error, got %v", err)
			}
			if compiler.calls != 0 || exporter.calls != 0 {
				t.Fatalf("expected no compile or export, got %d and %d", compiler.calls, exporter.calls)
			}
			if len(logger.errors) != 1 {
				t.Fatalf("expected the failure to be logged once, got %v", logger.errors)
			}
		})
	}
}

func TestRendererRejectsNonDictionaryInput(t *testing.T) {
	cases := map[string]string{
		`[1, 2]`: "expected dictionary input, found array",
		`null`:   "expected dictionary input, found none",
		`"text"`: "expected dictionary input, found string",
		`42`:     "expected dictionary input, found int",
	}
	for data, message := range cases {
		r, compiler, _ := newTestRenderer()
		_, err := r.Render(context.Background(), optionsJSON("hi"), []byte(data))
		if KindFromError(err) != KindInputShape {
			t.Fatalf("%s: expected input_shape error, got %v", data, err)
		}
		if err.Error() != message {
			t.Fatalf("%s: message = %q, want %q", data, err.Error(), message)
		}
		if compiler.calls != 0 {
			t.Fatalf("%s: compiler should not run", data)
		}
	}
}

func TestRendererCompilationFailureSkipsExport(t *testing.T) {
	r, _, exporter := newTestRenderer()
	_, err := r.Render(context.Background(), optionsJSON("{{.missing}}"), []byte(`{"present": 1}`))
	if KindFromError(err) != KindCompilation {
		t.Fatalf("expected compilation error, got %v", err)
	}
	if exporter.calls != 0 {
		t.Fatalf("exporter should not run")
	}
}

func TestRendererExportFailures(t *testing.T) {
	r, _, exporter := newTestRenderer()
	exporter.err = errors.New("bad font")
	_, err := r.Render(context.Background(), optionsJSON("hi"), []byte(`{}`))
	if KindFromError(err) != KindExport || err.Error() != "bad font" {
		t.Fatalf("expected export error, got %v", err)
	}

	exporter.err = NewError(KindInternal, "kept", nil)
	_, err = r.Render(context.Background(), optionsJSON("hi"), []byte(`{}`))
	if KindFromError(err) != KindInternal {
		t.Fatalf("expected kinded exporter error to be kept, got %v", err)
	}
}

func TestRendererRecoversPanics(t *testing.T) {
	r := NewRenderer(ExporterFunc(func(context.Context, *Document, ExportOptions) ([]byte, error) {
		panic("exporter exploded")
	}))
	_, err := r.Render(context.Background(), optionsJSON("hi"), []byte(`{}`))
	if KindFromError(err) != KindExport || !strings.Contains(err.Error(), "exporter exploded") {
		t.Fatalf("expected recovered export panic, got %v", err)
	}

	r.Compiler = CompilerFunc(func(context.Context, CompileRequest) (*Document, error) {
		panic("compiler exploded")
	})
	_, err = r.Render(context.Background(), optionsJSON("hi"), []byte(`{}`))
	if KindFromError(err) != KindCompilation || !strings.Contains(err.Error(), "compiler exploded") {
		t.Fatalf("expected recovered compile panic, got %v", err)
	}
}

func TestRendererCanceled(t *testing.T) {
	r, _, exporter := newTestRenderer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Render(ctx, optionsJSON("hi"), []byte(`{}`))
	if KindFromError(err) != KindCanceled {
		t.Fatalf("expected canceled error, got %v", err)
	}
	if exporter.calls != 0 {
		t.Fatalf("exporter should not run")
	}
}

func TestRendererLimits(t *testing.T) {
	r, _, _ := newTestRenderer()
	r.MaxTemplateBytes = 2
	_, err := r.Render(context.Background(), optionsJSON("hello"), []byte(`{}`))
	if KindFromError(err) != KindDeserialization {
		t.Fatalf("expected template limit error, got %v", err)
	}

	r, _, _ = newTestRenderer()
	r.MaxFontBytes = 2
	_, err = r.Render(context.Background(), optionsJSON("hi"), []byte(`{}`))
	if KindFromError(err) != KindDeserialization {
		t.Fatalf("expected font limit error, got %v", err)
	}

	r, _, _ = newTestRenderer()
	r.MaxOutputBytes = 3
	_, err = r.Render(context.Background(), optionsJSON("hi"), []byte(`{}`))
	if KindFromError(err) != KindExport {
		t.Fatalf("expected output limit error, got %v", err)
	}
}

func TestRendererCallsAreIndependent(t *testing.T) {
	r, _, _ := newTestRenderer()
	options := optionsJSON("{{.name}}")

	first, err := r.Render(context.Background(), options, []byte(`{"name": "first"}`))
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := r.Render(context.Background(), options, []byte(`{"name": "second"}`))
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	again, err := r.Render(context.Background(), options, []byte(`{"name": "first"}`))
	if err != nil {
		t.Fatalf("third render: %v", err)
	}
	if string(first) == string(second) {
		t.Fatalf("expected different outputs for different data")
	}
	if string(first) != string(again) {
		t.Fatalf("expected identical outputs for identical inputs")
	}
}

func TestRendererRequiresCollaborators(t *testing.T) {
	var nilRenderer *Renderer
	if _, err := nilRenderer.RenderOptions(context.Background(), Options{}, nil); KindFromError(err) != KindInternal {
		t.Fatalf("expected internal error for nil renderer, got %v", err)
	}
	r := &Renderer{}
	if _, err := r.RenderOptions(context.Background(), Options{}, map[string]any{}); KindFromError(err) != KindInternal {
		t.Fatalf("expected internal error without collaborators, got %v", err)
	}
}
