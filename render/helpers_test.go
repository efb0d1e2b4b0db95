package render

import (
	"context"
	"fmt"
	"sync"
)

type recordingLogger struct {
	mu       sync.Mutex
	debugs   []string
	warnings []string
	errors   []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Infof(string, ...any) {}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

// stubExporter returns a fixed PDF-looking payload naming the first block.
type stubExporter struct {
	calls int
	docs  []*Document
	err   error
}

func (e *stubExporter) Export(ctx context.Context, doc *Document, opts ExportOptions) ([]byte, error) {
	e.calls++
	e.docs = append(e.docs, doc)
	if e.err != nil {
		return nil, e.err
	}
	out := "%PDF-stub " + opts.PageSize
	if blocks := doc.Blocks(); len(blocks) > 0 {
		out += " " + blocks[0].PlainText()
	}
	return []byte(out), nil
}

type countingCompiler struct {
	calls int
	inner Compiler
}

func (c *countingCompiler) Compile(ctx context.Context, req CompileRequest) (*Document, error) {
	c.calls++
	return c.inner.Compile(ctx, req)
}

const testFont = "\x00\x01\x00\x00font"

func optionsJSON(template string) []byte {
	raw, err := EncodeOptions(Options{Template: template, Font: []byte(testFont)})
	if err != nil {
		panic(err)
	}
	return raw
}
