package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/template"
)

// CompileRequest carries everything the compiler needs for one document.
type CompileRequest struct {
	Template string
	Syntax   Syntax
	Fonts    [][]byte
	Input    Dict
	PageSize string
	Title    string
}

// Compiler evaluates a template against an input dictionary.
type Compiler interface {
	Compile(ctx context.Context, req CompileRequest) (*Document, error)
}

// CompilerFunc adapts a function to a Compiler.
type CompilerFunc func(ctx context.Context, req CompileRequest) (*Document, error)

func (f CompilerFunc) Compile(ctx context.Context, req CompileRequest) (*Document, error) {
	if f == nil {
		return nil, errors.New("compiler func is nil")
	}
	return f(ctx, req)
}

// TemplateEngine executes template source for one dialect and writes markup.
type TemplateEngine interface {
	Execute(w io.Writer, source string, input Dict) error
}

// SyntaxRegistry stores template engines by syntax.
type SyntaxRegistry struct {
	mu      sync.RWMutex
	engines map[Syntax]TemplateEngine
}

// NewSyntaxRegistry creates an empty registry.
func NewSyntaxRegistry() *SyntaxRegistry {
	return &SyntaxRegistry{engines: make(map[Syntax]TemplateEngine)}
}

// Register adds an engine for a syntax.
func (r *SyntaxRegistry) Register(syntax Syntax, engine TemplateEngine) error {
	if syntax == "" {
		return NewError(KindInternal, "template syntax is required", nil)
	}
	if engine == nil {
		return NewError(KindInternal, "template engine is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.engines[syntax]; exists {
		return NewError(KindInternal, fmt.Sprintf("template syntax %q already registered", syntax), nil)
	}
	r.engines[syntax] = engine
	return nil
}

// Resolve finds the engine for a syntax.
func (r *SyntaxRegistry) Resolve(syntax Syntax) (TemplateEngine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	engine, ok := r.engines[syntax]
	return engine, ok
}

// Syntaxes lists the registered syntaxes.
func (r *SyntaxRegistry) Syntaxes() []Syntax {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Syntax, 0, len(r.engines))
	for syntax := range r.engines {
		out = append(out, syntax)
	}
	return out
}

// TemplateCompiler executes templates through a SyntaxRegistry and lays the
// resulting Markdown out into a Document.
type TemplateCompiler struct {
	Engines        *SyntaxRegistry
	MaxMarkupBytes int64
}

// NewTemplateCompiler creates a compiler with the Go template syntax registered.
func NewTemplateCompiler() *TemplateCompiler {
	engines := NewSyntaxRegistry()
	_ = engines.Register(SyntaxGo, GoTemplateEngine{})
	return &TemplateCompiler{Engines: engines}
}

// Compile renders the template and parses its markup.
func (c *TemplateCompiler) Compile(ctx context.Context, req CompileRequest) (*Document, error) {
	if c == nil || c.Engines == nil {
		return nil, NewError(KindInternal, "template compiler is not configured", nil)
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	syntax := req.Syntax
	if syntax == "" {
		syntax = SyntaxGo
	}
	engine, ok := c.Engines.Resolve(syntax)
	if !ok {
		return nil, NewError(KindCompilation, fmt.Sprintf("unsupported template syntax %q", syntax), nil)
	}

	buffer := newLimitedBuffer(limitOrDefault(c.MaxMarkupBytes, DefaultMaxMarkupBytes), KindCompilation, "template output")
	if err := engine.Execute(buffer, req.Template, req.Input); err != nil {
		if KindFromError(err) == KindCompilation {
			return nil, err
		}
		return nil, NewError(KindCompilation, "", err)
	}

	return &Document{
		Title:    req.Title,
		PageSize: req.PageSize,
		Fonts:    req.Fonts,
		Source:   string(buffer.Bytes()),
		Pages:    ParseMarkup(buffer.Bytes()),
	}, nil
}

// GoTemplateEngine executes text/template sources. Referencing a key that
// is missing from the input is an error.
type GoTemplateEngine struct {
	Funcs template.FuncMap
}

func (e GoTemplateEngine) Execute(w io.Writer, source string, input Dict) error {
	tmpl := template.New("main").Option("missingkey=error").Funcs(defaultFuncs())
	if len(e.Funcs) > 0 {
		tmpl = tmpl.Funcs(e.Funcs)
	}
	tmpl, err := tmpl.Parse(source)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, input.Native())
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,
		"md":    EscapeMarkdown,
		"join": func(sep string, items []any) string {
			parts := make([]string, len(items))
			for i, item := range items {
				parts[i] = fmt.Sprint(item)
			}
			return strings.Join(parts, sep)
		},
		"default": func(fallback, value any) any {
			if value == nil {
				return fallback
			}
			if s, ok := value.(string); ok && s == "" {
				return fallback
			}
			return value
		},
	}
}
