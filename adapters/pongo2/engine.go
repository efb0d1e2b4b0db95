// Package renderpongo2 provides the Django/Pongo2 template syntax.
//
// Output is Markdown, so HTML autoescaping is switched off for the whole
// template. Pongo2 renders missing variables as empty strings instead of
// failing; use the Go syntax when strict variable checks are required.
//
// The "md" filter escapes a value for literal Markdown output, matching the
// "md" func of the Go syntax.
package renderpongo2

import (
	"io"

	"github.com/flosch/pongo2/v6"
	"github.com/goliatone/go-typeset/render"
)

const (
	autoescapeOff = "{% autoescape off %}"
	autoescapeEnd = "{% endautoescape %}"
)

func init() {
	if !pongo2.FilterExists("md") {
		_ = pongo2.RegisterFilter("md", filterMarkdown)
	}
}

func filterMarkdown(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(render.EscapeMarkdown(in.String())), nil
}

// Engine executes Pongo2 template sources.
type Engine struct {
	// Globals are merged under the input dictionary; input keys win.
	Globals pongo2.Context
}

// Execute parses source and renders it with input as the template context.
func (e Engine) Execute(w io.Writer, source string, input render.Dict) error {
	tpl, err := pongo2.FromString(autoescapeOff + source + autoescapeEnd)
	if err != nil {
		return err
	}

	ctx := pongo2.Context{}
	if len(e.Globals) > 0 {
		ctx.Update(e.Globals)
	}
	ctx.Update(pongo2.Context(input.Native()))
	return tpl.ExecuteWriter(ctx, w)
}

// Register adds the engine to a compiler's registry under render.SyntaxDjango.
func Register(registry *render.SyntaxRegistry, engine Engine) error {
	if registry == nil {
		return render.NewError(render.KindInternal, "syntax registry is nil", nil)
	}
	return registry.Register(render.SyntaxDjango, engine)
}
