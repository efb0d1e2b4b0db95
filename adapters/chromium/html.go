package renderchromium

import (
	"bytes"
	"encoding/base64"
	"html"
	"strings"

	"github.com/goliatone/go-typeset/render"
)

const documentCSS = `@font-face { font-family: "typeset-body"; src: url(data:font/ttf;base64,%FONT%) format("truetype"); }
body { font-family: "typeset-body", sans-serif; font-size: 11pt; line-height: 1.4; }
pre, code { font-family: "typeset-body", monospace; background: #f2f2f2; }
pre { padding: 4pt; white-space: pre-wrap; }
blockquote { color: #5a5a5a; margin-left: 6mm; }
hr { border: 0; border-top: 1px solid #a0a0a0; }
.page-break { break-after: page; }`

// BuildHTML renders the document source as a standalone HTML page. Text
// between page break markers becomes separate print pages.
func BuildHTML(doc *render.Document) ([]byte, error) {
	var body bytes.Buffer
	md := render.Markdown()
	chunks := strings.Split(doc.Source, render.PageBreakMarker)
	for i, chunk := range chunks {
		if i > 0 {
			body.WriteString(`<div class="page-break"></div>`)
		}
		if err := md.Convert([]byte(chunk), &body); err != nil {
			return nil, err
		}
	}

	css := documentCSS
	if font := doc.Font(); len(font) > 0 {
		css = strings.Replace(css, "%FONT%", base64.StdEncoding.EncodeToString(font), 1)
	} else {
		css = css[strings.Index(css, "\n")+1:]
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	if doc.Title != "" {
		out.WriteString("<title>" + html.EscapeString(doc.Title) + "</title>")
	}
	out.WriteString("<style>" + css + "</style></head><body>")
	out.Write(body.Bytes())
	out.WriteString("</body></html>")
	return out.Bytes(), nil
}
