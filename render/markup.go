package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const markdownPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// EscapeMarkdown backslash-escapes ASCII punctuation in s so that it reads
// back from ParseMarkup as literal text.
func EscapeMarkdown(s string) string {
	if !strings.ContainsAny(s, markdownPunctuation) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(markdownPunctuation, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// PageBreakMarker is the HTML comment that starts a new page.
const PageBreakMarker = "<!-- pagebreak -->"

// Markdown returns the goldmark instance used to read template output. The
// chromium exporter shares it so both exporters agree on the markup.
func Markdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)
}

// ParseMarkup lays out Markdown source into pages of blocks.
func ParseMarkup(source []byte) []Page {
	root := Markdown().Parser().Parse(text.NewReader(source))
	p := &markupParser{source: source, pages: []Page{{}}}
	p.blocks(root, 0, false)
	return p.trimmed()
}

type markupParser struct {
	source []byte
	pages  []Page
}

func (p *markupParser) add(block Block) {
	last := &p.pages[len(p.pages)-1]
	last.Blocks = append(last.Blocks, block)
}

func (p *markupParser) pageBreak() {
	p.pages = append(p.pages, Page{})
}

// trimmed drops empty pages produced by leading, trailing or doubled breaks.
func (p *markupParser) trimmed() []Page {
	out := make([]Page, 0, len(p.pages))
	for _, page := range p.pages {
		if len(page.Blocks) > 0 {
			out = append(out, page)
		}
	}
	if len(out) == 0 {
		out = append(out, Page{})
	}
	return out
}

func (p *markupParser) blocks(n ast.Node, depth int, quote bool) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		p.block(child, depth, quote)
	}
}

func (p *markupParser) block(n ast.Node, depth int, quote bool) {
	switch node := n.(type) {
	case *ast.Heading:
		p.add(Block{Kind: BlockHeading, Level: node.Level, Quote: quote, Runs: p.inlines(node, Run{})})
	case *ast.Paragraph, *ast.TextBlock:
		kind := BlockParagraph
		if depth > 0 {
			kind = BlockListItem
		}
		p.add(Block{Kind: kind, Level: depth, Quote: quote, Runs: p.inlines(node, Run{})})
	case *ast.List:
		p.list(node, depth, quote)
	case *ast.ThematicBreak:
		p.add(Block{Kind: BlockRule})
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		p.add(Block{Kind: BlockCode, Level: depth, Quote: quote, Text: p.lines(node)})
	case *ast.Blockquote:
		p.blocks(node, depth, true)
	case *ast.HTMLBlock:
		if strings.Contains(p.lines(node), PageBreakMarker) {
			p.pageBreak()
		}
	default:
		p.blocks(node, depth, quote)
	}
}

func (p *markupParser) list(list *ast.List, depth int, quote bool) {
	index := 0
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "•"
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d.", list.Start+index)
		}
		index++

		first := true
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch child.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				block := Block{Kind: BlockListItem, Level: depth + 1, Quote: quote, Runs: p.inlines(child, Run{})}
				if first {
					block.Marker = marker
				}
				p.add(block)
			default:
				if first {
					p.add(Block{Kind: BlockListItem, Level: depth + 1, Quote: quote, Marker: marker})
				}
				p.block(child, depth+1, quote)
			}
			first = false
		}
		if first {
			p.add(Block{Kind: BlockListItem, Level: depth + 1, Quote: quote, Marker: marker})
		}
	}
}

func (p *markupParser) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(p.source))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (p *markupParser) inlines(n ast.Node, style Run) []Run {
	var runs []Run
	appendRun := func(text string, style Run) {
		if text == "" {
			return
		}
		if len(runs) > 0 && runs[len(runs)-1].sameStyle(style) {
			runs[len(runs)-1].Text += text
			return
		}
		style.Text = text
		runs = append(runs, style)
	}

	var walk func(n ast.Node, style Run)
	walk = func(n ast.Node, style Run) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			switch node := child.(type) {
			case *ast.Text:
				value := node.Segment.Value(p.source)
				if !style.Code {
					value = util.UnescapePunctuations(value)
				}
				appendRun(string(value), style)
				if node.HardLineBreak() {
					appendRun("\n", style)
				} else if node.SoftLineBreak() {
					appendRun(" ", style)
				}
			case *ast.String:
				appendRun(string(node.Value), style)
			case *ast.Emphasis:
				next := style
				if node.Level >= 2 {
					next.Bold = true
				} else {
					next.Italic = true
				}
				walk(node, next)
			case *ast.CodeSpan:
				next := style
				next.Code = true
				walk(node, next)
			case *ast.Link:
				next := style
				next.Link = string(node.Destination)
				walk(node, next)
			case *ast.AutoLink:
				next := style
				next.Link = string(node.URL(p.source))
				appendRun(string(node.Label(p.source)), next)
			case *ast.RawHTML:
			default:
				walk(node, style)
			}
		}
	}
	walk(n, style)
	return runs
}
