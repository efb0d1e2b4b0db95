package render

import "strings"

// BlockKind identifies a layout block.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockListItem  BlockKind = "list_item"
	BlockCode      BlockKind = "code"
	BlockRule      BlockKind = "rule"
)

// Run is a span of text sharing one style.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
	Link   string
}

func (r Run) sameStyle(o Run) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic && r.Code == o.Code && r.Link == o.Link
}

// Block is a laid out unit of content on a page.
//
// Level is the heading level (1..6) for headings and the nesting depth
// (starting at 1) for list items. Marker is the list bullet or number; an
// empty marker on a list item continues the previous item.
type Block struct {
	Kind   BlockKind
	Level  int
	Marker string
	Quote  bool
	Runs   []Run
	Text   string
}

// PlainText concatenates the block runs, or returns Text for code blocks.
func (b Block) PlainText() string {
	if b.Kind == BlockCode {
		return b.Text
	}
	var sb strings.Builder
	for _, run := range b.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// Page holds the blocks placed between explicit page breaks. Exporters may
// still flow a long page onto several physical pages.
type Page struct {
	Blocks []Block
}

// Document is a compiled template ready for export.
type Document struct {
	Title    string
	PageSize string
	Fonts    [][]byte
	Source   string
	Pages    []Page
}

// Blocks returns every block across pages in order.
func (d *Document) Blocks() []Block {
	if d == nil {
		return nil
	}
	var out []Block
	for _, page := range d.Pages {
		out = append(out, page.Blocks...)
	}
	return out
}

// Font returns the primary font, or nil when none is attached.
func (d *Document) Font() []byte {
	if d == nil || len(d.Fonts) == 0 {
		return nil
	}
	return d.Fonts[0]
}
