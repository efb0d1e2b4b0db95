package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMarkupInlineStyles(t *testing.T) {
	pages := ParseMarkup([]byte("# Title\n\nHello **bold** and *it* `code` [link](https://example.com)."))
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	blocks := pages[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Kind != BlockHeading || blocks[0].Level != 1 || blocks[0].PlainText() != "Title" {
		t.Fatalf("unexpected heading %+v", blocks[0])
	}

	want := []Run{
		{Text: "Hello "},
		{Text: "bold", Bold: true},
		{Text: " and "},
		{Text: "it", Italic: true},
		{Text: " "},
		{Text: "code", Code: true},
		{Text: " "},
		{Text: "link", Link: "https://example.com"},
		{Text: "."},
	}
	if diff := cmp.Diff(want, blocks[1].Runs); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	if got := EscapeMarkdown("plain text"); got != "plain text" {
		t.Fatalf("EscapeMarkdown(plain) = %q", got)
	}
	if got, want := EscapeMarkdown(`a*b_c\`), `a\*b\_c\\`; got != want {
		t.Fatalf("EscapeMarkdown = %q, want %q", got, want)
	}

	literal := "<b>x</b> *y* # z [w](u) café `v` 1. & \\ end"
	pages := ParseMarkup([]byte("use " + EscapeMarkdown(literal)))
	blocks := pages[0].Blocks
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	want := []Run{{Text: "use " + literal}}
	if diff := cmp.Diff(want, blocks[0].Runs); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}

	code := ParseMarkup([]byte("`a\\*b`"))[0].Blocks[0].Runs
	if diff := cmp.Diff([]Run{{Text: `a\*b`, Code: true}}, code); diff != "" {
		t.Fatalf("code span mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMarkupLists(t *testing.T) {
	pages := ParseMarkup([]byte("- a\n- b\n\n1. x\n2. y\n"))
	blocks := pages[0].Blocks

	var markers []string
	var texts []string
	for _, block := range blocks {
		if block.Kind != BlockListItem || block.Level != 1 {
			t.Fatalf("unexpected block %+v", block)
		}
		markers = append(markers, block.Marker)
		texts = append(texts, block.PlainText())
	}
	if diff := cmp.Diff([]string{"•", "•", "1.", "2."}, markers); diff != "" {
		t.Fatalf("markers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "x", "y"}, texts); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMarkupPageBreaks(t *testing.T) {
	pages := ParseMarkup([]byte("one\n\n" + PageBreakMarker + "\n\ntwo\n"))
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if pages[0].Blocks[0].PlainText() != "one" || pages[1].Blocks[0].PlainText() != "two" {
		t.Fatalf("unexpected pages %+v", pages)
	}

	pages = ParseMarkup([]byte(PageBreakMarker + "\n\nonly\n\n" + PageBreakMarker + "\n"))
	if len(pages) != 1 {
		t.Fatalf("expected leading and trailing breaks to be trimmed, got %d pages", len(pages))
	}
}

func TestParseMarkupBlocks(t *testing.T) {
	pages := ParseMarkup([]byte("a\nb\n\n---\n\n```\nx := 1\n```\n\n> quoted\n"))
	blocks := pages[0].Blocks
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].PlainText() != "a b" {
		t.Fatalf("expected soft break to become a space, got %q", blocks[0].PlainText())
	}
	if blocks[1].Kind != BlockRule {
		t.Fatalf("expected rule, got %s", blocks[1].Kind)
	}
	if blocks[2].Kind != BlockCode || blocks[2].PlainText() != "x := 1" {
		t.Fatalf("unexpected code block %+v", blocks[2])
	}
	if blocks[3].Kind != BlockParagraph || !blocks[3].Quote || blocks[3].PlainText() != "quoted" {
		t.Fatalf("unexpected quote block %+v", blocks[3])
	}
}

func TestParseMarkupEmpty(t *testing.T) {
	pages := ParseMarkup(nil)
	if len(pages) != 1 || len(pages[0].Blocks) != 0 {
		t.Fatalf("expected a single empty page, got %+v", pages)
	}
}
