// Package renderfpdf exports compiled documents to PDF with gofpdf.
//
// The document font is embedded as a UTF-8 TrueType font under a single
// family used for every style, so bold and italic runs share the glyphs of
// the supplied font. Layout is flowing text: headings, paragraphs, nested
// lists, code blocks, rules and block quotes, with explicit page breaks
// between document pages and automatic breaks inside them.
package renderfpdf
