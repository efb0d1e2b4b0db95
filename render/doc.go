// Package render turns a template plus structured data into a PDF.
//
// Template output is read as Markdown, so data values substituted into a
// template are Markdown too: "*" and "#" restyle text and inline HTML is
// dropped. Pass untrusted or literal values through the "md" template func
// (or the "md" filter in Django syntax), which backslash-escapes every
// ASCII punctuation character so the value prints as written.
package render
