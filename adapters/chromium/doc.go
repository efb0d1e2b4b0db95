// Package renderchromium exports compiled documents to PDF through headless
// Chromium.
//
// The document source is rendered to HTML with the same goldmark setup the
// compiler uses, the document font is inlined as a base64 @font-face, and
// the page is printed with chromedp. A single browser is started lazily per
// Exporter and released by Close.
package renderchromium
