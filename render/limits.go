package render

import (
	"bytes"
	"fmt"
)

// Default input and output bounds. Zero limits on a Renderer fall back to these.
const (
	DefaultMaxTemplateBytes int64 = 1 * 1024 * 1024
	DefaultMaxFontBytes     int64 = 32 * 1024 * 1024
	DefaultMaxMarkupBytes   int64 = 8 * 1024 * 1024
	DefaultMaxOutputBytes   int64 = 64 * 1024 * 1024
)

func limitOrDefault(limit, fallback int64) int64 {
	if limit <= 0 {
		return fallback
	}
	return limit
}

type limitedBuffer struct {
	buf     bytes.Buffer
	maxSize int64
	kind    ErrorKind
	label   string
}

func newLimitedBuffer(maxSize int64, kind ErrorKind, label string) *limitedBuffer {
	return &limitedBuffer{maxSize: maxSize, kind: kind, label: label}
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.maxSize > 0 && int64(b.buf.Len()+len(p)) > b.maxSize {
		return 0, NewError(b.kind, fmt.Sprintf("%s exceeds %d bytes", b.label, b.maxSize), nil)
	}
	return b.buf.Write(p)
}

func (b *limitedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
