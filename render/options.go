package render

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Syntax selects the template dialect.
type Syntax string

const (
	SyntaxGo     Syntax = "go"
	SyntaxDjango Syntax = "django"
)

// Page sizes accepted by exporters.
const (
	PageA3     = "A3"
	PageA4     = "A4"
	PageA5     = "A5"
	PageLetter = "LETTER"
	PageLegal  = "LEGAL"
)

// Options holds the per-call render inputs.
type Options struct {
	Template string
	Font     []byte
	Syntax   Syntax
	PageSize string
	Title    string
}

type rawOptions struct {
	Template *string   `json:"template"`
	Font     *FontData `json:"font"`
	Syntax   string    `json:"syntax,omitempty"`
	PageSize string    `json:"page_size,omitempty"`
	Title    string    `json:"title,omitempty"`
}

// FontData decodes a font buffer from either a base64 string or an array of
// byte values (the shape a JS Uint8Array takes once serialised).
type FontData []byte

func (f *FontData) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.New("font must not be null")
	}

	switch data[0] {
	case '"':
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return fmt.Errorf("font is not valid base64: %w", err)
		}
		*f = decoded
		return nil
	case '[':
		var values []int
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("font array must hold byte values: %w", err)
		}
		out := make([]byte, len(values))
		for i, v := range values {
			if v < 0 || v > 255 {
				return fmt.Errorf("font byte %d out of range: %d", i, v)
			}
			out[i] = byte(v)
		}
		*f = out
		return nil
	default:
		return errors.New("font must be a base64 string or byte array")
	}
}

func (f FontData) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(f))
}

// DecodeOptions parses raw JSON render options. template and font are
// required; unknown fields are ignored.
func DecodeOptions(raw []byte) (Options, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Options{}, NewError(KindDeserialization, "render options are empty", nil)
	}

	var parsed rawOptions
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Options{}, NewError(KindDeserialization, "invalid render options", err)
	}
	if parsed.Template == nil {
		return Options{}, NewError(KindDeserialization, "missing field `template`", nil)
	}
	if parsed.Font == nil {
		return Options{}, NewError(KindDeserialization, "missing field `font`", nil)
	}

	opts := Options{
		Template: *parsed.Template,
		Font:     []byte(*parsed.Font),
		Syntax:   Syntax(strings.ToLower(strings.TrimSpace(parsed.Syntax))),
		PageSize: strings.ToUpper(strings.TrimSpace(parsed.PageSize)),
		Title:    parsed.Title,
	}
	return opts.withDefaults(), nil
}

// EncodeOptions is the inverse of DecodeOptions, used by hosts that build
// options natively and hand them to the JSON boundary.
func EncodeOptions(opts Options) ([]byte, error) {
	template := opts.Template
	font := FontData(opts.Font)
	return json.Marshal(rawOptions{
		Template: &template,
		Font:     &font,
		Syntax:   string(opts.Syntax),
		PageSize: opts.PageSize,
		Title:    opts.Title,
	})
}

func (o Options) withDefaults() Options {
	if o.Syntax == "" {
		o.Syntax = SyntaxGo
	}
	if o.PageSize == "" {
		o.PageSize = PageA4
	}
	return o
}

// DecodeData parses raw JSON into a generic value, keeping integer literals
// distinct from floating literals via json.Number.
func DecodeData(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewError(KindDeserialization, "render data is empty", nil)
		}
		return nil, NewError(KindDeserialization, "invalid render data", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, NewError(KindDeserialization, "invalid render data: trailing content", nil)
	}
	return value, nil
}
