//go:build js && wasm

package main

import (
	"encoding/base64"
	"encoding/json"
	"syscall/js"

	"github.com/goliatone/go-typeset"
)

func main() {
	js.Global().Set("initLogging", js.FuncOf(initLogging))
	js.Global().Set("renderPdf", js.FuncOf(renderPDF))

	if cb := js.Global().Get("onTypesetInitialized"); cb.Type() == js.TypeFunction {
		cb.Invoke()
	}
	select {}
}

func initLogging(this js.Value, args []js.Value) any {
	typeset.InitLogging()
	return nil
}

// renderPDF takes (options, data). options is an object with a template
// string and a font Uint8Array; data is any JSON-serialisable value. It
// returns a Uint8Array on success and {error: string} on failure.
func renderPDF(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return failure("renderPdf expects (options, data)")
	}

	options, err := optionsJSON(args[0])
	if err != nil {
		return failure(err.Error())
	}
	data := []byte(js.Global().Get("JSON").Call("stringify", args[1]).String())

	pdf, message := typeset.RenderPDFString(options, data)
	if message != "" {
		return failure(message)
	}

	out := js.Global().Get("Uint8Array").New(len(pdf))
	js.CopyBytesToJS(out, pdf)
	return out
}

// optionsJSON re-encodes the JS options object for the JSON boundary. Missing
// fields stay missing so decoding reports them.
func optionsJSON(value js.Value) ([]byte, error) {
	fields := map[string]any{}
	if value.Type() == js.TypeObject {
		if template := value.Get("template"); template.Type() == js.TypeString {
			fields["template"] = template.String()
		} else if !template.IsUndefined() {
			fields["template"] = jsonValue(template)
		}
		if font := value.Get("font"); font.InstanceOf(js.Global().Get("Uint8Array")) {
			buf := make([]byte, font.Get("length").Int())
			js.CopyBytesToGo(buf, font)
			fields["font"] = base64.StdEncoding.EncodeToString(buf)
		} else if !font.IsUndefined() {
			fields["font"] = jsonValue(font)
		}
		for _, key := range []string{"syntax", "page_size", "title"} {
			if v := value.Get(key); v.Type() == js.TypeString {
				fields[key] = v.String()
			}
		}
	}
	return json.Marshal(fields)
}

func jsonValue(value js.Value) json.RawMessage {
	return json.RawMessage(js.Global().Get("JSON").Call("stringify", value).String())
}

func failure(message string) any {
	return map[string]any{"error": message}
}
