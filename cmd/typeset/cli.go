package main

import (
	"time"

	"github.com/alecthomas/kong"
	"github.com/goliatone/go-typeset/config"
)

// CLI defines the command-line interface.
type CLI struct {
	LogLevel string           `help:"Log level (debug, info, warn, error)." default:"${log_level}" env:"TYPESET_LOG_LEVEL"`
	LogJSON  bool             `help:"Emit JSON log lines." default:"${log_json}" env:"TYPESET_LOG_JSON"`
	Version  kong.VersionFlag `help:"Show version information." short:"v"`

	Exporter          string        `help:"PDF exporter (fpdf, chromium)." default:"${exporter}" enum:"fpdf,chromium" env:"TYPESET_EXPORTER"`
	Syntax            string        `help:"Default template syntax (go, django)." default:"${syntax}" enum:"go,django" env:"TYPESET_SYNTAX"`
	PageSize          string        `help:"Default page size." default:"${page_size}" env:"TYPESET_PAGE_SIZE"`
	FontSize          float64       `help:"Body font size in points (fpdf exporter)." default:"${font_size}" env:"TYPESET_FONT_SIZE"`
	NoPageNumbers     bool          `help:"Omit page numbers (fpdf exporter)." default:"${no_page_numbers}" env:"TYPESET_NO_PAGE_NUMBERS"`
	MaxTemplateBytes  int64         `help:"Largest accepted template." default:"${max_template_bytes}" env:"TYPESET_MAX_TEMPLATE_BYTES"`
	MaxFontBytes      int64         `help:"Largest accepted font." default:"${max_font_bytes}" env:"TYPESET_MAX_FONT_BYTES"`
	ChromiumPath      string        `help:"Chromium binary for the chromium exporter." default:"${chromium_path}" env:"TYPESET_CHROMIUM_PATH"`
	ChromiumHeaded    bool          `help:"Run Chromium with a visible window." default:"${chromium_headed}" env:"TYPESET_CHROMIUM_HEADED"`
	ChromiumTimeout   time.Duration `help:"Chromium print timeout." default:"${chromium_timeout}" env:"TYPESET_CHROMIUM_TIMEOUT"`
	ChromiumArgs      string        `help:"Extra comma-separated Chromium flags." default:"${chromium_args}" env:"TYPESET_CHROMIUM_ARGS"`
	ChromiumLandscape bool          `help:"Print landscape pages (chromium exporter)." default:"${chromium_landscape}" env:"TYPESET_CHROMIUM_LANDSCAPE"`
	ChromiumMargin    string        `help:"Page margin on all sides, e.g. 12mm (chromium exporter)." default:"${chromium_margin}" env:"TYPESET_CHROMIUM_MARGIN"`

	Render RenderCmd `cmd:"" help:"Render a template file to PDF."`
	Serve  ServeCmd  `cmd:"" help:"Serve the render endpoint over HTTP."`
}

// Config folds global flags into a config.Config.
func (c *CLI) Config() config.Config {
	cfg := config.Defaults()
	cfg.Logging.Level = c.LogLevel
	cfg.Logging.JSON = c.LogJSON

	cfg.Render.Exporter = c.Exporter
	cfg.Render.Syntax = c.Syntax
	cfg.Render.PageSize = c.PageSize
	cfg.Render.FontSize = c.FontSize
	cfg.Render.PageNumbers = !c.NoPageNumbers
	cfg.Render.MaxTemplateBytes = c.MaxTemplateBytes
	cfg.Render.MaxFontBytes = c.MaxFontBytes
	cfg.Render.Chromium.Path = c.ChromiumPath
	cfg.Render.Chromium.Headless = !c.ChromiumHeaded
	cfg.Render.Chromium.Timeout = c.ChromiumTimeout
	cfg.Render.Chromium.Args = config.SplitCSV(c.ChromiumArgs)
	cfg.Render.Chromium.Landscape = c.ChromiumLandscape
	cfg.Render.Chromium.Margin = c.ChromiumMargin

	cfg.Server.Host = c.Serve.Host
	cfg.Server.Port = c.Serve.Port
	cfg.Server.BasePath = c.Serve.BasePath
	return cfg
}
