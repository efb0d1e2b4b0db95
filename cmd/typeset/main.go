package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goliatone/go-typeset/config"
)

// Version information
const Version = "0.1.0"

func main() {
	base, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "typeset: %v\n", err)
		os.Exit(2)
	}

	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("typeset"),
		kong.Description("Render templates plus JSON data into PDF documents"),
		kong.UsageOnError(),
		defaultVars(base),
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "typeset: %v\n", err)
		os.Exit(2)
	}
	setupLogging(cfg.Logging)

	if err := ctx.Run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "typeset: %v\n", err)
		os.Exit(1)
	}
}

// defaultVars exposes config values to kong default tags, so a config file
// sets flag defaults and flags or env vars still override it.
func defaultVars(cfg config.Config) kong.Vars {
	return kong.Vars{
		"version":            Version,
		"host":               cfg.Server.Host,
		"port":               cfg.Server.Port,
		"base_path":          cfg.Server.BasePath,
		"exporter":           cfg.Render.Exporter,
		"syntax":             cfg.Render.Syntax,
		"page_size":          cfg.Render.PageSize,
		"font_size":          strconv.FormatFloat(cfg.Render.FontSize, 'f', -1, 64),
		"max_template_bytes": strconv.FormatInt(cfg.Render.MaxTemplateBytes, 10),
		"max_font_bytes":     strconv.FormatInt(cfg.Render.MaxFontBytes, 10),
		"no_page_numbers":    strconv.FormatBool(!cfg.Render.PageNumbers),
		"chromium_path":      cfg.Render.Chromium.Path,
		"chromium_headed":    strconv.FormatBool(!cfg.Render.Chromium.Headless),
		"chromium_timeout":   cfg.Render.Chromium.Timeout.String(),
		"chromium_args":      strings.Join(cfg.Render.Chromium.Args, ","),
		"chromium_landscape": strconv.FormatBool(cfg.Render.Chromium.Landscape),
		"chromium_margin":    cfg.Render.Chromium.Margin,
		"log_level":          cfg.Logging.Level,
		"log_json":           strconv.FormatBool(cfg.Logging.JSON),
	}
}
