package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-typeset/config"
	"github.com/goliatone/go-typeset/render"
	"golang.org/x/image/font/gofont/goregular"
)

// RenderCmd renders one template file.
type RenderCmd struct {
	Template string `arg:"" help:"Template file." type:"existingfile"`
	Data     string `help:"JSON data file, '-' for stdin." short:"d" default:"-"`
	Font     string `help:"TrueType font to embed. Defaults to Go Regular." short:"f" type:"existingfile"`
	Out      string `help:"Output PDF path, '-' for stdout." short:"o" default:"out.pdf"`
	Syntax   string `name:"template-syntax" help:"Template syntax (go, django); overrides the global --syntax."`
	Title    string `help:"Document title metadata."`
}

// Run renders the template and writes the PDF.
func (c *RenderCmd) Run(cfg *config.Config) error {
	return c.run(context.Background(), cfg, os.Stdin, os.Stdout)
}

func (c *RenderCmd) run(ctx context.Context, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	template, err := os.ReadFile(c.Template)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	font := goregular.TTF
	if c.Font != "" {
		if font, err = os.ReadFile(c.Font); err != nil {
			return fmt.Errorf("read font: %w", err)
		}
	}

	var data []byte
	if c.Data == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(c.Data)
	}
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}

	syntax := c.Syntax
	if syntax == "" {
		syntax = cfg.Render.Syntax
	}
	opts := render.Options{
		Template: string(template),
		Font:     font,
		Syntax:   render.Syntax(syntax),
		PageSize: cfg.Render.PageSize,
		Title:    c.Title,
	}

	input, err := render.DecodeData(data)
	if err != nil {
		return err
	}

	renderer, closer := newRenderer(cfg.Render)
	defer closer.Close()

	pdf, err := renderer.RenderOptions(ctx, opts, input)
	if err != nil {
		return err
	}

	if c.Out == "-" {
		_, err = stdout.Write(pdf)
		return err
	}
	return os.WriteFile(c.Out, pdf, 0o644)
}
