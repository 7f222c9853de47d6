package main

import (
	"fmt"
	"os"

	"github.com/townforge/townforge/pkg/config"
	"github.com/townforge/townforge/pkg/export"
	"github.com/townforge/townforge/pkg/render"
	"github.com/townforge/townforge/pkg/town"
	"github.com/townforge/townforge/pkg/validate"
)

// runOptions merges preset and flag settings for one generation run.
type runOptions struct {
	size       int
	seed       int64
	document   string
	format     string
	mapPath    string
	scale      float64
	presetPath string
}

// resolve loads the preset (if any) and overlays the explicit flags.
func (o runOptions) resolve() (*config.Preset, error) {
	preset := config.Default()
	if o.presetPath != "" {
		loaded, err := config.Load(o.presetPath)
		if err != nil {
			return nil, err
		}
		preset = loaded
	}
	if o.size != 0 {
		preset.Size = o.size
	}
	if o.seed != 0 {
		preset.Seed = o.seed
	}
	if o.document != "" {
		preset.Output.Document = o.document
	}
	if o.format != "" {
		preset.Output.Format = o.format
	}
	if o.mapPath != "" {
		preset.Output.Map = o.mapPath
	}
	if o.scale != 0 {
		preset.Output.Scale = o.scale
	}
	return preset, preset.Validate()
}

func generate(preset *config.Preset) (*town.Model, error) {
	m, err := town.Generate(preset.Size, preset.Seed)
	if err != nil {
		return nil, fmt.Errorf("generating town: %w", err)
	}
	return m, nil
}

func runGenerate(opts runOptions) error {
	preset, err := opts.resolve()
	if err != nil {
		return err
	}

	m, err := generate(preset)
	if err != nil {
		return err
	}

	report := validate.Check(m)
	printSummary(os.Stderr, m, report)
	if !report.Valid {
		printReport(os.Stderr, report)
		return fmt.Errorf("generated town failed validation")
	}

	doc := export.FromModel(m)
	out := os.Stdout
	if preset.Output.Document != "" {
		f, err := os.Create(preset.Output.Document)
		if err != nil {
			return fmt.Errorf("creating document: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := export.Write(out, doc, preset.Output.Format); err != nil {
		return err
	}

	if preset.Output.Map != "" {
		r := render.New(nil, preset.Output.Scale)
		if err := r.SavePNG(m, preset.Output.Map); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "map written to %s\n", preset.Output.Map)
	}
	return nil
}

func runRender(opts runOptions) error {
	preset, err := opts.resolve()
	if err != nil {
		return err
	}

	m, err := generate(preset)
	if err != nil {
		return err
	}

	r := render.New(nil, preset.Output.Scale)
	if err := r.SavePNG(m, opts.mapPath); err != nil {
		return err
	}
	printSummary(os.Stderr, m, validate.Check(m))
	fmt.Fprintf(os.Stderr, "map written to %s\n", opts.mapPath)
	return nil
}
