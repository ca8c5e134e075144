package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"github.com/kirides/hellotriangle/sample"
)

// Config is the merged result of the config file and the command line.
type Config struct {
	Width          int    `toml:"width"`
	Height         int    `toml:"height"`
	Title          string `toml:"title"`
	Warp           bool   `toml:"warp"`
	Shader         string `toml:"shader"`
	Frames         int    `toml:"frames"`
	Capture        string `toml:"capture"`
	ThumbnailWidth uint   `toml:"thumbnail_width"`
	Verbose        bool   `toml:"verbose"`
}

func defaultConfig() Config {
	return Config{
		Width:  1024,
		Height: 768,
		Title:  "D3D12 Hello Triangle",
	}
}

func (c Config) SampleOptions() sample.Options {
	return sample.Options{
		Title:      c.Title,
		Width:      c.Width,
		Height:     c.Height,
		UseWARP:    c.Warp,
		ShaderPath: c.Shader,
	}
}

// scanWarp removes -warp and /warp, in any letter case, from args.
func scanWarp(args []string) (rest []string, warp bool) {
	rest = make([]string, 0, len(args))
	for _, a := range args {
		if strings.EqualFold(a, "-warp") || strings.EqualFold(a, "/warp") {
			warp = true
			continue
		}
		rest = append(rest, a)
	}
	return rest, warp
}

// parseConfig reads the command line. Flags override values from the file
// named by --config, which override the defaults.
func parseConfig(args []string, stderr io.Writer) (Config, error) {
	args, warp := scanWarp(args)

	def := defaultConfig()
	fs := pflag.NewFlagSet("hellotriangle", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML file with default settings")
	width := fs.Int("width", def.Width, "client area width in pixels")
	height := fs.Int("height", def.Height, "client area height in pixels")
	title := fs.String("title", def.Title, "window title")
	useWarp := fs.Bool("warp", false, "render with the WARP software adapter (also -warp or /warp)")
	shader := fs.String("shader", "", "HLSL file, defaults to "+sample.ShaderFile+" next to the executable")
	frames := fs.Int("frames", 0, "close the window after this many frames, 0 runs until closed")
	capturePath := fs.String("capture", "", "save the client area to this .png or .jpg before closing")
	thumbWidth := fs.Uint("thumbnail-width", 0, "also save a thumbnail of this width next to the capture")
	verbose := fs.BoolP("verbose", "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %q", fs.Args())
	}

	cfg := def
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return Config{}, err
		}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", *configPath, err)
		}
	}

	if fs.Changed("width") {
		cfg.Width = *width
	}
	if fs.Changed("height") {
		cfg.Height = *height
	}
	if fs.Changed("title") {
		cfg.Title = *title
	}
	if fs.Changed("warp") {
		cfg.Warp = *useWarp
	}
	if warp {
		cfg.Warp = true
	}
	if fs.Changed("shader") {
		cfg.Shader = *shader
	}
	if fs.Changed("frames") {
		cfg.Frames = *frames
	}
	if fs.Changed("capture") {
		cfg.Capture = *capturePath
	}
	if fs.Changed("thumbnail-width") {
		cfg.ThumbnailWidth = *thumbWidth
	}
	if fs.Changed("verbose") {
		cfg.Verbose = *verbose
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Frames < 0 {
		return Config{}, fmt.Errorf("invalid frame count %d", cfg.Frames)
	}
	return cfg, nil
}
