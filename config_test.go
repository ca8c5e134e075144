package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanWarp(t *testing.T) {
	tests := []struct {
		args []string
		rest []string
		warp bool
	}{
		{nil, []string{}, false},
		{[]string{"/warp"}, []string{}, true},
		{[]string{"-WARP", "--frames", "3"}, []string{"--frames", "3"}, true},
		{[]string{"/Warp", "-v"}, []string{"-v"}, true},
		{[]string{"--warp"}, []string{"--warp"}, false},
		{[]string{"-war", "/warpx"}, []string{"-war", "/warpx"}, false},
	}
	for _, tc := range tests {
		rest, warp := scanWarp(tc.args)
		assert.Equal(t, tc.rest, rest, "%q", tc.args)
		assert.Equal(t, tc.warp, warp, "%q", tc.args)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	opts := cfg.SampleOptions()
	assert.Equal(t, 1024, opts.Width)
	assert.Equal(t, 768, opts.Height)
	assert.Equal(t, "D3D12 Hello Triangle", opts.Title)
	assert.False(t, opts.UseWARP)
	assert.Empty(t, opts.ShaderPath)
}

func TestParseConfigFlags(t *testing.T) {
	cfg, err := parseConfig([]string{
		"/WARP",
		"--width", "800",
		"--height=600",
		"--frames", "10",
		"--capture", "out.png",
		"--thumbnail-width", "200",
		"--shader", `C:\shaders\tri.hlsl`,
		"-v",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Width:          800,
		Height:         600,
		Title:          "D3D12 Hello Triangle",
		Warp:           true,
		Shader:         `C:\shaders\tri.hlsl`,
		Frames:         10,
		Capture:        "out.png",
		ThumbnailWidth: 200,
		Verbose:        true,
	}, cfg)
}

func TestParseConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
width = 640
height = 480
title = "From file"
warp = true
frames = 5
`), 0o644))

	cfg, err := parseConfig([]string{"--config", path, "--height", "400"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 400, cfg.Height, "flags win over the file")
	assert.Equal(t, "From file", cfg.Title)
	assert.True(t, cfg.Warp)
	assert.Equal(t, 5, cfg.Frames)

	cfg, err = parseConfig([]string{"--config", path, "--warp=false"}, io.Discard)
	require.NoError(t, err)
	assert.False(t, cfg.Warp)
}

func TestParseConfigErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("fullscreen = true\n"), 0o644))

	tests := map[string][]string{
		"unknown flag":     {"--fullscreen"},
		"positional":       {"extra"},
		"zero width":       {"--width", "0"},
		"negative frames":  {"--frames", "-1"},
		"missing file":     {"--config", filepath.Join(dir, "missing.toml")},
		"unknown file key": {"--config", unknown},
		"not a number":     {"--height", "tall"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseConfig(args, io.Discard)
			assert.Error(t, err)
		})
	}
}
