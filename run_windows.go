package main

import (
	"runtime"

	"github.com/kirides/hellotriangle/capture"
	"github.com/kirides/hellotriangle/d3d"
	"github.com/kirides/hellotriangle/sample"
	"github.com/kirides/hellotriangle/win"
)

func run(cfg Config) error {
	// The window, its message loop and the swap chain share this thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	api, err := d3d.NewRuntime()
	if err != nil {
		return err
	}
	s, err := sample.New(api, cfg.SampleOptions())
	if err != nil {
		return err
	}
	defer s.Release()

	opts := win.Options{Frames: cfg.Frames}
	if cfg.Capture != "" {
		want := capture.RGBA(sample.ClearColor)
		opts.BeforeClose = func(hwnd uintptr) error {
			rect, err := win.ClientRect(hwnd)
			if err != nil {
				return err
			}
			return capture.Screen(rect, capture.Options{
				Path:           cfg.Capture,
				ThumbnailWidth: cfg.ThumbnailWidth,
				Expect:         &want,
			})
		}
	}
	return win.Run(s, opts)
}
