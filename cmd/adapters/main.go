// Command adapters lists the DXGI adapters and whether each can host a
// Direct3D 12 device.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/kirides/hellotriangle/gpu"
	"github.com/kirides/hellotriangle/sample"
)

func main() {
	warp := pflag.Bool("warp", false, "also describe the WARP software adapter")
	pflag.Parse()

	api, err := newAPI()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := listAdapters(api, os.Stdout, *warp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// listAdapters writes one line per adapter in enumeration order.
func listAdapters(api gpu.API, w io.Writer, warp bool) error {
	factory, err := api.CreateFactory(0)
	if err != nil {
		return err
	}
	defer factory.Release()

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
				return slog.Attr{}
			}
			return a
		},
	}))

	describe := func(name string, a gpu.Adapter) error {
		desc, err := a.Desc()
		if err != nil {
			return err
		}
		args := sample.DescribeAdapter(desc)
		if err := api.CheckDeviceSupport(a, sample.MinFeatureLevel); err != nil {
			args = append(args, "d3d12", false, "reason", err.Error())
		} else {
			args = append(args, "d3d12", true)
		}
		logger.Info(name, args...)
		return nil
	}

	for i := uint32(0); ; i++ {
		a, err := factory.EnumAdapters(i)
		if errors.Is(err, gpu.ErrNotFound) {
			break
		}
		if err != nil {
			return err
		}
		err = describe(fmt.Sprintf("adapter %d", i), a)
		a.Release()
		if err != nil {
			return err
		}
	}

	if !warp {
		return nil
	}
	a, err := factory.EnumWarpAdapter()
	if err != nil {
		return err
	}
	defer a.Release()
	return describe("warp", a)
}
