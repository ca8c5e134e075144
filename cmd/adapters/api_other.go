//go:build !windows

package main

import (
	"errors"

	"github.com/kirides/hellotriangle/gpu"
)

func newAPI() (gpu.API, error) {
	return nil, errors.New("adapters needs Windows with DXGI")
}
