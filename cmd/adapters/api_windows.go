package main

import (
	"github.com/kirides/hellotriangle/d3d"
	"github.com/kirides/hellotriangle/gpu"
)

func newAPI() (gpu.API, error) {
	rt, err := d3d.NewRuntime()
	if err != nil {
		return nil, err
	}
	return rt, nil
}
