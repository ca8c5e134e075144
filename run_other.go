//go:build !windows

package main

import "errors"

func run(Config) error {
	return errors.New("hellotriangle needs Windows with Direct3D 12")
}
