// Package sample renders a single colored triangle through the gpu
// interfaces. HelloTriangle owns every GPU object it creates; a window host
// drives it through the Sample interface.
package sample

import (
	"errors"
	"os"
	"path/filepath"
)

// FrameCount is the number of swap chain back buffers.
const FrameCount = 2

// ShaderFile is looked up next to the executable unless Options.ShaderPath
// is set.
const ShaderFile = "shaders.hlsl"

// Sample is what a window host needs to drive a renderer.
type Sample interface {
	// BindToWindow is called once after the window exists and before the
	// first Render.
	BindToWindow(w Window) error
	Update()
	Render() error
	OnKeyDown(key uint8)
	OnKeyUp(key uint8)
	Title() string
	WindowSize() (width, height int)
	Release()
}

// Window is a native window handle and its client size in pixels.
type Window struct {
	Handle uintptr
	Width  int
	Height int
}

type Options struct {
	Title  string
	Width  int
	Height int
	// UseWARP selects the software rasterizer instead of a hardware adapter.
	UseWARP    bool
	ShaderPath string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "D3D12 Hello Triangle"
	}
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 768
	}
	return o
}

// DefaultShaderPath returns ShaderFile in the directory of the running
// executable.
func DefaultShaderPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), ShaderFile), nil
}

var (
	ErrNoCompatibleAdapter            = errors.New("no compatible adapter")
	ErrDeviceCreationFailed           = errors.New("device creation failed")
	ErrCommandQueueCreationFailed     = errors.New("command queue creation failed")
	ErrSwapChainCreationFailed        = errors.New("swap chain creation failed")
	ErrDescriptorHeapAllocationFailed = errors.New("descriptor heap allocation failed")
	ErrShaderCompilationFailed        = errors.New("shader compilation failed")
	ErrPipelineStateCreationFailed    = errors.New("pipeline state creation failed")
	ErrResourceCreationFailed         = errors.New("resource creation failed")
	ErrMapFailed                      = errors.New("map failed")
	ErrFenceCreationFailed            = errors.New("fence creation failed")
	ErrCommandRecordingFailed         = errors.New("command recording failed")
	ErrPresentFailed                  = errors.New("present failed")
	ErrFenceWaitFailed                = errors.New("fence wait failed")

	ErrNotBound     = errors.New("sample is not bound to a window")
	ErrAlreadyBound = errors.New("sample is already bound to a window")
)
