package sample

import (
	"fmt"
	"log/slog"

	"github.com/kirides/hellotriangle/gpu"
)

// debugLayer decides, once per New, whether the validation layer is enabled.
var debugLayer = debugBuild

// ClearColor is the render target clear color.
var ClearColor = [4]float32{0.0, 0.2, 0.4, 1.0}

var _ Sample = (*HelloTriangle)(nil)

type HelloTriangle struct {
	api     gpu.API
	opts    Options
	debug   bool
	factory gpu.Factory
	device  gpu.Device
	adapter gpu.AdapterDesc

	res *resources
}

// resources are the objects created by BindToWindow, in creation order.
type resources struct {
	commandQueue      gpu.CommandQueue
	swapChain         gpu.SwapChain
	frameIndex        uint32
	rtvHeap           gpu.DescriptorHeap
	rtvStart          gpu.CPUDescriptorHandle
	rtvDescriptorSize uint32
	renderTargets     [FrameCount]gpu.Resource
	viewport          gpu.Viewport
	scissorRect       gpu.Rect
	commandAllocator  gpu.CommandAllocator
	rootSignature     gpu.RootSignature
	pipelineState     gpu.PipelineState
	commandList       gpu.GraphicsCommandList
	vertexBuffer      gpu.Resource
	vertexBufferView  gpu.VertexBufferView
	fence             gpu.Fence
	fenceValue        uint64
	fenceEvent        gpu.Event
}

// New creates the factory and a device on the selected adapter.
func New(api gpu.API, opts Options) (_ *HelloTriangle, ferr error) {
	s := &HelloTriangle{api: api, opts: opts.withDefaults(), debug: debugLayer}
	defer func() {
		if ferr != nil {
			s.Release()
		}
	}()

	var flags gpu.FactoryFlag
	if s.debug {
		if err := api.EnableDebugLayer(); err != nil {
			slog.Warn("D3D12 debug layer unavailable", "error", err)
		} else {
			slog.Debug("D3D12 debug layer enabled")
			flags |= gpu.FactoryFlagDebug
		}
	}

	factory, err := api.CreateFactory(flags)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateFactory: %w", ErrDeviceCreationFailed, err)
	}
	s.factory = factory

	adapter, err := selectAdapter(api, factory, s.opts.UseWARP)
	if err != nil {
		return nil, err
	}
	defer adapter.Release()
	if s.adapter, err = adapter.Desc(); err != nil {
		return nil, fmt.Errorf("%w: adapter descriptor: %w", ErrDeviceCreationFailed, err)
	}
	slog.Info("using adapter", DescribeAdapter(s.adapter)...)

	device, err := api.CreateDevice(adapter, MinFeatureLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceCreationFailed, err)
	}
	s.device = device
	return s, nil
}

// BindToWindow builds the swap chain, pipeline and vertex buffer for w.
func (s *HelloTriangle) BindToWindow(w Window) (ferr error) {
	if s.res != nil {
		return ErrAlreadyBound
	}
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", w.Width, w.Height)
	}
	r := &resources{}
	defer func() {
		if ferr != nil {
			r.release()
		}
	}()

	queue, err := s.device.CreateCommandQueue(&gpu.CommandQueueDesc{
		Type:     gpu.CommandListTypeDirect,
		Priority: gpu.CommandQueuePriorityNormal,
	})
	if err != nil {
		return fmt.Errorf("%w: CreateCommandQueue: %w", ErrCommandQueueCreationFailed, err)
	}
	r.commandQueue = queue

	if err := s.createSwapChain(r, w); err != nil {
		return err
	}
	if err := s.createRenderTargets(r); err != nil {
		return err
	}

	r.viewport = gpu.Viewport{
		Width:    float32(w.Width),
		Height:   float32(w.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}
	r.scissorRect = gpu.Rect{Right: int32(w.Width), Bottom: int32(w.Height)}

	allocator, err := s.device.CreateCommandAllocator(gpu.CommandListTypeDirect)
	if err != nil {
		return fmt.Errorf("%w: CreateCommandAllocator: %w", ErrCommandQueueCreationFailed, err)
	}
	r.commandAllocator = allocator

	if err := s.createRootSignature(r); err != nil {
		return err
	}
	if err := s.createPipelineState(r); err != nil {
		return err
	}

	list, err := s.device.CreateGraphicsCommandList(gpu.CommandListTypeDirect, r.commandAllocator, r.pipelineState)
	if err != nil {
		return fmt.Errorf("%w: CreateCommandList: %w", ErrCommandQueueCreationFailed, err)
	}
	r.commandList = list
	if err := list.Close(); err != nil {
		return fmt.Errorf("%w: Close: %w", ErrCommandRecordingFailed, err)
	}

	if err := s.createVertexBuffer(r, float32(w.Width)/float32(w.Height)); err != nil {
		return err
	}

	fence, err := s.device.CreateFence(0, gpu.FenceFlagNone)
	if err != nil {
		return fmt.Errorf("%w: CreateFence: %w", ErrFenceCreationFailed, err)
	}
	r.fence = fence
	r.fenceValue = 1

	event, err := s.api.CreateEvent()
	if err != nil {
		return fmt.Errorf("%w: CreateEvent: %w", ErrFenceCreationFailed, err)
	}
	r.fenceEvent = event

	s.res = r
	slog.Debug("bound to window", "width", w.Width, "height", w.Height, "frame_index", r.frameIndex)
	return nil
}

func (s *HelloTriangle) Update() {}

// Render records, submits and presents one frame, then blocks until the GPU
// has finished it.
func (s *HelloTriangle) Render() error {
	r := s.res
	if r == nil {
		return ErrNotBound
	}
	if err := r.populateCommandList(); err != nil {
		return err
	}
	r.commandQueue.ExecuteCommandLists(r.commandList)
	if err := r.swapChain.Present(1, 0); err != nil {
		return fmt.Errorf("%w: %w", ErrPresentFailed, err)
	}
	return r.waitForPreviousFrame()
}

func (s *HelloTriangle) OnKeyDown(key uint8) {}

func (s *HelloTriangle) OnKeyUp(key uint8) {}

func (s *HelloTriangle) Title() string {
	if s.opts.UseWARP {
		return s.opts.Title + " (WARP)"
	}
	return s.opts.Title
}

func (s *HelloTriangle) WindowSize() (width, height int) {
	return s.opts.Width, s.opts.Height
}

// Adapter describes the adapter the device was created on.
func (s *HelloTriangle) Adapter() gpu.AdapterDesc { return s.adapter }

// FrameIndex is the back buffer the next frame renders into.
func (s *HelloTriangle) FrameIndex() uint32 {
	if s.res == nil {
		return 0
	}
	return s.res.frameIndex
}

// FenceValue is the value the next frame will signal.
func (s *HelloTriangle) FenceValue() uint64 {
	if s.res == nil {
		return 0
	}
	return s.res.fenceValue
}

// Release waits for the GPU to go idle and releases everything in reverse
// creation order. It is safe to call more than once.
func (s *HelloTriangle) Release() {
	if s.res != nil {
		if err := s.res.waitForPreviousFrame(); err != nil {
			slog.Warn("could not drain the GPU before release", "error", err)
		}
		s.res.release()
		s.res = nil
	}
	if s.device != nil {
		s.device.Release()
		s.device = nil
	}
	if s.factory != nil {
		s.factory.Release()
		s.factory = nil
	}
}

func (r *resources) release() {
	if r.fenceEvent != nil {
		if err := r.fenceEvent.Close(); err != nil {
			slog.Warn("closing fence event", "error", err)
		}
		r.fenceEvent = nil
	}
	if r.fence != nil {
		r.fence.Release()
		r.fence = nil
	}
	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
		r.vertexBuffer = nil
	}
	if r.commandList != nil {
		r.commandList.Release()
		r.commandList = nil
	}
	if r.pipelineState != nil {
		r.pipelineState.Release()
		r.pipelineState = nil
	}
	if r.rootSignature != nil {
		r.rootSignature.Release()
		r.rootSignature = nil
	}
	if r.commandAllocator != nil {
		r.commandAllocator.Release()
		r.commandAllocator = nil
	}
	for i := len(r.renderTargets) - 1; i >= 0; i-- {
		if r.renderTargets[i] != nil {
			r.renderTargets[i].Release()
			r.renderTargets[i] = nil
		}
	}
	if r.rtvHeap != nil {
		r.rtvHeap.Release()
		r.rtvHeap = nil
	}
	if r.swapChain != nil {
		r.swapChain.Release()
		r.swapChain = nil
	}
	if r.commandQueue != nil {
		r.commandQueue.Release()
		r.commandQueue = nil
	}
}
