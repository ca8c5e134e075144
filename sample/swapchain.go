package sample

import (
	"fmt"

	"github.com/kirides/hellotriangle/gpu"
)

// BackBufferFormat is the format of the swap chain and of the pipeline's
// only render target.
const BackBufferFormat = gpu.FormatR8G8B8A8Unorm

func swapChainDesc(w Window) gpu.SwapChainDesc {
	return gpu.SwapChainDesc{
		BufferCount: FrameCount,
		Width:       uint32(w.Width),
		Height:      uint32(w.Height),
		Format:      BackBufferFormat,
		BufferUsage: gpu.UsageRenderTargetOutput,
		SwapEffect:  gpu.SwapEffectFlipDiscard,
		SampleDesc:  gpu.SampleDesc{Count: 1, Quality: 0},
	}
}

// createSwapChain presents through r.commandQueue into w. Alt+Enter
// fullscreen switching is disabled for the window.
func (s *HelloTriangle) createSwapChain(r *resources, w Window) error {
	desc := swapChainDesc(w)
	sc, err := s.factory.CreateSwapChainForHwnd(r.commandQueue, w.Handle, &desc)
	if err != nil {
		return fmt.Errorf("%w: CreateSwapChainForHwnd: %w", ErrSwapChainCreationFailed, err)
	}
	r.swapChain = sc

	if err := s.factory.MakeWindowAssociation(w.Handle, gpu.WindowAssociationNoAltEnter); err != nil {
		return fmt.Errorf("%w: MakeWindowAssociation: %w", ErrSwapChainCreationFailed, err)
	}
	r.frameIndex = sc.GetCurrentBackBufferIndex()
	return nil
}

// createRenderTargets allocates one RTV per back buffer. Slot i of the heap
// describes back buffer i.
func (s *HelloTriangle) createRenderTargets(r *resources) error {
	heap, err := s.device.CreateDescriptorHeap(&gpu.DescriptorHeapDesc{
		Type:           gpu.DescriptorHeapTypeRTV,
		NumDescriptors: FrameCount,
		Flags:          gpu.DescriptorHeapFlagNone,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDescriptorHeapAllocationFailed, err)
	}
	r.rtvHeap = heap
	r.rtvDescriptorSize = s.device.DescriptorHandleIncrementSize(gpu.DescriptorHeapTypeRTV)
	r.rtvStart = heap.GetCPUDescriptorHandleForHeapStart()

	for i := range r.renderTargets {
		buf, err := r.swapChain.GetBuffer(uint32(i))
		if err != nil {
			return fmt.Errorf("%w: GetBuffer(%d): %w", ErrSwapChainCreationFailed, i, err)
		}
		r.renderTargets[i] = buf
		s.device.CreateRenderTargetView(buf, nil, r.rtvHandle(uint32(i)))
	}
	return nil
}

func (r *resources) rtvHandle(i uint32) gpu.CPUDescriptorHandle {
	return r.rtvStart.Offset(int(i), r.rtvDescriptorSize)
}
