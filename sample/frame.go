package sample

import (
	"fmt"

	"github.com/kirides/hellotriangle/gpu"
)

// populateCommandList records one frame into the back buffer at frameIndex.
// The allocator is only reset after waitForPreviousFrame has seen the GPU
// finish the previous frame.
func (r *resources) populateCommandList() error {
	if int(r.frameIndex) >= len(r.renderTargets) {
		return fmt.Errorf("%w: back buffer index %d out of range", ErrCommandRecordingFailed, r.frameIndex)
	}
	if err := r.commandAllocator.Reset(); err != nil {
		return fmt.Errorf("%w: CommandAllocator.Reset: %w", ErrCommandRecordingFailed, err)
	}
	l := r.commandList
	if err := l.Reset(r.commandAllocator, r.pipelineState); err != nil {
		return fmt.Errorf("%w: CommandList.Reset: %w", ErrCommandRecordingFailed, err)
	}

	l.SetGraphicsRootSignature(r.rootSignature)
	l.RSSetViewports(r.viewport)
	l.RSSetScissorRects(r.scissorRect)

	backBuffer := r.renderTargets[r.frameIndex]
	l.ResourceBarrier(gpu.TransitionBarrier(backBuffer, gpu.ResourceStatePresent, gpu.ResourceStateRenderTarget))

	rtv := r.rtvHandle(r.frameIndex)
	l.OMSetRenderTargets([]gpu.CPUDescriptorHandle{rtv}, false, nil)
	l.ClearRenderTargetView(rtv, ClearColor)
	l.IASetPrimitiveTopology(gpu.PrimitiveTopologyTriangleList)
	l.IASetVertexBuffers(0, r.vertexBufferView)
	l.DrawInstanced(3, 1, 0, 0)

	l.ResourceBarrier(gpu.TransitionBarrier(backBuffer, gpu.ResourceStateRenderTarget, gpu.ResourceStatePresent))

	if err := l.Close(); err != nil {
		return fmt.Errorf("%w: CommandList.Close: %w", ErrCommandRecordingFailed, err)
	}
	return nil
}

// waitForPreviousFrame signals the fence after everything submitted so far
// and blocks until the GPU reaches it. Only one frame is ever in flight.
func (r *resources) waitForPreviousFrame() error {
	fence := r.fenceValue
	if err := r.commandQueue.Signal(r.fence, fence); err != nil {
		return fmt.Errorf("%w: Signal(%d): %w", ErrFenceWaitFailed, fence, err)
	}
	r.fenceValue++

	if r.fence.GetCompletedValue() < fence {
		if err := r.fence.SetEventOnCompletion(fence, r.fenceEvent); err != nil {
			return fmt.Errorf("%w: SetEventOnCompletion(%d): %w", ErrFenceWaitFailed, fence, err)
		}
		if err := r.fenceEvent.Wait(); err != nil {
			return fmt.Errorf("%w: %w", ErrFenceWaitFailed, err)
		}
	}

	r.frameIndex = r.swapChain.GetCurrentBackBufferIndex()
	return nil
}
