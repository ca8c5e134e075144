// Package gpu is a D3D12-shaped object model. The renderer is written against
// these interfaces; package d3d implements them on Windows and package
// gputest implements them in memory.
package gpu

import (
	"errors"
	"unsafe"
)

// ErrNotFound is returned by Factory.EnumAdapters past the last adapter.
var ErrNotFound = errors.New("gpu: not found")

// CompileError reports a failed shader compilation together with the
// compiler's diagnostic output.
type CompileError struct {
	Path        string
	EntryPoint  string
	Target      string
	Diagnostics string
	Err         error
}

func (e *CompileError) Error() string {
	msg := "compile " + e.Path + " " + e.EntryPoint + "/" + e.Target
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Diagnostics != "" {
		msg += "\n" + e.Diagnostics
	}
	return msg
}

func (e *CompileError) Unwrap() error { return e.Err }

// API holds the library entry points that exist outside any object.
type API interface {
	EnableDebugLayer() error
	CreateFactory(flags FactoryFlag) (Factory, error)
	// CheckDeviceSupport creates no device; it only reports whether a device
	// at the given level could be created on a.
	CheckDeviceSupport(a Adapter, level FeatureLevel) error
	CreateDevice(a Adapter, level FeatureLevel) (Device, error)
	SerializeRootSignature(desc *RootSignatureDesc) ([]byte, error)
	CompileFromFile(path, entryPoint, target string, flags CompileFlag) ([]byte, error)
	// CreateEvent returns an auto-reset event in the non-signaled state.
	CreateEvent() (Event, error)
}

type Factory interface {
	EnumAdapters(index uint32) (Adapter, error)
	EnumWarpAdapter() (Adapter, error)
	CreateSwapChainForHwnd(queue CommandQueue, hwnd uintptr, desc *SwapChainDesc) (SwapChain, error)
	MakeWindowAssociation(hwnd uintptr, flags WindowAssociationFlag) error
	Release()
}

type Adapter interface {
	Desc() (AdapterDesc, error)
	Release()
}

type Device interface {
	CreateCommandQueue(desc *CommandQueueDesc) (CommandQueue, error)
	CreateCommandAllocator(typ CommandListType) (CommandAllocator, error)
	CreateGraphicsCommandList(typ CommandListType, allocator CommandAllocator, initial PipelineState) (GraphicsCommandList, error)
	CreateDescriptorHeap(desc *DescriptorHeapDesc) (DescriptorHeap, error)
	DescriptorHandleIncrementSize(typ DescriptorHeapType) uint32
	CreateRenderTargetView(r Resource, desc *RenderTargetViewDesc, dest CPUDescriptorHandle)
	CreateRootSignature(blob []byte) (RootSignature, error)
	CreateGraphicsPipelineState(desc *GraphicsPipelineStateDesc) (PipelineState, error)
	CreateCommittedResource(heap *HeapProperties, flags HeapFlag, desc *ResourceDesc, initial ResourceStates) (Resource, error)
	CreateFence(initial uint64, flags FenceFlag) (Fence, error)
	Release()
}

type CommandQueue interface {
	ExecuteCommandLists(lists ...GraphicsCommandList)
	Signal(f Fence, value uint64) error
	Release()
}

type CommandAllocator interface {
	Reset() error
	Release()
}

type GraphicsCommandList interface {
	Reset(allocator CommandAllocator, initial PipelineState) error
	Close() error
	SetGraphicsRootSignature(rs RootSignature)
	RSSetViewports(viewports ...Viewport)
	RSSetScissorRects(rects ...Rect)
	ResourceBarrier(barriers ...ResourceBarrier)
	OMSetRenderTargets(rtvs []CPUDescriptorHandle, singleHandleToDescriptorRange bool, dsv *CPUDescriptorHandle)
	ClearRenderTargetView(rtv CPUDescriptorHandle, color [4]float32, rects ...Rect)
	IASetPrimitiveTopology(t PrimitiveTopology)
	IASetVertexBuffers(startSlot uint32, views ...VertexBufferView)
	DrawInstanced(vertexCountPerInstance, instanceCount, startVertexLocation, startInstanceLocation uint32)
	Release()
}

type SwapChain interface {
	GetBuffer(index uint32) (Resource, error)
	Present(syncInterval uint32, flags PresentFlag) error
	GetCurrentBackBufferIndex() uint32
	Release()
}

type DescriptorHeap interface {
	GetCPUDescriptorHandleForHeapStart() CPUDescriptorHandle
	Release()
}

type Resource interface {
	// Map returns a CPU pointer to the subresource. readRange nil means the
	// whole subresource may be read.
	Map(subresource uint32, readRange *Range) (unsafe.Pointer, error)
	Unmap(subresource uint32, writtenRange *Range)
	GetGPUVirtualAddress() uint64
	Release()
}

type Fence interface {
	GetCompletedValue() uint64
	SetEventOnCompletion(value uint64, e Event) error
	Release()
}

// Event is an OS synchronization event signaled by a fence.
type Event interface {
	// Wait blocks until the event is signaled.
	Wait() error
	Close() error
}

type RootSignature interface {
	Release()
}

type PipelineState interface {
	Release()
}
