package d3d

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/kirides/hellotriangle/gpu"
)

type ID3D12Debug struct {
	vtbl *ID3D12DebugVtbl
}

func (obj *ID3D12Debug) Release() {
	release(unsafe.Pointer(obj))
}

func (obj *ID3D12Debug) EnableDebugLayer() {
	syscall.SyscallN(obj.vtbl.EnableDebugLayer, uintptr(unsafe.Pointer(obj)))
}

type ID3D12Device struct {
	vtbl *ID3D12DeviceVtbl
}

func (obj *ID3D12Device) Release() {
	release(unsafe.Pointer(obj))
}

func (obj *ID3D12Device) CreateCommandQueue(desc *gpu.CommandQueueDesc) (gpu.CommandQueue, error) {
	native := commandQueueDesc(desc)
	var q *ID3D12CommandQueue
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.CreateCommandQueue,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&native)),
		uintptr(unsafe.Pointer(iid_ID3D12CommandQueue)),
		uintptr(unsafe.Pointer(&q)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("CreateCommandQueue: %w", err)
	}
	return q, nil
}

func (obj *ID3D12Device) CreateCommandAllocator(typ gpu.CommandListType) (gpu.CommandAllocator, error) {
	var a *ID3D12CommandAllocator
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.CreateCommandAllocator,
		uintptr(unsafe.Pointer(obj)),
		uintptr(typ),
		uintptr(unsafe.Pointer(iid_ID3D12CommandAllocator)),
		uintptr(unsafe.Pointer(&a)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("CreateCommandAllocator: %w", err)
	}
	return a, nil
}

// CreateGraphicsCommandList returns a list in the recording state.
func (obj *ID3D12Device) CreateGraphicsCommandList(typ gpu.CommandListType, allocator gpu.CommandAllocator, initial gpu.PipelineState) (gpu.GraphicsCommandList, error) {
	a, ok := allocator.(*ID3D12CommandAllocator)
	if !ok {
		return nil, foreignError("command allocator", allocator)
	}
	pso, err := pipelineStatePtr(initial)
	if err != nil {
		return nil, err
	}
	var l *ID3D12GraphicsCommandList
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.CreateCommandList,
		uintptr(unsafe.Pointer(obj)),
		0, // node mask
		uintptr(typ),
		uintptr(unsafe.Pointer(a)),
		pso,
		uintptr(unsafe.Pointer(iid_ID3D12GraphicsCommandList)),
		uintptr(unsafe.Pointer(&l)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("CreateCommandList: %w", err)
	}
	return l, nil
}

func (obj *ID3D12Device) CreateDescriptorHeap(desc *gpu.DescriptorHeapDesc) (gpu.DescriptorHeap, error) {
	native := descriptorHeapDesc(desc)
	var h *ID3D12DescriptorHeap
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.CreateDescriptorHeap,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&native)),
		uintptr(unsafe.Pointer(iid_ID3D12DescriptorHeap)),
		uintptr(unsafe.Pointer(&h)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("CreateDescriptorHeap: %w", err)
	}
	return h, nil
}

func (obj *ID3D12Device) DescriptorHandleIncrementSize(typ gpu.DescriptorHeapType) uint32 {
	ret, _, _ := syscall.SyscallN(
		obj.vtbl.GetDescriptorHandleIncrementSize,
		uintptr(unsafe.Pointer(obj)),
		uintptr(typ),
	)
	return uint32(ret)
}

// CreateRenderTargetView writes a view of r into the heap slot dest. A nil
// desc inherits the resource's format.
func (obj *ID3D12Device) CreateRenderTargetView(r gpu.Resource, desc *gpu.RenderTargetViewDesc, dest gpu.CPUDescriptorHandle) {
	res, _ := r.(*ID3D12Resource)
	native := renderTargetViewDesc(desc)
	syscall.SyscallN(
		obj.vtbl.CreateRenderTargetView,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(res)),
		uintptr(unsafe.Pointer(native)),
		dest.Ptr,
	)
	runtime.KeepAlive(native)
}

func (obj *ID3D12Device) CreateRootSignature(blob []byte) (gpu.RootSignature, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("CreateRootSignature: empty blob: %w", E_INVALIDARG)
	}
	var rs *ID3D12RootSignature
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.CreateRootSignature,
		uintptr(unsafe.Pointer(obj)),
		0, // node mask
		uintptr(unsafe.Pointer(&blob[0])),
		uintptr(len(blob)),
		uintptr(unsafe.Pointer(iid_ID3D12RootSignature)),
		uintptr(unsafe.Pointer(&rs)),
	)
	runtime.KeepAlive(blob)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("CreateRootSignature: %w", err)
	}
	return rs, nil
}

func (obj *ID3D12Device) CreateGraphicsPipelineState(desc *gpu.GraphicsPipelineStateDesc) (gpu.PipelineState, error) {
	var root uintptr
	if desc.RootSignature != nil {
		rs, ok := desc.RootSignature.(*ID3D12RootSignature)
		if !ok {
			return nil, foreignError("root signature", desc.RootSignature)
		}
		root = uintptr(unsafe.Pointer(rs))
	}
	native, err := newPipelineStateDesc(desc, root)
	if err != nil {
		return nil, fmt.Errorf("CreateGraphicsPipelineState: %w: %w", E_INVALIDARG, err)
	}
	var pso *ID3D12PipelineState
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.CreateGraphicsPipelineState,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&native.native)),
		uintptr(unsafe.Pointer(iid_ID3D12PipelineState)),
		uintptr(unsafe.Pointer(&pso)),
	)
	runtime.KeepAlive(native)
	runtime.KeepAlive(desc)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("CreateGraphicsPipelineState: %w", err)
	}
	return pso, nil
}

func (obj *ID3D12Device) CreateCommittedResource(heap *gpu.HeapProperties, flags gpu.HeapFlag, desc *gpu.ResourceDesc, initial gpu.ResourceStates) (gpu.Resource, error) {
	props := heapProperties(heap)
	native := resourceDesc(desc)
	var r *ID3D12Resource
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.CreateCommittedResource,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&props)),
		uintptr(flags),
		uintptr(unsafe.Pointer(&native)),
		uintptr(initial),
		0, // no optimized clear value
		uintptr(unsafe.Pointer(iid_ID3D12Resource)),
		uintptr(unsafe.Pointer(&r)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("CreateCommittedResource: %w", err)
	}
	return r, nil
}

func (obj *ID3D12Device) CreateFence(initial uint64, flags gpu.FenceFlag) (gpu.Fence, error) {
	var f *ID3D12Fence
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.CreateFence,
		uintptr(unsafe.Pointer(obj)),
		uintptr(initial),
		uintptr(flags),
		uintptr(unsafe.Pointer(iid_ID3D12Fence)),
		uintptr(unsafe.Pointer(&f)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("CreateFence: %w", err)
	}
	return f, nil
}

// GetDeviceRemovedReason is S_OK while the device is usable.
func (obj *ID3D12Device) GetDeviceRemovedReason() error {
	hr, _, _ := syscall.SyscallN(obj.vtbl.GetDeviceRemovedReason, uintptr(unsafe.Pointer(obj)))
	return check(hr)
}

type ID3D12CommandQueue struct {
	vtbl *ID3D12CommandQueueVtbl
}

func (obj *ID3D12CommandQueue) Release() {
	release(unsafe.Pointer(obj))
}

func (obj *ID3D12CommandQueue) ExecuteCommandLists(lists ...gpu.GraphicsCommandList) {
	if len(lists) == 0 {
		return
	}
	ptrs := make([]uintptr, len(lists))
	for i, l := range lists {
		cl, ok := l.(*ID3D12GraphicsCommandList)
		if !ok {
			panic(foreignError("command list", l))
		}
		ptrs[i] = uintptr(unsafe.Pointer(cl))
	}
	syscall.SyscallN(
		obj.vtbl.ExecuteCommandLists,
		uintptr(unsafe.Pointer(obj)),
		uintptr(len(ptrs)),
		uintptr(unsafe.Pointer(&ptrs[0])),
	)
	runtime.KeepAlive(ptrs)
}

// Signal sets f to value once the queue has finished all prior work.
func (obj *ID3D12CommandQueue) Signal(f gpu.Fence, value uint64) error {
	fence, ok := f.(*ID3D12Fence)
	if !ok {
		return foreignError("fence", f)
	}
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.Signal,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(fence)),
		uintptr(value),
	)
	return check(hr)
}

type ID3D12CommandAllocator struct {
	vtbl *ID3D12CommandAllocatorVtbl
}

func (obj *ID3D12CommandAllocator) Release() {
	release(unsafe.Pointer(obj))
}

func (obj *ID3D12CommandAllocator) Reset() error {
	hr, _, _ := syscall.SyscallN(obj.vtbl.Reset, uintptr(unsafe.Pointer(obj)))
	return check(hr)
}

type ID3D12GraphicsCommandList struct {
	vtbl *ID3D12GraphicsCommandListVtbl
}

func (obj *ID3D12GraphicsCommandList) Release() {
	release(unsafe.Pointer(obj))
}

func (obj *ID3D12GraphicsCommandList) Close() error {
	hr, _, _ := syscall.SyscallN(obj.vtbl.Close, uintptr(unsafe.Pointer(obj)))
	return check(hr)
}

func (obj *ID3D12GraphicsCommandList) Reset(allocator gpu.CommandAllocator, initial gpu.PipelineState) error {
	a, ok := allocator.(*ID3D12CommandAllocator)
	if !ok {
		return foreignError("command allocator", allocator)
	}
	pso, err := pipelineStatePtr(initial)
	if err != nil {
		return err
	}
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.Reset,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(a)),
		pso,
	)
	return check(hr)
}

func (obj *ID3D12GraphicsCommandList) SetGraphicsRootSignature(rs gpu.RootSignature) {
	root, _ := rs.(*ID3D12RootSignature)
	syscall.SyscallN(
		obj.vtbl.SetGraphicsRootSignature,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(root)),
	)
}

func (obj *ID3D12GraphicsCommandList) RSSetViewports(vs ...gpu.Viewport) {
	native := viewports(vs)
	syscall.SyscallN(
		obj.vtbl.RSSetViewports,
		uintptr(unsafe.Pointer(obj)),
		uintptr(len(native)),
		uintptr(unsafe.Pointer(unsafe.SliceData(native))),
	)
	runtime.KeepAlive(native)
}

func (obj *ID3D12GraphicsCommandList) RSSetScissorRects(rs ...gpu.Rect) {
	native := rects(rs)
	syscall.SyscallN(
		obj.vtbl.RSSetScissorRects,
		uintptr(unsafe.Pointer(obj)),
		uintptr(len(native)),
		uintptr(unsafe.Pointer(unsafe.SliceData(native))),
	)
	runtime.KeepAlive(native)
}

func (obj *ID3D12GraphicsCommandList) ResourceBarrier(barriers ...gpu.ResourceBarrier) {
	native := transitionBarriers(barriers, func(r gpu.Resource) uintptr {
		res, _ := r.(*ID3D12Resource)
		return uintptr(unsafe.Pointer(res))
	})
	syscall.SyscallN(
		obj.vtbl.ResourceBarrier,
		uintptr(unsafe.Pointer(obj)),
		uintptr(len(native)),
		uintptr(unsafe.Pointer(unsafe.SliceData(native))),
	)
	runtime.KeepAlive(native)
}

func (obj *ID3D12GraphicsCommandList) OMSetRenderTargets(rtvs []gpu.CPUDescriptorHandle, singleHandleToDescriptorRange bool, dsv *gpu.CPUDescriptorHandle) {
	handles := make([]_D3D12_CPU_DESCRIPTOR_HANDLE, len(rtvs))
	for i, h := range rtvs {
		handles[i] = _D3D12_CPU_DESCRIPTOR_HANDLE(h)
	}
	var depth *_D3D12_CPU_DESCRIPTOR_HANDLE
	if dsv != nil {
		depth = &_D3D12_CPU_DESCRIPTOR_HANDLE{Ptr: dsv.Ptr}
	}
	syscall.SyscallN(
		obj.vtbl.OMSetRenderTargets,
		uintptr(unsafe.Pointer(obj)),
		uintptr(len(handles)),
		uintptr(unsafe.Pointer(unsafe.SliceData(handles))),
		uintptr(boolToInt32(singleHandleToDescriptorRange)),
		uintptr(unsafe.Pointer(depth)),
	)
	runtime.KeepAlive(handles)
	runtime.KeepAlive(depth)
}

func (obj *ID3D12GraphicsCommandList) ClearRenderTargetView(rtv gpu.CPUDescriptorHandle, color [4]float32, rs ...gpu.Rect) {
	native := rects(rs)
	syscall.SyscallN(
		obj.vtbl.ClearRenderTargetView,
		uintptr(unsafe.Pointer(obj)),
		rtv.Ptr,
		uintptr(unsafe.Pointer(&color)),
		uintptr(len(native)),
		uintptr(unsafe.Pointer(unsafe.SliceData(native))),
	)
	runtime.KeepAlive(native)
}

func (obj *ID3D12GraphicsCommandList) IASetPrimitiveTopology(t gpu.PrimitiveTopology) {
	syscall.SyscallN(obj.vtbl.IASetPrimitiveTopology, uintptr(unsafe.Pointer(obj)), uintptr(t))
}

func (obj *ID3D12GraphicsCommandList) IASetVertexBuffers(startSlot uint32, views ...gpu.VertexBufferView) {
	native := vertexBufferViews(views)
	syscall.SyscallN(
		obj.vtbl.IASetVertexBuffers,
		uintptr(unsafe.Pointer(obj)),
		uintptr(startSlot),
		uintptr(len(native)),
		uintptr(unsafe.Pointer(unsafe.SliceData(native))),
	)
	runtime.KeepAlive(native)
}

func (obj *ID3D12GraphicsCommandList) DrawInstanced(vertexCountPerInstance, instanceCount, startVertexLocation, startInstanceLocation uint32) {
	syscall.SyscallN(
		obj.vtbl.DrawInstanced,
		uintptr(unsafe.Pointer(obj)),
		uintptr(vertexCountPerInstance),
		uintptr(instanceCount),
		uintptr(startVertexLocation),
		uintptr(startInstanceLocation),
	)
}

type ID3D12DescriptorHeap struct {
	vtbl *ID3D12DescriptorHeapVtbl
}

func (obj *ID3D12DescriptorHeap) Release() {
	release(unsafe.Pointer(obj))
}

// GetCPUDescriptorHandleForHeapStart returns its struct through a hidden
// out pointer, as C++ methods returning aggregates do.
func (obj *ID3D12DescriptorHeap) GetCPUDescriptorHandleForHeapStart() gpu.CPUDescriptorHandle {
	var h _D3D12_CPU_DESCRIPTOR_HANDLE
	syscall.SyscallN(
		obj.vtbl.GetCPUDescriptorHandleForHeapStart,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&h)),
	)
	return gpu.CPUDescriptorHandle(h)
}

type ID3D12Resource struct {
	vtbl *ID3D12ResourceVtbl
}

func (obj *ID3D12Resource) Release() {
	release(unsafe.Pointer(obj))
}

func (obj *ID3D12Resource) Map(subresource uint32, readRange *gpu.Range) (unsafe.Pointer, error) {
	var rng *_D3D12_RANGE
	if readRange != nil {
		rng = &_D3D12_RANGE{Begin: readRange.Begin, End: readRange.End}
	}
	var data unsafe.Pointer
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.Map,
		uintptr(unsafe.Pointer(obj)),
		uintptr(subresource),
		uintptr(unsafe.Pointer(rng)),
		uintptr(unsafe.Pointer(&data)),
	)
	runtime.KeepAlive(rng)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("Map(%d): %w", subresource, err)
	}
	return data, nil
}

func (obj *ID3D12Resource) Unmap(subresource uint32, writtenRange *gpu.Range) {
	var rng *_D3D12_RANGE
	if writtenRange != nil {
		rng = &_D3D12_RANGE{Begin: writtenRange.Begin, End: writtenRange.End}
	}
	syscall.SyscallN(
		obj.vtbl.Unmap,
		uintptr(unsafe.Pointer(obj)),
		uintptr(subresource),
		uintptr(unsafe.Pointer(rng)),
	)
	runtime.KeepAlive(rng)
}

func (obj *ID3D12Resource) GetGPUVirtualAddress() uint64 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.GetGPUVirtualAddress, uintptr(unsafe.Pointer(obj)))
	return uint64(ret)
}

type ID3D12Fence struct {
	vtbl *ID3D12FenceVtbl
}

func (obj *ID3D12Fence) Release() {
	release(unsafe.Pointer(obj))
}

// GetCompletedValue reads all ones once the device is removed.
func (obj *ID3D12Fence) GetCompletedValue() uint64 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.GetCompletedValue, uintptr(unsafe.Pointer(obj)))
	return uint64(ret)
}

func (obj *ID3D12Fence) SetEventOnCompletion(value uint64, e gpu.Event) error {
	ev, ok := e.(*Event)
	if !ok {
		return foreignError("event", e)
	}
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.SetEventOnCompletion,
		uintptr(unsafe.Pointer(obj)),
		uintptr(value),
		uintptr(ev.handle),
	)
	return check(hr)
}

type ID3D12RootSignature struct {
	vtbl *ID3D12RootSignatureVtbl
}

func (obj *ID3D12RootSignature) Release() {
	release(unsafe.Pointer(obj))
}

type ID3D12PipelineState struct {
	vtbl *ID3D12PipelineStateVtbl
}

func (obj *ID3D12PipelineState) Release() {
	release(unsafe.Pointer(obj))
}

// pipelineStatePtr maps an optional pipeline state to its COM pointer.
func pipelineStatePtr(p gpu.PipelineState) (uintptr, error) {
	if p == nil {
		return 0, nil
	}
	pso, ok := p.(*ID3D12PipelineState)
	if !ok {
		return 0, foreignError("pipeline state", p)
	}
	return uintptr(unsafe.Pointer(pso)), nil
}
