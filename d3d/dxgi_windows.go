package d3d

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/kirides/hellotriangle/gpu"
)

type IDXGIFactory4 struct {
	vtbl *IDXGIFactory4Vtbl
}

func (obj *IDXGIFactory4) Release() {
	release(unsafe.Pointer(obj))
}

// EnumAdapters returns gpu.ErrNotFound past the last adapter.
func (obj *IDXGIFactory4) EnumAdapters(index uint32) (gpu.Adapter, error) {
	var adapter *IDXGIAdapter1
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.EnumAdapters1,
		uintptr(unsafe.Pointer(obj)),
		uintptr(index),
		uintptr(unsafe.Pointer(&adapter)),
	)
	if HRESULT(uint32(hr)) == DXGI_ERROR_NOT_FOUND {
		return nil, gpu.ErrNotFound
	}
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("EnumAdapters1(%d): %w", index, err)
	}
	return adapter, nil
}

func (obj *IDXGIFactory4) EnumWarpAdapter() (gpu.Adapter, error) {
	var adapter *IDXGIAdapter1
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.EnumWarpAdapter,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(iid_IDXGIAdapter1)),
		uintptr(unsafe.Pointer(&adapter)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("EnumWarpAdapter: %w", err)
	}
	return adapter, nil
}

// CreateSwapChainForHwnd creates a windowed swap chain presenting through
// queue.
func (obj *IDXGIFactory4) CreateSwapChainForHwnd(queue gpu.CommandQueue, hwnd uintptr, desc *gpu.SwapChainDesc) (gpu.SwapChain, error) {
	q, ok := queue.(*ID3D12CommandQueue)
	if !ok {
		return nil, foreignError("command queue", queue)
	}
	native := swapChainDesc(desc)
	var sc1 unsafe.Pointer
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.CreateSwapChainForHwnd,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(q)),
		hwnd,
		uintptr(unsafe.Pointer(&native)),
		0, // no fullscreen description
		0, // no output restriction
		uintptr(unsafe.Pointer(&sc1)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("CreateSwapChainForHwnd: %w", err)
	}
	defer release(sc1)

	var sc *IDXGISwapChain3
	if err := queryInterface(sc1, iid_IDXGISwapChain3, unsafe.Pointer(&sc)); err != nil {
		return nil, fmt.Errorf("QueryInterface(IDXGISwapChain3): %w", err)
	}
	return sc, nil
}

func (obj *IDXGIFactory4) MakeWindowAssociation(hwnd uintptr, flags gpu.WindowAssociationFlag) error {
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.MakeWindowAssociation,
		uintptr(unsafe.Pointer(obj)),
		hwnd,
		uintptr(flags),
	)
	if err := check(hr); err != nil {
		return fmt.Errorf("MakeWindowAssociation: %w", err)
	}
	return nil
}

type IDXGIAdapter1 struct {
	vtbl *IDXGIAdapter1Vtbl
}

func (obj *IDXGIAdapter1) Release() {
	release(unsafe.Pointer(obj))
}

func (obj *IDXGIAdapter1) Desc() (gpu.AdapterDesc, error) {
	var desc _DXGI_ADAPTER_DESC1
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.GetDesc1,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&desc)),
	)
	if err := check(hr); err != nil {
		return gpu.AdapterDesc{}, fmt.Errorf("GetDesc1: %w", err)
	}
	return gpu.AdapterDesc{
		Description:           windows.UTF16ToString(desc.Description[:]),
		VendorID:              desc.VendorID,
		DeviceID:              desc.DeviceID,
		SubSysID:              desc.SubSysID,
		Revision:              desc.Revision,
		DedicatedVideoMemory:  uint64(desc.DedicatedVideoMemory),
		DedicatedSystemMemory: uint64(desc.DedicatedSystemMemory),
		SharedSystemMemory:    uint64(desc.SharedSystemMemory),
		LUID:                  gpu.LUID(desc.AdapterLuid),
		Flags:                 gpu.AdapterFlag(desc.Flags),
	}, nil
}

type IDXGISwapChain3 struct {
	vtbl *IDXGISwapChain3Vtbl
}

func (obj *IDXGISwapChain3) Release() {
	release(unsafe.Pointer(obj))
}

func (obj *IDXGISwapChain3) GetBuffer(index uint32) (gpu.Resource, error) {
	var r *ID3D12Resource
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.GetBuffer,
		uintptr(unsafe.Pointer(obj)),
		uintptr(index),
		uintptr(unsafe.Pointer(iid_ID3D12Resource)),
		uintptr(unsafe.Pointer(&r)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("GetBuffer(%d): %w", index, err)
	}
	return r, nil
}

// Present fails only on error codes; status codes such as an occluded
// window count as success.
func (obj *IDXGISwapChain3) Present(syncInterval uint32, flags gpu.PresentFlag) error {
	hr, _, _ := syscall.SyscallN(
		obj.vtbl.Present,
		uintptr(unsafe.Pointer(obj)),
		uintptr(syncInterval),
		uintptr(flags),
	)
	return check(hr)
}

func (obj *IDXGISwapChain3) GetCurrentBackBufferIndex() uint32 {
	ret, _, _ := syscall.SyscallN(obj.vtbl.GetCurrentBackBufferIndex, uintptr(unsafe.Pointer(obj)))
	return uint32(ret)
}
