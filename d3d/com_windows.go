package d3d

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modDXGI        = windows.NewLazySystemDLL("dxgi.dll")
	modD3D12       = windows.NewLazySystemDLL("d3d12.dll")
	modD3DCompiler = windows.NewLazySystemDLL("d3dcompiler_47.dll")

	procCreateDXGIFactory2          = modDXGI.NewProc("CreateDXGIFactory2")
	procD3D12CreateDevice           = modD3D12.NewProc("D3D12CreateDevice")
	procD3D12GetDebugInterface      = modD3D12.NewProc("D3D12GetDebugInterface")
	procD3D12SerializeRootSignature = modD3D12.NewProc("D3D12SerializeRootSignature")
	procD3DCompileFromFile          = modD3DCompiler.NewProc("D3DCompileFromFile")
)

var (
	iid_IDXGIFactory4             = mustGUID("{1bc6ea02-ef36-464f-bf0c-21ca39e5168a}")
	iid_IDXGIAdapter1             = mustGUID("{29038f61-3839-4626-91fd-086879011a05}")
	iid_IDXGISwapChain3           = mustGUID("{94d99bdb-f1f8-4ab0-b236-7da0170edab1}")
	iid_ID3D12Debug               = mustGUID("{344488b7-6846-474b-b989-f027448245e0}")
	iid_ID3D12Device              = mustGUID("{189819f1-1db6-4b57-be54-1821339b85f7}")
	iid_ID3D12CommandQueue        = mustGUID("{0ec870a6-5d7e-4c22-8cfc-5baae07616ed}")
	iid_ID3D12CommandAllocator    = mustGUID("{6102dee4-af59-4b09-b999-b44d73f09b24}")
	iid_ID3D12GraphicsCommandList = mustGUID("{5b160d0f-ac1b-4185-8ba8-b3ae42a5a455}")
	iid_ID3D12DescriptorHeap      = mustGUID("{8efb471d-616c-4f49-90f7-127bb763fa51}")
	iid_ID3D12RootSignature       = mustGUID("{c54a6b66-72df-4ee8-8be5-a946a1429214}")
	iid_ID3D12PipelineState       = mustGUID("{765a30f3-f624-4c6f-a828-ace948622445}")
	iid_ID3D12Resource            = mustGUID("{696442be-a72e-4059-bc79-5b5c98040fad}")
	iid_ID3D12Fence               = mustGUID("{0a753dcf-c4d8-4b91-adf6-be5a60d95a76}")
)

func mustGUID(s string) *windows.GUID {
	g, err := windows.GUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return &g
}

// loadLibraries reports a missing system DLL up front instead of on the
// first call into it.
func loadLibraries() error {
	for _, dll := range []*windows.LazyDLL{modDXGI, modD3D12, modD3DCompiler} {
		if err := dll.Load(); err != nil {
			return fmt.Errorf("loading %s: %w", dll.Name, err)
		}
	}
	return nil
}

// release drops one reference of any COM object.
func release(obj unsafe.Pointer) uint32 {
	vtbl := *(**iUnknownVtbl)(obj)
	ret, _, _ := syscall.SyscallN(vtbl.Release, uintptr(obj))
	return uint32(ret)
}

// queryInterface stores the iid interface of obj in out, which must be the
// address of a pointer.
func queryInterface(obj unsafe.Pointer, iid *windows.GUID, out unsafe.Pointer) error {
	vtbl := *(**iUnknownVtbl)(obj)
	hr, _, _ := syscall.SyscallN(vtbl.QueryInterface, uintptr(obj), uintptr(unsafe.Pointer(iid)), uintptr(out))
	return check(hr)
}

// foreignError reports an object that did not come from this package.
func foreignError(what string, v any) error {
	return fmt.Errorf("%s of type %T is not a d3d object: %w", what, v, E_INVALIDARG)
}

type ID3DBlob struct {
	vtbl *ID3DBlobVtbl
}

func (obj *ID3DBlob) Release() {
	release(unsafe.Pointer(obj))
}

// Bytes copies the blob's contents into Go memory.
func (obj *ID3DBlob) Bytes() []byte {
	p, _, _ := syscall.SyscallN(obj.vtbl.GetBufferPointer, uintptr(unsafe.Pointer(obj)))
	n, _, _ := syscall.SyscallN(obj.vtbl.GetBufferSize, uintptr(unsafe.Pointer(obj)))
	if p == 0 || n == 0 {
		return nil
	}
	return append([]byte(nil), unsafe.Slice((*byte)(unsafe.Pointer(p)), n)...)
}

// String returns the blob as text up to its first NUL.
func (obj *ID3DBlob) String() string {
	b := obj.Bytes()
	for i, c := range b {
		if c == 0 {
			b = b[:i]
			break
		}
	}
	return string(b)
}
