package d3d

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/kirides/hellotriangle/gpu"
)

// Runtime is the D3D12 implementation of gpu.API.
type Runtime struct{}

var _ gpu.API = (*Runtime)(nil)

// NewRuntime loads dxgi, d3d12 and the shader compiler.
func NewRuntime() (*Runtime, error) {
	if err := loadLibraries(); err != nil {
		return nil, err
	}
	return &Runtime{}, nil
}

// EnableDebugLayer must run before any device is created. It fails when the
// graphics tools feature is not installed.
func (*Runtime) EnableDebugLayer() error {
	var debug *ID3D12Debug
	hr, _, _ := procD3D12GetDebugInterface.Call(
		uintptr(unsafe.Pointer(iid_ID3D12Debug)),
		uintptr(unsafe.Pointer(&debug)),
	)
	if err := check(hr); err != nil {
		return fmt.Errorf("D3D12GetDebugInterface: %w", err)
	}
	defer debug.Release()
	debug.EnableDebugLayer()
	return nil
}

func (*Runtime) CreateFactory(flags gpu.FactoryFlag) (gpu.Factory, error) {
	var factory *IDXGIFactory4
	hr, _, _ := procCreateDXGIFactory2.Call(
		uintptr(flags),
		uintptr(unsafe.Pointer(iid_IDXGIFactory4)),
		uintptr(unsafe.Pointer(&factory)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("CreateDXGIFactory2: %w", err)
	}
	return factory, nil
}

// CheckDeviceSupport calls D3D12CreateDevice without an output pointer, which
// tests for support without creating a device.
func (*Runtime) CheckDeviceSupport(a gpu.Adapter, level gpu.FeatureLevel) error {
	adapter, ok := a.(*IDXGIAdapter1)
	if !ok {
		return foreignError("adapter", a)
	}
	hr, _, _ := procD3D12CreateDevice.Call(
		uintptr(unsafe.Pointer(adapter)),
		uintptr(level),
		uintptr(unsafe.Pointer(iid_ID3D12Device)),
		0,
	)
	return check(hr)
}

func (*Runtime) CreateDevice(a gpu.Adapter, level gpu.FeatureLevel) (gpu.Device, error) {
	adapter, ok := a.(*IDXGIAdapter1)
	if !ok {
		return nil, foreignError("adapter", a)
	}
	var device *ID3D12Device
	hr, _, _ := procD3D12CreateDevice.Call(
		uintptr(unsafe.Pointer(adapter)),
		uintptr(level),
		uintptr(unsafe.Pointer(iid_ID3D12Device)),
		uintptr(unsafe.Pointer(&device)),
	)
	if err := check(hr); err != nil {
		return nil, fmt.Errorf("D3D12CreateDevice: %w", err)
	}
	return device, nil
}

// SerializeRootSignature encodes desc as a version 1.0 root signature.
func (*Runtime) SerializeRootSignature(desc *gpu.RootSignatureDesc) ([]byte, error) {
	native := rootSignatureDesc(desc)
	var blob, errBlob *ID3DBlob
	hr, _, _ := procD3D12SerializeRootSignature.Call(
		uintptr(unsafe.Pointer(&native)),
		D3D_ROOT_SIGNATURE_VERSION_1,
		uintptr(unsafe.Pointer(&blob)),
		uintptr(unsafe.Pointer(&errBlob)),
	)
	if errBlob != nil {
		defer errBlob.Release()
	}
	if err := check(hr); err != nil {
		if errBlob != nil {
			return nil, fmt.Errorf("D3D12SerializeRootSignature: %w: %s", err, errBlob.String())
		}
		return nil, fmt.Errorf("D3D12SerializeRootSignature: %w", err)
	}
	defer blob.Release()
	return blob.Bytes(), nil
}

// CompileFromFile compiles one entry point of an HLSL file. Failures come
// back as *gpu.CompileError carrying the compiler's diagnostics.
func (*Runtime) CompileFromFile(path, entryPoint, target string, flags gpu.CompileFlag) ([]byte, error) {
	compileErr := func(err error, diagnostics string) error {
		return &gpu.CompileError{
			Path:        path,
			EntryPoint:  entryPoint,
			Target:      target,
			Diagnostics: diagnostics,
			Err:         err,
		}
	}
	wpath, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, compileErr(err, "")
	}
	entry, err := windows.BytePtrFromString(entryPoint)
	if err != nil {
		return nil, compileErr(err, "")
	}
	tgt, err := windows.BytePtrFromString(target)
	if err != nil {
		return nil, compileErr(err, "")
	}

	var code, errBlob *ID3DBlob
	hr, _, _ := procD3DCompileFromFile.Call(
		uintptr(unsafe.Pointer(wpath)),
		0, // no macros
		0, // no include handler
		uintptr(unsafe.Pointer(entry)),
		uintptr(unsafe.Pointer(tgt)),
		uintptr(flags),
		0,
		uintptr(unsafe.Pointer(&code)),
		uintptr(unsafe.Pointer(&errBlob)),
	)
	var diagnostics string
	if errBlob != nil {
		diagnostics = errBlob.String()
		errBlob.Release()
	}
	if err := check(hr); err != nil {
		return nil, compileErr(err, diagnostics)
	}
	defer code.Release()
	if diagnostics != "" {
		slog.Warn("shader compiled with warnings", "path", path, "entry", entryPoint, "diagnostics", diagnostics)
	}
	return code.Bytes(), nil
}

func (*Runtime) CreateEvent() (gpu.Event, error) {
	h, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateEvent: %w", err)
	}
	return &Event{handle: h}, nil
}

// Event is an auto-reset Win32 event.
type Event struct {
	handle windows.Handle
}

var errEventClosed = errors.New("event closed")

func (e *Event) Wait() error {
	if e.handle == 0 {
		return errEventClosed
	}
	ev, err := windows.WaitForSingleObject(e.handle, windows.INFINITE)
	if err != nil {
		return fmt.Errorf("WaitForSingleObject: %w", err)
	}
	if ev != windows.WAIT_OBJECT_0 {
		return fmt.Errorf("WaitForSingleObject: unexpected result %#x", ev)
	}
	return nil
}

// Close is idempotent.
func (e *Event) Close() error {
	if e.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(e.handle)
	e.handle = 0
	return err
}

var (
	_ gpu.Factory             = (*IDXGIFactory4)(nil)
	_ gpu.Adapter             = (*IDXGIAdapter1)(nil)
	_ gpu.SwapChain           = (*IDXGISwapChain3)(nil)
	_ gpu.Device              = (*ID3D12Device)(nil)
	_ gpu.CommandQueue        = (*ID3D12CommandQueue)(nil)
	_ gpu.CommandAllocator    = (*ID3D12CommandAllocator)(nil)
	_ gpu.GraphicsCommandList = (*ID3D12GraphicsCommandList)(nil)
	_ gpu.DescriptorHeap      = (*ID3D12DescriptorHeap)(nil)
	_ gpu.Resource            = (*ID3D12Resource)(nil)
	_ gpu.Fence               = (*ID3D12Fence)(nil)
	_ gpu.RootSignature       = (*ID3D12RootSignature)(nil)
	_ gpu.PipelineState       = (*ID3D12PipelineState)(nil)
	_ gpu.Event               = (*Event)(nil)
)
