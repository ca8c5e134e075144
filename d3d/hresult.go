package d3d

import "strconv"

// HRESULT is the status returned by COM methods. Failed values are
// usable as errors.
type HRESULT uint32

const (
	S_OK    HRESULT = 0
	S_FALSE HRESULT = 1

	E_NOTIMPL                           HRESULT = 0x80004001
	E_NOINTERFACE                       HRESULT = 0x80004002
	E_POINTER                           HRESULT = 0x80004003
	E_FAIL                              HRESULT = 0x80004005
	E_OUTOFMEMORY                       HRESULT = 0x8007000E
	E_INVALIDARG                        HRESULT = 0x80070057
	DXGI_ERROR_INVALID_CALL             HRESULT = 0x887A0001
	DXGI_ERROR_NOT_FOUND                HRESULT = 0x887A0002
	DXGI_ERROR_UNSUPPORTED              HRESULT = 0x887A0004
	DXGI_ERROR_DEVICE_REMOVED           HRESULT = 0x887A0005
	DXGI_ERROR_DEVICE_HUNG              HRESULT = 0x887A0006
	DXGI_ERROR_DEVICE_RESET             HRESULT = 0x887A0007
	DXGI_ERROR_WAS_STILL_DRAWING        HRESULT = 0x887A000A
	DXGI_ERROR_DRIVER_INTERNAL_ERROR    HRESULT = 0x887A0020
	DXGI_ERROR_ACCESS_LOST              HRESULT = 0x887A0026
	DXGI_ERROR_WAIT_TIMEOUT             HRESULT = 0x887A0027
	D3D12_ERROR_ADAPTER_NOT_FOUND       HRESULT = 0x887E0001
	D3D12_ERROR_DRIVER_VERSION_MISMATCH HRESULT = 0x887E0002
)

func (hr HRESULT) Failed() bool { return int32(hr) < 0 }

func (hr HRESULT) Error() string {
	switch hr {
	case S_OK:
		return "S_OK"
	case S_FALSE:
		return "S_FALSE"
	case E_NOTIMPL:
		return "E_NOTIMPL"
	case E_NOINTERFACE:
		return "E_NOINTERFACE"
	case E_POINTER:
		return "E_POINTER"
	case E_FAIL:
		return "E_FAIL"
	case E_OUTOFMEMORY:
		return "E_OUTOFMEMORY"
	case E_INVALIDARG:
		return "E_INVALIDARG"
	case DXGI_ERROR_INVALID_CALL:
		return "DXGI_ERROR_INVALID_CALL"
	case DXGI_ERROR_NOT_FOUND:
		return "DXGI_ERROR_NOT_FOUND"
	case DXGI_ERROR_UNSUPPORTED:
		return "DXGI_ERROR_UNSUPPORTED"
	case DXGI_ERROR_DEVICE_REMOVED:
		return "DXGI_ERROR_DEVICE_REMOVED"
	case DXGI_ERROR_DEVICE_HUNG:
		return "DXGI_ERROR_DEVICE_HUNG"
	case DXGI_ERROR_DEVICE_RESET:
		return "DXGI_ERROR_DEVICE_RESET"
	case DXGI_ERROR_WAS_STILL_DRAWING:
		return "DXGI_ERROR_WAS_STILL_DRAWING"
	case DXGI_ERROR_DRIVER_INTERNAL_ERROR:
		return "DXGI_ERROR_DRIVER_INTERNAL_ERROR"
	case DXGI_ERROR_ACCESS_LOST:
		return "DXGI_ERROR_ACCESS_LOST"
	case DXGI_ERROR_WAIT_TIMEOUT:
		return "DXGI_ERROR_WAIT_TIMEOUT"
	case D3D12_ERROR_ADAPTER_NOT_FOUND:
		return "D3D12_ERROR_ADAPTER_NOT_FOUND"
	case D3D12_ERROR_DRIVER_VERSION_MISMATCH:
		return "D3D12_ERROR_DRIVER_VERSION_MISMATCH"
	}

	return "0x" + strconv.FormatUint(uint64(hr), 16)
}

func failed(hr uintptr) bool {
	return HRESULT(uint32(hr)).Failed()
}

// check turns a raw syscall result into nil or an HRESULT error.
func check(hr uintptr) error {
	if failed(hr) {
		return HRESULT(uint32(hr))
	}
	return nil
}
