package d3d

const (
	DXGI_CREATE_FACTORY_DEBUG = 0x01

	DXGI_ADAPTER_FLAG_NONE     = 0
	DXGI_ADAPTER_FLAG_REMOTE   = 1
	DXGI_ADAPTER_FLAG_SOFTWARE = 2

	DXGI_USAGE_RENDER_TARGET_OUTPUT = 0x00000020

	DXGI_SWAP_EFFECT_FLIP_DISCARD = 4

	DXGI_MWA_NO_ALT_ENTER = 1 << 1
)

type _DXGI_SAMPLE_DESC struct {
	Count   uint32
	Quality uint32
}

type _LUID struct {
	LowPart  uint32
	HighPart int32
}

type _DXGI_ADAPTER_DESC1 struct {
	Description           [128]uint16
	VendorID              uint32
	DeviceID              uint32
	SubSysID              uint32
	Revision              uint32
	DedicatedVideoMemory  uintptr
	DedicatedSystemMemory uintptr
	SharedSystemMemory    uintptr
	AdapterLuid           _LUID
	Flags                 uint32
}

type _DXGI_SWAP_CHAIN_DESC1 struct {
	Width       uint32
	Height      uint32
	Format      uint32 // DXGI_FORMAT
	Stereo      int32  // BOOL
	SampleDesc  _DXGI_SAMPLE_DESC
	BufferUsage uint32
	BufferCount uint32
	Scaling     uint32 // DXGI_SCALING
	SwapEffect  uint32 // DXGI_SWAP_EFFECT
	AlphaMode   uint32 // DXGI_ALPHA_MODE
	Flags       uint32
}
