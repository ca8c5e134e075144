package gpu

import "strconv"

// Enum values match their native D3D12/DXGI counterparts so backends can
// pass them through unchanged.

type Format uint32

const (
	FormatUnknown           Format = 0
	FormatR32G32B32A32Float Format = 2
	FormatR32G32B32A32Uint  Format = 3
	FormatR32G32B32Float    Format = 6
	FormatR8G8B8A8Unorm     Format = 28
	FormatB8G8R8A8Unorm     Format = 87
)

type FeatureLevel uint32

const (
	FeatureLevel11_0 FeatureLevel = 0xb000
	FeatureLevel12_0 FeatureLevel = 0xc000
)

type FactoryFlag uint32

const FactoryFlagDebug FactoryFlag = 0x1

type AdapterFlag uint32

const (
	AdapterFlagNone     AdapterFlag = 0
	AdapterFlagRemote   AdapterFlag = 1
	AdapterFlagSoftware AdapterFlag = 2
)

type LUID struct {
	LowPart  uint32
	HighPart int32
}

type AdapterDesc struct {
	Description           string
	VendorID              uint32
	DeviceID              uint32
	SubSysID              uint32
	Revision              uint32
	DedicatedVideoMemory  uint64
	DedicatedSystemMemory uint64
	SharedSystemMemory    uint64
	LUID                  LUID
	Flags                 AdapterFlag
}

func (d AdapterDesc) Software() bool { return d.Flags&AdapterFlagSoftware != 0 }

type CommandListType uint32

const (
	CommandListTypeDirect  CommandListType = 0
	CommandListTypeBundle  CommandListType = 1
	CommandListTypeCompute CommandListType = 2
	CommandListTypeCopy    CommandListType = 3
)

type CommandQueuePriority int32

const CommandQueuePriorityNormal CommandQueuePriority = 0

type CommandQueueDesc struct {
	Type     CommandListType
	Priority CommandQueuePriority
	Flags    uint32
	NodeMask uint32
}

type DescriptorHeapType uint32

const (
	DescriptorHeapTypeCBVSRVUAV DescriptorHeapType = 0
	DescriptorHeapTypeSampler   DescriptorHeapType = 1
	DescriptorHeapTypeRTV       DescriptorHeapType = 2
	DescriptorHeapTypeDSV       DescriptorHeapType = 3
)

type DescriptorHeapFlag uint32

const (
	DescriptorHeapFlagNone          DescriptorHeapFlag = 0
	DescriptorHeapFlagShaderVisible DescriptorHeapFlag = 1
)

type DescriptorHeapDesc struct {
	Type           DescriptorHeapType
	NumDescriptors uint32
	Flags          DescriptorHeapFlag
	NodeMask       uint32
}

// CPUDescriptorHandle addresses one slot of a descriptor heap.
type CPUDescriptorHandle struct {
	Ptr uintptr
}

// Offset returns the handle n slots further, given the heap's stride.
func (h CPUDescriptorHandle) Offset(n int, stride uint32) CPUDescriptorHandle {
	return CPUDescriptorHandle{Ptr: uintptr(int64(h.Ptr) + int64(n)*int64(stride))}
}

// RenderTargetViewDesc is nil in every call the renderer makes; the view
// then inherits the resource's format.
type RenderTargetViewDesc struct {
	Format        Format
	ViewDimension uint32
	MipSlice      uint32
	PlaneSlice    uint32
}

type ResourceStates uint32

const (
	ResourceStateCommon       ResourceStates = 0
	ResourceStatePresent      ResourceStates = 0
	ResourceStateRenderTarget ResourceStates = 0x4
	ResourceStateCopyDest     ResourceStates = 0x400
	ResourceStateCopySource   ResourceStates = 0x800
	ResourceStateGenericRead  ResourceStates = 0x1 | 0x2 | 0x40 | 0x80 | 0x200 | 0x800
)

func (s ResourceStates) String() string {
	switch s {
	case ResourceStatePresent:
		return "PRESENT"
	case ResourceStateRenderTarget:
		return "RENDER_TARGET"
	case ResourceStateCopyDest:
		return "COPY_DEST"
	case ResourceStateCopySource:
		return "COPY_SOURCE"
	case ResourceStateGenericRead:
		return "GENERIC_READ"
	}
	return "STATE(0x" + strconv.FormatUint(uint64(s), 16) + ")"
}

const AllSubresources = 0xffffffff

// ResourceBarrier is a transition barrier. Aliasing and UAV barriers are not
// modeled.
type ResourceBarrier struct {
	Resource    Resource
	Subresource uint32
	StateBefore ResourceStates
	StateAfter  ResourceStates
}

// TransitionBarrier returns a barrier moving every subresource of r from
// before to after.
func TransitionBarrier(r Resource, before, after ResourceStates) ResourceBarrier {
	return ResourceBarrier{
		Resource:    r,
		Subresource: AllSubresources,
		StateBefore: before,
		StateAfter:  after,
	}
}

type HeapType uint32

const (
	HeapTypeDefault  HeapType = 1
	HeapTypeUpload   HeapType = 2
	HeapTypeReadback HeapType = 3
)

type HeapProperties struct {
	Type                 HeapType
	CPUPageProperty      uint32
	MemoryPoolPreference uint32
	CreationNodeMask     uint32
	VisibleNodeMask      uint32
}

type HeapFlag uint32

const HeapFlagNone HeapFlag = 0

type ResourceDimension uint32

const (
	ResourceDimensionUnknown   ResourceDimension = 0
	ResourceDimensionBuffer    ResourceDimension = 1
	ResourceDimensionTexture2D ResourceDimension = 3
)

type TextureLayout uint32

const (
	TextureLayoutUnknown  TextureLayout = 0
	TextureLayoutRowMajor TextureLayout = 1
)

type SampleDesc struct {
	Count   uint32
	Quality uint32
}

type ResourceDesc struct {
	Dimension        ResourceDimension
	Alignment        uint64
	Width            uint64
	Height           uint32
	DepthOrArraySize uint16
	MipLevels        uint16
	Format           Format
	SampleDesc       SampleDesc
	Layout           TextureLayout
	Flags            uint32
}

// BufferDesc describes a plain buffer of size bytes.
func BufferDesc(size uint64) ResourceDesc {
	return ResourceDesc{
		Dimension:        ResourceDimensionBuffer,
		Width:            size,
		Height:           1,
		DepthOrArraySize: 1,
		MipLevels:        1,
		Format:           FormatUnknown,
		SampleDesc:       SampleDesc{Count: 1},
		Layout:           TextureLayoutRowMajor,
	}
}

// Range is a byte range of a mapped subresource. An empty range means the
// CPU reads nothing.
type Range struct {
	Begin uintptr
	End   uintptr
}

type FenceFlag uint32

const FenceFlagNone FenceFlag = 0

type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type PrimitiveTopology uint32

const (
	PrimitiveTopologyUndefined    PrimitiveTopology = 0
	PrimitiveTopologyTriangleList PrimitiveTopology = 4
)

type PrimitiveTopologyType uint32

const (
	PrimitiveTopologyTypeUndefined PrimitiveTopologyType = 0
	PrimitiveTopologyTypeTriangle  PrimitiveTopologyType = 3
)

type VertexBufferView struct {
	BufferLocation uint64
	SizeInBytes    uint32
	StrideInBytes  uint32
}

type Usage uint32

const UsageRenderTargetOutput Usage = 0x20

type SwapEffect uint32

const (
	SwapEffectDiscard        SwapEffect = 0
	SwapEffectFlipSequential SwapEffect = 3
	SwapEffectFlipDiscard    SwapEffect = 4
)

type SwapChainDesc struct {
	Width       uint32
	Height      uint32
	Format      Format
	SampleDesc  SampleDesc
	BufferUsage Usage
	BufferCount uint32
	SwapEffect  SwapEffect
}

type WindowAssociationFlag uint32

const (
	WindowAssociationNoWindowChanges WindowAssociationFlag = 1 << 0
	WindowAssociationNoAltEnter      WindowAssociationFlag = 1 << 1
	WindowAssociationNoPrintScreen   WindowAssociationFlag = 1 << 2
)

type PresentFlag uint32

type RootSignatureFlag uint32

const RootSignatureFlagAllowInputAssemblerInputLayout RootSignatureFlag = 0x1

// RootSignatureDesc describes a root signature without parameters or
// static samplers.
type RootSignatureDesc struct {
	Flags RootSignatureFlag
}

type CompileFlag uint32

const (
	CompileFlagDebug            CompileFlag = 1 << 0
	CompileFlagSkipOptimization CompileFlag = 1 << 2
)

type InputClassification uint32

const InputClassificationPerVertexData InputClassification = 0

type InputElementDesc struct {
	SemanticName         string
	SemanticIndex        uint32
	Format               Format
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       InputClassification
	InstanceDataStepRate uint32
}

type Blend uint32

const (
	BlendZero Blend = 1
	BlendOne  Blend = 2
)

type BlendOp uint32

const BlendOpAdd BlendOp = 1

type LogicOp uint32

const (
	LogicOpClear LogicOp = 0
	LogicOpNoop  LogicOp = 4
)

const ColorWriteEnableAll uint8 = 0xf

type RenderTargetBlendDesc struct {
	BlendEnable           bool
	LogicOpEnable         bool
	SrcBlend              Blend
	DestBlend             Blend
	BlendOp               BlendOp
	SrcBlendAlpha         Blend
	DestBlendAlpha        Blend
	BlendOpAlpha          BlendOp
	LogicOp               LogicOp
	RenderTargetWriteMask uint8
}

type BlendDesc struct {
	AlphaToCoverageEnable  bool
	IndependentBlendEnable bool
	RenderTarget           [8]RenderTargetBlendDesc
}

// DefaultBlendDesc is blending disabled with every channel written.
func DefaultBlendDesc() BlendDesc {
	var d BlendDesc
	for i := range d.RenderTarget {
		d.RenderTarget[i] = RenderTargetBlendDesc{
			SrcBlend:              BlendOne,
			DestBlend:             BlendZero,
			BlendOp:               BlendOpAdd,
			SrcBlendAlpha:         BlendOne,
			DestBlendAlpha:        BlendZero,
			BlendOpAlpha:          BlendOpAdd,
			LogicOp:               LogicOpNoop,
			RenderTargetWriteMask: ColorWriteEnableAll,
		}
	}
	return d
}

type FillMode uint32

const (
	FillModeWireframe FillMode = 2
	FillModeSolid     FillMode = 3
)

type CullMode uint32

const (
	CullModeNone  CullMode = 1
	CullModeFront CullMode = 2
	CullModeBack  CullMode = 3
)

type RasterizerDesc struct {
	FillMode              FillMode
	CullMode              CullMode
	FrontCounterClockwise bool
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       bool
	MultisampleEnable     bool
	AntialiasedLineEnable bool
	ForcedSampleCount     uint32
	ConservativeRaster    uint32
}

// DepthStencilDesc only models the enable switches; both stay off here.
type DepthStencilDesc struct {
	DepthEnable   bool
	StencilEnable bool
}

type GraphicsPipelineStateDesc struct {
	RootSignature         RootSignature
	VS                    []byte
	PS                    []byte
	BlendState            BlendDesc
	SampleMask            uint32
	RasterizerState       RasterizerDesc
	DepthStencilState     DepthStencilDesc
	InputLayout           []InputElementDesc
	PrimitiveTopologyType PrimitiveTopologyType
	RTVFormats            []Format
	DSVFormat             Format
	SampleDesc            SampleDesc
}
