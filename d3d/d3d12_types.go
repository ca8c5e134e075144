package d3d

const (
	D3D12_RESOURCE_BARRIER_TYPE_TRANSITION = 0
	D3D12_RESOURCE_BARRIER_FLAG_NONE       = 0

	D3D_ROOT_SIGNATURE_VERSION_1 = 0x1

	D3D12_DEPTH_WRITE_MASK_ALL   = 1
	D3D12_COMPARISON_FUNC_LESS   = 2
	D3D12_COMPARISON_FUNC_ALWAYS = 8
	D3D12_STENCIL_OP_KEEP        = 1
	D3D12_DEFAULT_STENCIL_MASK   = 0xff
)

type _D3D12_COMMAND_QUEUE_DESC struct {
	Type     uint32 // D3D12_COMMAND_LIST_TYPE
	Priority int32
	Flags    uint32
	NodeMask uint32
}

type _D3D12_DESCRIPTOR_HEAP_DESC struct {
	Type           uint32 // D3D12_DESCRIPTOR_HEAP_TYPE
	NumDescriptors uint32
	Flags          uint32
	NodeMask       uint32
}

type _D3D12_CPU_DESCRIPTOR_HANDLE struct {
	Ptr uintptr
}

// Only the Texture2D arm of the view union is spelled out.
type _D3D12_RENDER_TARGET_VIEW_DESC struct {
	Format        uint32
	ViewDimension uint32
	MipSlice      uint32
	PlaneSlice    uint32
	_             [2]uint32
}

type _D3D12_HEAP_PROPERTIES struct {
	Type                 uint32
	CPUPageProperty      uint32
	MemoryPoolPreference uint32
	CreationNodeMask     uint32
	VisibleNodeMask      uint32
}

type _D3D12_RESOURCE_DESC struct {
	Dimension        uint32
	Alignment        uint64
	Width            uint64
	Height           uint32
	DepthOrArraySize uint16
	MipLevels        uint16
	Format           uint32
	SampleDesc       _DXGI_SAMPLE_DESC
	Layout           uint32
	Flags            uint32
}

type _D3D12_RANGE struct {
	Begin uintptr
	End   uintptr
}

type _D3D12_RESOURCE_TRANSITION_BARRIER struct {
	pResource   uintptr
	Subresource uint32
	StateBefore uint32
	StateAfter  uint32
}

// Only the transition arm of the barrier union is spelled out.
type _D3D12_RESOURCE_BARRIER struct {
	Type       uint32
	Flags      uint32
	Transition _D3D12_RESOURCE_TRANSITION_BARRIER
}

type _D3D12_VIEWPORT struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

type _D3D12_RECT struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type _D3D12_VERTEX_BUFFER_VIEW struct {
	BufferLocation uint64
	SizeInBytes    uint32
	StrideInBytes  uint32
}

type _D3D12_ROOT_SIGNATURE_DESC struct {
	NumParameters     uint32
	pParameters       uintptr
	NumStaticSamplers uint32
	pStaticSamplers   uintptr
	Flags             uint32
}

type _D3D12_SHADER_BYTECODE struct {
	pShaderBytecode *byte
	BytecodeLength  uintptr
}

type _D3D12_STREAM_OUTPUT_DESC struct {
	pSODeclaration   uintptr
	NumEntries       uint32
	pBufferStrides   uintptr
	NumStrides       uint32
	RasterizedStream uint32
}

type _D3D12_RENDER_TARGET_BLEND_DESC struct {
	BlendEnable           int32 // BOOL
	LogicOpEnable         int32 // BOOL
	SrcBlend              uint32
	DestBlend             uint32
	BlendOp               uint32
	SrcBlendAlpha         uint32
	DestBlendAlpha        uint32
	BlendOpAlpha          uint32
	LogicOp               uint32
	RenderTargetWriteMask uint8
}

type _D3D12_BLEND_DESC struct {
	AlphaToCoverageEnable  int32 // BOOL
	IndependentBlendEnable int32 // BOOL
	RenderTarget           [8]_D3D12_RENDER_TARGET_BLEND_DESC
}

type _D3D12_RASTERIZER_DESC struct {
	FillMode              uint32
	CullMode              uint32
	FrontCounterClockwise int32 // BOOL
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       int32 // BOOL
	MultisampleEnable     int32 // BOOL
	AntialiasedLineEnable int32 // BOOL
	ForcedSampleCount     uint32
	ConservativeRaster    uint32
}

type _D3D12_DEPTH_STENCILOP_DESC struct {
	StencilFailOp      uint32
	StencilDepthFailOp uint32
	StencilPassOp      uint32
	StencilFunc        uint32
}

type _D3D12_DEPTH_STENCIL_DESC struct {
	DepthEnable      int32 // BOOL
	DepthWriteMask   uint32
	DepthFunc        uint32
	StencilEnable    int32 // BOOL
	StencilReadMask  uint8
	StencilWriteMask uint8
	FrontFace        _D3D12_DEPTH_STENCILOP_DESC
	BackFace         _D3D12_DEPTH_STENCILOP_DESC
}

type _D3D12_INPUT_ELEMENT_DESC struct {
	SemanticName         *byte
	SemanticIndex        uint32
	Format               uint32
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       uint32
	InstanceDataStepRate uint32
}

type _D3D12_INPUT_LAYOUT_DESC struct {
	pInputElementDescs *_D3D12_INPUT_ELEMENT_DESC
	NumElements        uint32
}

type _D3D12_CACHED_PIPELINE_STATE struct {
	pCachedBlob           uintptr
	CachedBlobSizeInBytes uintptr
}

type _D3D12_GRAPHICS_PIPELINE_STATE_DESC struct {
	pRootSignature        uintptr
	VS                    _D3D12_SHADER_BYTECODE
	PS                    _D3D12_SHADER_BYTECODE
	DS                    _D3D12_SHADER_BYTECODE
	HS                    _D3D12_SHADER_BYTECODE
	GS                    _D3D12_SHADER_BYTECODE
	StreamOutput          _D3D12_STREAM_OUTPUT_DESC
	BlendState            _D3D12_BLEND_DESC
	SampleMask            uint32
	RasterizerState       _D3D12_RASTERIZER_DESC
	DepthStencilState     _D3D12_DEPTH_STENCIL_DESC
	InputLayout           _D3D12_INPUT_LAYOUT_DESC
	IBStripCutValue       uint32
	PrimitiveTopologyType uint32
	NumRenderTargets      uint32
	RTVFormats            [8]uint32
	DSVFormat             uint32
	SampleDesc            _DXGI_SAMPLE_DESC
	NodeMask              uint32
	CachedPSO             _D3D12_CACHED_PIPELINE_STATE
	Flags                 uint32
}
