package d3d

import (
	"math"
	"strconv"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/hellotriangle/gpu"
)

func TestLayout(t *testing.T) {
	if strconv.IntSize != 64 {
		t.Skip("sizes are those of 64-bit Windows")
	}
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"DXGI_ADAPTER_DESC1", unsafe.Sizeof(_DXGI_ADAPTER_DESC1{}), 312},
		{"DXGI_SWAP_CHAIN_DESC1", unsafe.Sizeof(_DXGI_SWAP_CHAIN_DESC1{}), 48},
		{"D3D12_COMMAND_QUEUE_DESC", unsafe.Sizeof(_D3D12_COMMAND_QUEUE_DESC{}), 16},
		{"D3D12_DESCRIPTOR_HEAP_DESC", unsafe.Sizeof(_D3D12_DESCRIPTOR_HEAP_DESC{}), 16},
		{"D3D12_RENDER_TARGET_VIEW_DESC", unsafe.Sizeof(_D3D12_RENDER_TARGET_VIEW_DESC{}), 24},
		{"D3D12_HEAP_PROPERTIES", unsafe.Sizeof(_D3D12_HEAP_PROPERTIES{}), 20},
		{"D3D12_RESOURCE_DESC", unsafe.Sizeof(_D3D12_RESOURCE_DESC{}), 56},
		{"D3D12_RESOURCE_BARRIER", unsafe.Sizeof(_D3D12_RESOURCE_BARRIER{}), 32},
		{"D3D12_VIEWPORT", unsafe.Sizeof(_D3D12_VIEWPORT{}), 24},
		{"D3D12_RECT", unsafe.Sizeof(_D3D12_RECT{}), 16},
		{"D3D12_VERTEX_BUFFER_VIEW", unsafe.Sizeof(_D3D12_VERTEX_BUFFER_VIEW{}), 16},
		{"D3D12_ROOT_SIGNATURE_DESC", unsafe.Sizeof(_D3D12_ROOT_SIGNATURE_DESC{}), 40},
		{"D3D12_INPUT_ELEMENT_DESC", unsafe.Sizeof(_D3D12_INPUT_ELEMENT_DESC{}), 32},
		{"D3D12_BLEND_DESC", unsafe.Sizeof(_D3D12_BLEND_DESC{}), 328},
		{"D3D12_RASTERIZER_DESC", unsafe.Sizeof(_D3D12_RASTERIZER_DESC{}), 44},
		{"D3D12_DEPTH_STENCIL_DESC", unsafe.Sizeof(_D3D12_DEPTH_STENCIL_DESC{}), 52},
		{"D3D12_GRAPHICS_PIPELINE_STATE_DESC", unsafe.Sizeof(_D3D12_GRAPHICS_PIPELINE_STATE_DESC{}), 656},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.got, tc.name)
	}

	var pso _D3D12_GRAPHICS_PIPELINE_STATE_DESC
	assert.Equal(t, uintptr(120), unsafe.Offsetof(pso.BlendState))
	assert.Equal(t, uintptr(552), unsafe.Offsetof(pso.InputLayout))
	assert.Equal(t, uintptr(632), unsafe.Offsetof(pso.CachedPSO))
	var adapter _DXGI_ADAPTER_DESC1
	assert.Equal(t, uintptr(296), unsafe.Offsetof(adapter.AdapterLuid))
}

func TestPipelineStateDesc(t *testing.T) {
	vs, ps := []byte("vs"), []byte("pixel")
	desc := gpu.GraphicsPipelineStateDesc{
		VS:         vs,
		PS:         ps,
		BlendState: gpu.DefaultBlendDesc(),
		SampleMask: math.MaxUint32,
		RasterizerState: gpu.RasterizerDesc{
			FillMode:        gpu.FillModeSolid,
			CullMode:        gpu.CullModeNone,
			DepthClipEnable: true,
		},
		InputLayout: []gpu.InputElementDesc{
			{SemanticName: "POSITION", Format: gpu.FormatR32G32B32Float},
			{SemanticName: "COLOR", Format: gpu.FormatR32G32B32A32Float, AlignedByteOffset: 12},
		},
		PrimitiveTopologyType: gpu.PrimitiveTopologyTypeTriangle,
		RTVFormats:            []gpu.Format{gpu.FormatR8G8B8A8Unorm},
		SampleDesc:            gpu.SampleDesc{Count: 1},
	}

	p, err := newPipelineStateDesc(&desc, 0xbeef)
	require.NoError(t, err)
	n := p.native

	assert.Equal(t, uintptr(0xbeef), n.pRootSignature)
	assert.Same(t, &vs[0], n.VS.pShaderBytecode)
	assert.Equal(t, uintptr(2), n.VS.BytecodeLength)
	assert.Equal(t, uintptr(5), n.PS.BytecodeLength)
	assert.Nil(t, n.GS.pShaderBytecode)

	assert.Equal(t, uint32(math.MaxUint32), n.SampleMask)
	assert.Equal(t, uint32(3), n.RasterizerState.FillMode)
	assert.Equal(t, uint32(1), n.RasterizerState.CullMode)
	assert.Equal(t, int32(1), n.RasterizerState.DepthClipEnable)
	assert.Equal(t, int32(0), n.DepthStencilState.DepthEnable)
	assert.Equal(t, int32(0), n.DepthStencilState.StencilEnable)
	for _, rt := range n.BlendState.RenderTarget {
		assert.Equal(t, int32(0), rt.BlendEnable)
		assert.Equal(t, uint8(0xf), rt.RenderTargetWriteMask)
		assert.Equal(t, uint32(4), rt.LogicOp)
	}

	require.Equal(t, uint32(2), n.InputLayout.NumElements)
	assert.Same(t, &p.elements[0], n.InputLayout.pInputElementDescs)
	name := unsafe.Slice(p.elements[1].SemanticName, 6)
	assert.Equal(t, []byte("COLOR\x00"), name)
	assert.Equal(t, uint32(12), p.elements[1].AlignedByteOffset)
	assert.Equal(t, uint32(2), p.elements[1].Format)

	assert.Equal(t, uint32(3), n.PrimitiveTopologyType)
	assert.Equal(t, uint32(1), n.NumRenderTargets)
	assert.Equal(t, [8]uint32{28}, n.RTVFormats)
	assert.Equal(t, uint32(0), n.DSVFormat)
	assert.Equal(t, uint32(1), n.SampleDesc.Count)
}

func TestPipelineStateDescTooManyTargets(t *testing.T) {
	_, err := newPipelineStateDesc(&gpu.GraphicsPipelineStateDesc{RTVFormats: make([]gpu.Format, 9)}, 0)
	assert.Error(t, err)
}

func TestTransitionBarriers(t *testing.T) {
	var a, b struct{ gpu.Resource }
	ptrs := map[gpu.Resource]uintptr{&a: 0x10, &b: 0x20}
	out := transitionBarriers([]gpu.ResourceBarrier{
		gpu.TransitionBarrier(&a, gpu.ResourceStatePresent, gpu.ResourceStateRenderTarget),
		gpu.TransitionBarrier(&b, gpu.ResourceStateRenderTarget, gpu.ResourceStatePresent),
	}, func(r gpu.Resource) uintptr { return ptrs[r] })

	require.Len(t, out, 2)
	assert.Equal(t, _D3D12_RESOURCE_BARRIER{
		Type: D3D12_RESOURCE_BARRIER_TYPE_TRANSITION,
		Transition: _D3D12_RESOURCE_TRANSITION_BARRIER{
			pResource:   0x10,
			Subresource: 0xffffffff,
			StateBefore: 0,
			StateAfter:  4,
		},
	}, out[0])
	assert.Equal(t, uintptr(0x20), out[1].Transition.pResource)
	assert.Equal(t, uint32(4), out[1].Transition.StateBefore)
}

func TestDescConversions(t *testing.T) {
	sc := swapChainDesc(&gpu.SwapChainDesc{
		Width:       1024,
		Height:      768,
		Format:      gpu.FormatR8G8B8A8Unorm,
		SampleDesc:  gpu.SampleDesc{Count: 1},
		BufferUsage: gpu.UsageRenderTargetOutput,
		BufferCount: 2,
		SwapEffect:  gpu.SwapEffectFlipDiscard,
	})
	assert.Equal(t, _DXGI_SWAP_CHAIN_DESC1{
		Width:       1024,
		Height:      768,
		Format:      28,
		SampleDesc:  _DXGI_SAMPLE_DESC{Count: 1},
		BufferUsage: DXGI_USAGE_RENDER_TARGET_OUTPUT,
		BufferCount: 2,
		SwapEffect:  DXGI_SWAP_EFFECT_FLIP_DISCARD,
	}, sc)

	buf := gpu.BufferDesc(84)
	rd := resourceDesc(&buf)
	assert.Equal(t, uint32(1), rd.Dimension)
	assert.Equal(t, uint64(84), rd.Width)
	assert.Equal(t, uint32(1), rd.Layout)

	assert.Nil(t, renderTargetViewDesc(nil))
	assert.Equal(t, []_D3D12_VIEWPORT{{Width: 4, Height: 3, MaxDepth: 1}},
		viewports([]gpu.Viewport{{Width: 4, Height: 3, MaxDepth: 1}}))
	assert.Equal(t, []_D3D12_RECT{{Right: 4, Bottom: 3}}, rects([]gpu.Rect{{Right: 4, Bottom: 3}}))
	assert.Equal(t, []_D3D12_VERTEX_BUFFER_VIEW{{BufferLocation: 0x1000, SizeInBytes: 84, StrideInBytes: 28}},
		vertexBufferViews([]gpu.VertexBufferView{{BufferLocation: 0x1000, SizeInBytes: 84, StrideInBytes: 28}}))
	assert.Equal(t, uint32(1), rootSignatureDesc(&gpu.RootSignatureDesc{
		Flags: gpu.RootSignatureFlagAllowInputAssemblerInputLayout,
	}).Flags)
}
