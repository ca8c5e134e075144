package d3d

import (
	"fmt"

	"github.com/kirides/hellotriangle/gpu"
)

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// cString returns a NUL terminated copy of s.
func cString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

func swapChainDesc(d *gpu.SwapChainDesc) _DXGI_SWAP_CHAIN_DESC1 {
	return _DXGI_SWAP_CHAIN_DESC1{
		Width:       d.Width,
		Height:      d.Height,
		Format:      uint32(d.Format),
		SampleDesc:  _DXGI_SAMPLE_DESC(d.SampleDesc),
		BufferUsage: uint32(d.BufferUsage),
		BufferCount: d.BufferCount,
		SwapEffect:  uint32(d.SwapEffect),
	}
}

func commandQueueDesc(d *gpu.CommandQueueDesc) _D3D12_COMMAND_QUEUE_DESC {
	return _D3D12_COMMAND_QUEUE_DESC{
		Type:     uint32(d.Type),
		Priority: int32(d.Priority),
		Flags:    d.Flags,
		NodeMask: d.NodeMask,
	}
}

func descriptorHeapDesc(d *gpu.DescriptorHeapDesc) _D3D12_DESCRIPTOR_HEAP_DESC {
	return _D3D12_DESCRIPTOR_HEAP_DESC{
		Type:           uint32(d.Type),
		NumDescriptors: d.NumDescriptors,
		Flags:          uint32(d.Flags),
		NodeMask:       d.NodeMask,
	}
}

func renderTargetViewDesc(d *gpu.RenderTargetViewDesc) *_D3D12_RENDER_TARGET_VIEW_DESC {
	if d == nil {
		return nil
	}
	return &_D3D12_RENDER_TARGET_VIEW_DESC{
		Format:        uint32(d.Format),
		ViewDimension: d.ViewDimension,
		MipSlice:      d.MipSlice,
		PlaneSlice:    d.PlaneSlice,
	}
}

func heapProperties(p *gpu.HeapProperties) _D3D12_HEAP_PROPERTIES {
	return _D3D12_HEAP_PROPERTIES{
		Type:                 uint32(p.Type),
		CPUPageProperty:      p.CPUPageProperty,
		MemoryPoolPreference: p.MemoryPoolPreference,
		CreationNodeMask:     p.CreationNodeMask,
		VisibleNodeMask:      p.VisibleNodeMask,
	}
}

func resourceDesc(d *gpu.ResourceDesc) _D3D12_RESOURCE_DESC {
	return _D3D12_RESOURCE_DESC{
		Dimension:        uint32(d.Dimension),
		Alignment:        d.Alignment,
		Width:            d.Width,
		Height:           d.Height,
		DepthOrArraySize: d.DepthOrArraySize,
		MipLevels:        d.MipLevels,
		Format:           uint32(d.Format),
		SampleDesc:       _DXGI_SAMPLE_DESC(d.SampleDesc),
		Layout:           uint32(d.Layout),
		Flags:            d.Flags,
	}
}

func rootSignatureDesc(d *gpu.RootSignatureDesc) _D3D12_ROOT_SIGNATURE_DESC {
	return _D3D12_ROOT_SIGNATURE_DESC{Flags: uint32(d.Flags)}
}

func viewports(vs []gpu.Viewport) []_D3D12_VIEWPORT {
	out := make([]_D3D12_VIEWPORT, len(vs))
	for i, v := range vs {
		out[i] = _D3D12_VIEWPORT(v)
	}
	return out
}

func rects(rs []gpu.Rect) []_D3D12_RECT {
	out := make([]_D3D12_RECT, len(rs))
	for i, r := range rs {
		out[i] = _D3D12_RECT(r)
	}
	return out
}

func vertexBufferViews(vs []gpu.VertexBufferView) []_D3D12_VERTEX_BUFFER_VIEW {
	out := make([]_D3D12_VERTEX_BUFFER_VIEW, len(vs))
	for i, v := range vs {
		out[i] = _D3D12_VERTEX_BUFFER_VIEW(v)
	}
	return out
}

// transitionBarriers converts barriers; resource maps each barrier's
// resource to its COM pointer.
func transitionBarriers(bs []gpu.ResourceBarrier, resource func(gpu.Resource) uintptr) []_D3D12_RESOURCE_BARRIER {
	out := make([]_D3D12_RESOURCE_BARRIER, len(bs))
	for i, b := range bs {
		out[i] = _D3D12_RESOURCE_BARRIER{
			Type:  D3D12_RESOURCE_BARRIER_TYPE_TRANSITION,
			Flags: D3D12_RESOURCE_BARRIER_FLAG_NONE,
			Transition: _D3D12_RESOURCE_TRANSITION_BARRIER{
				pResource:   resource(b.Resource),
				Subresource: b.Subresource,
				StateBefore: uint32(b.StateBefore),
				StateAfter:  uint32(b.StateAfter),
			},
		}
	}
	return out
}

func shaderBytecode(b []byte) _D3D12_SHADER_BYTECODE {
	if len(b) == 0 {
		return _D3D12_SHADER_BYTECODE{}
	}
	return _D3D12_SHADER_BYTECODE{pShaderBytecode: &b[0], BytecodeLength: uintptr(len(b))}
}

// pipelineStateDesc owns the Go memory its native description points into.
type pipelineStateDesc struct {
	native   _D3D12_GRAPHICS_PIPELINE_STATE_DESC
	elements []_D3D12_INPUT_ELEMENT_DESC
}

func newPipelineStateDesc(d *gpu.GraphicsPipelineStateDesc, rootSignature uintptr) (*pipelineStateDesc, error) {
	if len(d.RTVFormats) > 8 {
		return nil, fmt.Errorf("%d render target formats, at most 8 allowed", len(d.RTVFormats))
	}
	p := &pipelineStateDesc{
		elements: make([]_D3D12_INPUT_ELEMENT_DESC, len(d.InputLayout)),
	}
	for i, e := range d.InputLayout {
		p.elements[i] = _D3D12_INPUT_ELEMENT_DESC{
			SemanticName:         cString(e.SemanticName),
			SemanticIndex:        e.SemanticIndex,
			Format:               uint32(e.Format),
			InputSlot:            e.InputSlot,
			AlignedByteOffset:    e.AlignedByteOffset,
			InputSlotClass:       uint32(e.InputSlotClass),
			InstanceDataStepRate: e.InstanceDataStepRate,
		}
	}

	n := &p.native
	n.pRootSignature = rootSignature
	n.VS = shaderBytecode(d.VS)
	n.PS = shaderBytecode(d.PS)

	n.BlendState.AlphaToCoverageEnable = boolToInt32(d.BlendState.AlphaToCoverageEnable)
	n.BlendState.IndependentBlendEnable = boolToInt32(d.BlendState.IndependentBlendEnable)
	for i, rt := range d.BlendState.RenderTarget {
		n.BlendState.RenderTarget[i] = _D3D12_RENDER_TARGET_BLEND_DESC{
			BlendEnable:           boolToInt32(rt.BlendEnable),
			LogicOpEnable:         boolToInt32(rt.LogicOpEnable),
			SrcBlend:              uint32(rt.SrcBlend),
			DestBlend:             uint32(rt.DestBlend),
			BlendOp:               uint32(rt.BlendOp),
			SrcBlendAlpha:         uint32(rt.SrcBlendAlpha),
			DestBlendAlpha:        uint32(rt.DestBlendAlpha),
			BlendOpAlpha:          uint32(rt.BlendOpAlpha),
			LogicOp:               uint32(rt.LogicOp),
			RenderTargetWriteMask: rt.RenderTargetWriteMask,
		}
	}
	n.SampleMask = d.SampleMask

	rs := d.RasterizerState
	n.RasterizerState = _D3D12_RASTERIZER_DESC{
		FillMode:              uint32(rs.FillMode),
		CullMode:              uint32(rs.CullMode),
		FrontCounterClockwise: boolToInt32(rs.FrontCounterClockwise),
		DepthBias:             rs.DepthBias,
		DepthBiasClamp:        rs.DepthBiasClamp,
		SlopeScaledDepthBias:  rs.SlopeScaledDepthBias,
		DepthClipEnable:       boolToInt32(rs.DepthClipEnable),
		MultisampleEnable:     boolToInt32(rs.MultisampleEnable),
		AntialiasedLineEnable: boolToInt32(rs.AntialiasedLineEnable),
		ForcedSampleCount:     rs.ForcedSampleCount,
		ConservativeRaster:    rs.ConservativeRaster,
	}

	stencilOp := _D3D12_DEPTH_STENCILOP_DESC{
		StencilFailOp:      D3D12_STENCIL_OP_KEEP,
		StencilDepthFailOp: D3D12_STENCIL_OP_KEEP,
		StencilPassOp:      D3D12_STENCIL_OP_KEEP,
		StencilFunc:        D3D12_COMPARISON_FUNC_ALWAYS,
	}
	n.DepthStencilState = _D3D12_DEPTH_STENCIL_DESC{
		DepthEnable:      boolToInt32(d.DepthStencilState.DepthEnable),
		DepthWriteMask:   D3D12_DEPTH_WRITE_MASK_ALL,
		DepthFunc:        D3D12_COMPARISON_FUNC_LESS,
		StencilEnable:    boolToInt32(d.DepthStencilState.StencilEnable),
		StencilReadMask:  D3D12_DEFAULT_STENCIL_MASK,
		StencilWriteMask: D3D12_DEFAULT_STENCIL_MASK,
		FrontFace:        stencilOp,
		BackFace:         stencilOp,
	}

	if len(p.elements) > 0 {
		n.InputLayout = _D3D12_INPUT_LAYOUT_DESC{
			pInputElementDescs: &p.elements[0],
			NumElements:        uint32(len(p.elements)),
		}
	}
	n.PrimitiveTopologyType = uint32(d.PrimitiveTopologyType)
	n.NumRenderTargets = uint32(len(d.RTVFormats))
	for i, f := range d.RTVFormats {
		n.RTVFormats[i] = uint32(f)
	}
	n.DSVFormat = uint32(d.DSVFormat)
	n.SampleDesc = _DXGI_SAMPLE_DESC(d.SampleDesc)
	return p, nil
}
