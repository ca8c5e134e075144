package sample

import (
	"fmt"
	"math"

	"github.com/kirides/hellotriangle/gpu"
)

const (
	vertexEntryPoint = "VSMain"
	vertexTarget     = "vs_5_0"
	pixelEntryPoint  = "PSMain"
	pixelTarget      = "ps_5_0"
)

// inputLayout matches Vertex: a float3 position followed by a float4 color.
func inputLayout() []gpu.InputElementDesc {
	return []gpu.InputElementDesc{
		{
			SemanticName:      "POSITION",
			SemanticIndex:     0,
			Format:            gpu.FormatR32G32B32Float,
			InputSlot:         0,
			AlignedByteOffset: 0,
			InputSlotClass:    gpu.InputClassificationPerVertexData,
		},
		{
			SemanticName:      "COLOR",
			SemanticIndex:     0,
			Format:            gpu.FormatR32G32B32A32Float,
			InputSlot:         0,
			AlignedByteOffset: 12,
			InputSlotClass:    gpu.InputClassificationPerVertexData,
		},
	}
}

func pipelineStateDesc(rs gpu.RootSignature, vs, ps []byte) gpu.GraphicsPipelineStateDesc {
	return gpu.GraphicsPipelineStateDesc{
		RootSignature: rs,
		VS:            vs,
		PS:            ps,
		BlendState:    gpu.DefaultBlendDesc(),
		SampleMask:    math.MaxUint32,
		RasterizerState: gpu.RasterizerDesc{
			FillMode:        gpu.FillModeSolid,
			CullMode:        gpu.CullModeNone,
			DepthClipEnable: true,
		},
		DepthStencilState:     gpu.DepthStencilDesc{DepthEnable: false, StencilEnable: false},
		InputLayout:           inputLayout(),
		PrimitiveTopologyType: gpu.PrimitiveTopologyTypeTriangle,
		RTVFormats:            []gpu.Format{BackBufferFormat},
		DSVFormat:             gpu.FormatUnknown,
		SampleDesc:            gpu.SampleDesc{Count: 1},
	}
}

// createRootSignature builds an empty root signature that admits an input
// assembler layout.
func (s *HelloTriangle) createRootSignature(r *resources) error {
	blob, err := s.api.SerializeRootSignature(&gpu.RootSignatureDesc{
		Flags: gpu.RootSignatureFlagAllowInputAssemblerInputLayout,
	})
	if err != nil {
		return fmt.Errorf("%w: SerializeRootSignature: %w", ErrPipelineStateCreationFailed, err)
	}
	rs, err := s.device.CreateRootSignature(blob)
	if err != nil {
		return fmt.Errorf("%w: CreateRootSignature: %w", ErrPipelineStateCreationFailed, err)
	}
	r.rootSignature = rs
	return nil
}

func (s *HelloTriangle) compileShaders() (vs, ps []byte, err error) {
	path := s.opts.ShaderPath
	if path == "" {
		if path, err = DefaultShaderPath(); err != nil {
			return nil, nil, fmt.Errorf("%w: locating %s: %w", ErrShaderCompilationFailed, ShaderFile, err)
		}
	}
	var flags gpu.CompileFlag
	if s.debug {
		flags = gpu.CompileFlagDebug | gpu.CompileFlagSkipOptimization
	}
	vs, err = s.api.CompileFromFile(path, vertexEntryPoint, vertexTarget, flags)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrShaderCompilationFailed, err)
	}
	ps, err = s.api.CompileFromFile(path, pixelEntryPoint, pixelTarget, flags)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrShaderCompilationFailed, err)
	}
	return vs, ps, nil
}

func (s *HelloTriangle) createPipelineState(r *resources) error {
	vs, ps, err := s.compileShaders()
	if err != nil {
		return err
	}
	desc := pipelineStateDesc(r.rootSignature, vs, ps)
	pso, err := s.device.CreateGraphicsPipelineState(&desc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPipelineStateCreationFailed, err)
	}
	r.pipelineState = pso
	return nil
}
