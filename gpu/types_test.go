package gpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPUDescriptorHandleOffset(t *testing.T) {
	base := CPUDescriptorHandle{Ptr: 0x1000}
	for _, stride := range []uint32{32, 56, 64} {
		for i := 0; i < 4; i++ {
			assert.Equal(t, uintptr(0x1000)+uintptr(i)*uintptr(stride), base.Offset(i, stride).Ptr)
		}
	}
}

func TestBufferDesc(t *testing.T) {
	d := BufferDesc(84)
	assert.Equal(t, ResourceDimensionBuffer, d.Dimension)
	assert.Equal(t, uint64(84), d.Width)
	assert.Equal(t, uint32(1), d.Height)
	assert.Equal(t, TextureLayoutRowMajor, d.Layout)
	assert.Equal(t, uint32(1), d.SampleDesc.Count)
}

func TestDefaultBlendDesc(t *testing.T) {
	d := DefaultBlendDesc()
	assert.False(t, d.AlphaToCoverageEnable)
	for _, rt := range d.RenderTarget {
		assert.False(t, rt.BlendEnable)
		assert.Equal(t, BlendOne, rt.SrcBlend)
		assert.Equal(t, BlendZero, rt.DestBlend)
		assert.Equal(t, LogicOpNoop, rt.LogicOp)
		assert.Equal(t, ColorWriteEnableAll, rt.RenderTargetWriteMask)
	}
}

func TestResourceStatesString(t *testing.T) {
	assert.Equal(t, "PRESENT", ResourceStatePresent.String())
	assert.Equal(t, "RENDER_TARGET", ResourceStateRenderTarget.String())
	assert.Equal(t, "GENERIC_READ", ResourceStateGenericRead.String())
	assert.Equal(t, "STATE(0x8)", ResourceStates(8).String())
}

func TestCompileError(t *testing.T) {
	cause := errors.New("E_FAIL")
	err := &CompileError{
		Path:        "shaders.hlsl",
		EntryPoint:  "VSMain",
		Target:      "vs_5_0",
		Diagnostics: "shaders.hlsl(3,1): error X3000: syntax error",
		Err:         cause,
	}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "VSMain/vs_5_0")
	assert.Contains(t, err.Error(), "X3000")
}
