package sample

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/hellotriangle/gpu"
	"github.com/kirides/hellotriangle/gpu/gputest"
)

var testWindow = Window{Handle: 0x1234, Width: 1024, Height: 768}

func newSample(t *testing.T, api *gputest.API, opts Options) *HelloTriangle {
	t.Helper()
	if opts.ShaderPath == "" {
		opts.ShaderPath = "shaders.hlsl"
	}
	s, err := New(api, opts)
	require.NoError(t, err)
	t.Cleanup(s.Release)
	return s
}

func newBound(t *testing.T, api *gputest.API, opts Options) *HelloTriangle {
	t.Helper()
	s := newSample(t, api, opts)
	require.NoError(t, s.BindToWindow(testWindow))
	return s
}

func TestStartupHardware(t *testing.T) {
	api := gputest.New()
	s := newBound(t, api, Options{})

	assert.Equal(t, "Test GPU", s.Adapter().Description)
	assert.False(t, s.Adapter().Software())
	assert.Equal(t, MinFeatureLevel, api.Device.FeatureLevel)
	assert.Equal(t, -1, api.Index("CheckDeviceSupport 0", 0), "software adapter must not be probed")
	assert.NotEqual(t, -1, api.Index("CheckDeviceSupport 1", 0))

	sc := api.Factory.SwapChain
	require.NotNil(t, sc)
	assert.Equal(t, uint32(2), sc.Desc.BufferCount)
	assert.Equal(t, uint32(1024), sc.Desc.Width)
	assert.Equal(t, uint32(768), sc.Desc.Height)
	assert.Equal(t, gpu.FormatR8G8B8A8Unorm, sc.Desc.Format)
	assert.Equal(t, gpu.SwapEffectFlipDiscard, sc.Desc.SwapEffect)
	assert.Equal(t, gpu.UsageRenderTargetOutput, sc.Desc.BufferUsage)
	assert.Equal(t, gpu.SampleDesc{Count: 1}, sc.Desc.SampleDesc)
	assert.Equal(t, testWindow.Handle, sc.Hwnd)

	require.Len(t, api.Device.Heaps, 1)
	heap := api.Device.Heaps[0]
	assert.Equal(t, gpu.DescriptorHeapTypeRTV, heap.Desc.Type)
	assert.Equal(t, uint32(2), heap.Desc.NumDescriptors)
	assert.Equal(t, gpu.DescriptorHeapFlagNone, heap.Desc.Flags)

	assert.Equal(t, gpu.CommandListTypeDirect, api.Device.Queue.Desc.Type)
	require.Len(t, api.Device.Lists, 1)
	assert.False(t, api.Device.Lists[0].Open(), "command list must be closed after bind")

	assert.Equal(t, uint64(1), s.FenceValue())
	assert.Contains(t, []uint32{0, 1}, s.FrameIndex())
	assert.Empty(t, api.Violations)
}

func TestStartupWARP(t *testing.T) {
	api := gputest.New()
	s := newBound(t, api, Options{UseWARP: true})

	assert.Equal(t, api.Warp.Description, s.Adapter().Description)
	assert.Equal(t, 1, api.Count("EnumWarpAdapter"))
	assert.NotEqual(t, -1, api.Index("CreateDevice -1", 0))
	assert.Contains(t, s.Title(), " (WARP)")
	assert.Empty(t, api.Violations)
}

func TestTitle(t *testing.T) {
	api := gputest.New()
	s := newSample(t, api, Options{Title: "triangle"})
	assert.Equal(t, "triangle", s.Title())

	w, h := s.WindowSize()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
}

func TestAdapterSelection(t *testing.T) {
	t.Run("skips unsupported", func(t *testing.T) {
		api := gputest.New()
		api.Adapters = append(api.Adapters, gpu.AdapterDesc{Description: "Second GPU", VendorID: 0x1002})
		api.Unsupported = map[uint32]bool{1: true}
		s := newSample(t, api, Options{})

		assert.Equal(t, "Second GPU", s.Adapter().Description)
		assert.NotEqual(t, -1, api.Index("CreateDevice 2", 0))
	})

	t.Run("none compatible", func(t *testing.T) {
		api := gputest.New()
		api.Unsupported = map[uint32]bool{1: true}
		_, err := New(api, Options{})

		require.ErrorIs(t, err, ErrNoCompatibleAdapter)
		assert.Empty(t, api.Live())
	})

	t.Run("only software", func(t *testing.T) {
		api := gputest.New()
		api.Adapters = api.Adapters[:1]
		_, err := New(api, Options{})

		require.ErrorIs(t, err, ErrNoCompatibleAdapter)
		assert.Equal(t, 0, api.Count("EnumWarpAdapter"))
	})

	t.Run("enumeration error", func(t *testing.T) {
		api := gputest.New()
		api.Fail("EnumAdapters", errors.New("DXGI_ERROR_INVALID_CALL"))
		_, err := New(api, Options{})

		require.ErrorIs(t, err, ErrNoCompatibleAdapter)
		assert.Contains(t, err.Error(), "DXGI_ERROR_INVALID_CALL")
	})
}

func TestDeviceCreationFailedIsFatal(t *testing.T) {
	api := gputest.New()
	api.Fail("CreateDevice", errors.New("E_OUTOFMEMORY"))
	_, err := New(api, Options{})

	require.ErrorIs(t, err, ErrDeviceCreationFailed)
	assert.Equal(t, 0, api.Count("EnumWarpAdapter"))
	assert.Empty(t, api.Live())
}

func TestDebugLayer(t *testing.T) {
	old := debugLayer
	debugLayer = true
	t.Cleanup(func() { debugLayer = old })

	t.Run("enabled", func(t *testing.T) {
		api := gputest.New()
		newBound(t, api, Options{})

		enable := api.Index("EnableDebugLayer", 0)
		require.NotEqual(t, -1, enable)
		assert.Less(t, enable, api.Index("CreateFactory 1", 0))
		assert.Equal(t, gpu.FactoryFlagDebug, api.FactoryFlags)
		require.Len(t, api.Compiles, 2)
		for _, c := range api.Compiles {
			assert.Equal(t, gpu.CompileFlagDebug|gpu.CompileFlagSkipOptimization, c.Flags)
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		api := gputest.New()
		api.Fail("EnableDebugLayer", errors.New("E_NOINTERFACE"))
		newSample(t, api, Options{})

		assert.Equal(t, gpu.FactoryFlag(0), api.FactoryFlags)
	})
}

func TestRTVHandleMath(t *testing.T) {
	for _, stride := range []uint32{32, 56} {
		api := gputest.New()
		api.RTVDescriptorSize = stride
		s := newBound(t, api, Options{})

		base := api.Device.Heaps[0].Base
		sc := api.Factory.SwapChain
		require.Len(t, api.Device.RTVs, FrameCount)
		for i := 0; i < FrameCount; i++ {
			assert.Same(t, sc.Buffers[i], api.Device.RTVs[base+uintptr(i)*uintptr(stride)], "stride %d slot %d", stride, i)
		}

		for frame := 0; frame < 3; frame++ {
			index := s.FrameIndex()
			require.NoError(t, s.Render())
			cmds := api.Device.Queue.Executed[frame]
			for _, c := range cmds {
				if c.Op == gputest.OpOMSetRenderTargets || c.Op == gputest.OpClearRenderTargetView {
					assert.Equal(t, base+uintptr(index)*uintptr(stride), c.RTVs[0].Ptr)
				}
			}
		}
	}
}

func TestVertexPayload(t *testing.T) {
	api := gputest.New()
	newBound(t, api, Options{})

	require.Len(t, api.Device.Resources, 1)
	vb := api.Device.Resources[0]
	assert.Equal(t, gpu.HeapTypeUpload, vb.Heap.Type)
	assert.Equal(t, gpu.ResourceDimensionBuffer, vb.Desc.Dimension)
	assert.Equal(t, uint64(84), vb.Desc.Width)
	assert.Equal(t, gpu.TextureLayoutRowMajor, vb.Desc.Layout)
	assert.Equal(t, gpu.ResourceStateGenericRead, vb.State)

	vertices := TriangleVertices(float32(1024) / float32(768))
	want := EncodeVertices(vertices[:])
	require.Len(t, want, 84)
	require.Len(t, vb.Unmapped, 1)
	assert.Equal(t, want, vb.Unmapped[0])

	assert.InDelta(t, 0.333333, vertices[0].Position[1], 1e-6)
	assert.InDelta(t, -0.333333, vertices[1].Position[1], 1e-6)
	assert.InDelta(t, -0.333333, vertices[2].Position[1], 1e-6)

	assert.Empty(t, api.Device.Lists[0].Commands, "nothing is recorded before the first frame")
}

func TestVertexBufferView(t *testing.T) {
	api := gputest.New()
	s := newBound(t, api, Options{})
	require.NoError(t, s.Render())

	vb := api.Device.Resources[0]
	var found bool
	for _, c := range api.Device.Queue.Executed[0] {
		if c.Op != gputest.OpIASetVertexBuffers {
			continue
		}
		found = true
		assert.Equal(t, uint32(0), c.StartSlot)
		require.Len(t, c.VertexBuffers, 1)
		assert.Equal(t, gpu.VertexBufferView{
			BufferLocation: vb.GetGPUVirtualAddress(),
			StrideInBytes:  28,
			SizeInBytes:    84,
		}, c.VertexBuffers[0])
	}
	assert.True(t, found)
}

func TestPipelineState(t *testing.T) {
	api := gputest.New()
	newBound(t, api, Options{ShaderPath: `C:\triangle\shaders.hlsl`})

	require.Equal(t, []gputest.CompileCall{
		{Path: `C:\triangle\shaders.hlsl`, EntryPoint: "VSMain", Target: "vs_5_0"},
		{Path: `C:\triangle\shaders.hlsl`, EntryPoint: "PSMain", Target: "ps_5_0"},
	}, api.Compiles)

	require.Len(t, api.Device.Pipelines, 1)
	desc := api.Device.Pipelines[0].Desc

	require.Len(t, desc.InputLayout, 2)
	assert.Equal(t, "POSITION", desc.InputLayout[0].SemanticName)
	assert.Equal(t, "COLOR", desc.InputLayout[1].SemanticName)
	assert.Equal(t, []uint32{0, 12}, []uint32{desc.InputLayout[0].AlignedByteOffset, desc.InputLayout[1].AlignedByteOffset})
	assert.Equal(t, []gpu.Format{gpu.FormatR32G32B32Float, gpu.FormatR32G32B32A32Float}, []gpu.Format{desc.InputLayout[0].Format, desc.InputLayout[1].Format})
	for _, e := range desc.InputLayout {
		assert.Equal(t, uint32(0), e.InputSlot)
		assert.Equal(t, gpu.InputClassificationPerVertexData, e.InputSlotClass)
	}

	require.Len(t, api.Device.RootSignatures, 1)
	assert.Same(t, api.Device.RootSignatures[0], desc.RootSignature)
	assert.Equal(t, []byte("rootsig:1"), api.Device.RootSignatures[0].Blob)
	assert.Equal(t, []byte("vs_5_0:VSMain"), desc.VS)
	assert.Equal(t, []byte("ps_5_0:PSMain"), desc.PS)

	assert.Equal(t, uint32(0xFFFFFFFF), desc.SampleMask)
	assert.Equal(t, gpu.FillModeSolid, desc.RasterizerState.FillMode)
	assert.Equal(t, gpu.CullModeNone, desc.RasterizerState.CullMode)
	assert.False(t, desc.DepthStencilState.DepthEnable)
	assert.False(t, desc.DepthStencilState.StencilEnable)
	assert.Equal(t, gpu.DefaultBlendDesc(), desc.BlendState)
	assert.Equal(t, gpu.PrimitiveTopologyTypeTriangle, desc.PrimitiveTopologyType)
	assert.Equal(t, []gpu.Format{gpu.FormatR8G8B8A8Unorm}, desc.RTVFormats)
	assert.Equal(t, gpu.SampleDesc{Count: 1}, desc.SampleDesc)

	assert.Same(t, api.Device.Pipelines[0], api.Device.Lists[0].InitialState)
}

func TestAltEnterDisabled(t *testing.T) {
	api := gputest.New()
	newBound(t, api, Options{})

	assert.Equal(t, gpu.WindowAssociationNoAltEnter, api.Factory.Associations[testWindow.Handle])
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		op   string
		kind error
	}{
		{"CreateCommandQueue", ErrCommandQueueCreationFailed},
		{"CreateSwapChainForHwnd", ErrSwapChainCreationFailed},
		{"MakeWindowAssociation", ErrSwapChainCreationFailed},
		{"CreateDescriptorHeap", ErrDescriptorHeapAllocationFailed},
		{"GetBuffer", ErrSwapChainCreationFailed},
		{"CreateCommandAllocator", ErrCommandQueueCreationFailed},
		{"SerializeRootSignature", ErrPipelineStateCreationFailed},
		{"CreateRootSignature", ErrPipelineStateCreationFailed},
		{"CompileFromFile", ErrShaderCompilationFailed},
		{"CreateGraphicsPipelineState", ErrPipelineStateCreationFailed},
		{"CreateGraphicsCommandList", ErrCommandQueueCreationFailed},
		{"CommandList.Close", ErrCommandRecordingFailed},
		{"CreateCommittedResource", ErrResourceCreationFailed},
		{"Map", ErrMapFailed},
		{"CreateFence", ErrFenceCreationFailed},
		{"CreateEvent", ErrFenceCreationFailed},
	}
	for _, tc := range tests {
		t.Run(tc.op, func(t *testing.T) {
			api := gputest.New()
			cause := errors.New("E_FAIL")
			api.Fail(tc.op, cause)
			s := newSample(t, api, Options{})

			err := s.BindToWindow(testWindow)
			require.ErrorIs(t, err, tc.kind)
			assert.ErrorIs(t, err, cause)
			assert.ElementsMatch(t, []string{"Factory", "Device"}, api.Live())
			assert.ErrorIs(t, s.Render(), ErrNotBound)

			s.Release()
			assert.Empty(t, api.Live())
		})
	}
}

func TestShaderCompilationDiagnostics(t *testing.T) {
	api := gputest.New()
	api.CompileDiagnostics = "shaders.hlsl(12,5): error X3004: undeclared identifier 'colour'"
	api.Fail("CompileFromFile", errors.New("E_FAIL"))
	s := newSample(t, api, Options{})

	err := s.BindToWindow(testWindow)
	require.ErrorIs(t, err, ErrShaderCompilationFailed)
	var ce *gpu.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "VSMain", ce.EntryPoint)
	assert.Contains(t, err.Error(), "undeclared identifier 'colour'")
}

func TestBindOnce(t *testing.T) {
	api := gputest.New()
	s := newSample(t, api, Options{})

	assert.ErrorIs(t, s.Render(), ErrNotBound)
	assert.Error(t, s.BindToWindow(Window{Handle: 1, Width: 0, Height: 768}))
	require.NoError(t, s.BindToWindow(testWindow))
	assert.ErrorIs(t, s.BindToWindow(testWindow), ErrAlreadyBound)
}

func TestRelease(t *testing.T) {
	api := gputest.New()
	s := newBound(t, api, Options{})
	require.NoError(t, s.Render())

	start := len(api.Log)
	s.Release()
	s.Release()

	assert.Empty(t, api.Live())
	assert.Empty(t, api.Violations)
	require.Len(t, api.Events, 1)
	assert.True(t, api.Events[0].Closed())

	// The GPU is drained once before anything is released.
	assert.Equal(t, []uint64{1, 2}, api.Device.Fences[0].Signals)

	order := []string{
		"CloseEvent",
		"Release Fence",
		"Release Resource",
		"Release CommandList",
		"Release PipelineState",
		"Release RootSignature",
		"Release CommandAllocator",
		"Release BackBuffer",
		"Release DescriptorHeap",
		"Release SwapChain",
		"Release CommandQueue",
		"Release Device",
		"Release Factory",
	}
	last := start
	for _, entry := range order {
		i := api.Index(entry, last)
		require.NotEqual(t, -1, i, "%s missing or out of order", entry)
		last = i
	}
}

func TestDescribeAdapter(t *testing.T) {
	attrs := DescribeAdapter(gpu.AdapterDesc{
		Description:          "Test GPU",
		VendorID:             0x10de,
		DedicatedVideoMemory: 8 << 30,
	})
	require.Zero(t, len(attrs)%2)
	kv := map[any]any{}
	for i := 0; i < len(attrs); i += 2 {
		kv[attrs[i]] = attrs[i+1]
	}
	assert.Equal(t, "Test GPU", kv["description"])
	assert.Equal(t, "0x10de", kv["vendor_id"])
	assert.Equal(t, "8.00GB", kv["dedicated_video_memory"])
	assert.Equal(t, "0B", kv["shared_system_memory"])
	assert.Equal(t, false, kv["software"])
}
