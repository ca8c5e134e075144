package d3d

type iD3D12ObjectVtbl struct {
	iUnknownVtbl

	GetPrivateData          uintptr
	SetPrivateData          uintptr
	SetPrivateDataInterface uintptr
	SetName                 uintptr
}

type iD3D12DeviceChildVtbl struct {
	iD3D12ObjectVtbl

	GetDevice uintptr
}

// ID3D12Pageable adds nothing to ID3D12DeviceChild.
type iD3D12PageableVtbl = iD3D12DeviceChildVtbl

type ID3D12DebugVtbl struct {
	iUnknownVtbl

	EnableDebugLayer uintptr
}

type ID3D12DeviceVtbl struct {
	iD3D12ObjectVtbl

	GetNodeCount                     uintptr
	CreateCommandQueue               uintptr
	CreateCommandAllocator           uintptr
	CreateGraphicsPipelineState      uintptr
	CreateComputePipelineState       uintptr
	CreateCommandList                uintptr
	CheckFeatureSupport              uintptr
	CreateDescriptorHeap             uintptr
	GetDescriptorHandleIncrementSize uintptr
	CreateRootSignature              uintptr
	CreateConstantBufferView         uintptr
	CreateShaderResourceView         uintptr
	CreateUnorderedAccessView        uintptr
	CreateRenderTargetView           uintptr
	CreateDepthStencilView           uintptr
	CreateSampler                    uintptr
	CopyDescriptors                  uintptr
	CopyDescriptorsSimple            uintptr
	GetResourceAllocationInfo        uintptr
	GetCustomHeapProperties          uintptr
	CreateCommittedResource          uintptr
	CreateHeap                       uintptr
	CreatePlacedResource             uintptr
	CreateReservedResource           uintptr
	CreateSharedHandle               uintptr
	OpenSharedHandle                 uintptr
	OpenSharedHandleByName           uintptr
	MakeResident                     uintptr
	Evict                            uintptr
	CreateFence                      uintptr
	GetDeviceRemovedReason           uintptr
	GetCopyableFootprints            uintptr
	CreateQueryHeap                  uintptr
	SetStablePowerState              uintptr
	CreateCommandSignature           uintptr
	GetResourceTiling                uintptr
	GetAdapterLuid                   uintptr
}

type ID3D12CommandQueueVtbl struct {
	iD3D12PageableVtbl

	UpdateTileMappings    uintptr
	CopyTileMappings      uintptr
	ExecuteCommandLists   uintptr
	SetMarker             uintptr
	BeginEvent            uintptr
	EndEvent              uintptr
	Signal                uintptr
	Wait                  uintptr
	GetTimestampFrequency uintptr
	GetClockCalibration   uintptr
	GetDesc               uintptr
}

type ID3D12CommandAllocatorVtbl struct {
	iD3D12PageableVtbl

	Reset uintptr
}

type iD3D12CommandListVtbl struct {
	iD3D12DeviceChildVtbl

	GetType uintptr
}

type ID3D12GraphicsCommandListVtbl struct {
	iD3D12CommandListVtbl

	Close                              uintptr
	Reset                              uintptr
	ClearState                         uintptr
	DrawInstanced                      uintptr
	DrawIndexedInstanced               uintptr
	Dispatch                           uintptr
	CopyBufferRegion                   uintptr
	CopyTextureRegion                  uintptr
	CopyResource                       uintptr
	CopyTiles                          uintptr
	ResolveSubresource                 uintptr
	IASetPrimitiveTopology             uintptr
	RSSetViewports                     uintptr
	RSSetScissorRects                  uintptr
	OMSetBlendFactor                   uintptr
	OMSetStencilRef                    uintptr
	SetPipelineState                   uintptr
	ResourceBarrier                    uintptr
	ExecuteBundle                      uintptr
	SetDescriptorHeaps                 uintptr
	SetComputeRootSignature            uintptr
	SetGraphicsRootSignature           uintptr
	SetComputeRootDescriptorTable      uintptr
	SetGraphicsRootDescriptorTable     uintptr
	SetComputeRoot32BitConstant        uintptr
	SetGraphicsRoot32BitConstant       uintptr
	SetComputeRoot32BitConstants       uintptr
	SetGraphicsRoot32BitConstants      uintptr
	SetComputeRootConstantBufferView   uintptr
	SetGraphicsRootConstantBufferView  uintptr
	SetComputeRootShaderResourceView   uintptr
	SetGraphicsRootShaderResourceView  uintptr
	SetComputeRootUnorderedAccessView  uintptr
	SetGraphicsRootUnorderedAccessView uintptr
	IASetIndexBuffer                   uintptr
	IASetVertexBuffers                 uintptr
	SOSetTargets                       uintptr
	OMSetRenderTargets                 uintptr
	ClearDepthStencilView              uintptr
	ClearRenderTargetView              uintptr
	ClearUnorderedAccessViewUint       uintptr
	ClearUnorderedAccessViewFloat      uintptr
	DiscardResource                    uintptr
	BeginQuery                         uintptr
	EndQuery                           uintptr
	ResolveQueryData                   uintptr
	SetPredication                     uintptr
	SetMarker                          uintptr
	BeginEvent                         uintptr
	EndEvent                           uintptr
	ExecuteIndirect                    uintptr
}

type ID3D12DescriptorHeapVtbl struct {
	iD3D12PageableVtbl

	GetDesc                            uintptr
	GetCPUDescriptorHandleForHeapStart uintptr
	GetGPUDescriptorHandleForHeapStart uintptr
}

type ID3D12ResourceVtbl struct {
	iD3D12PageableVtbl

	Map                  uintptr
	Unmap                uintptr
	GetDesc              uintptr
	GetGPUVirtualAddress uintptr
	WriteToSubresource   uintptr
	ReadFromSubresource  uintptr
	GetHeapProperties    uintptr
}

type ID3D12FenceVtbl struct {
	iD3D12PageableVtbl

	GetCompletedValue    uintptr
	SetEventOnCompletion uintptr
	Signal               uintptr
}

type ID3D12RootSignatureVtbl struct {
	iD3D12DeviceChildVtbl
}

type ID3D12PipelineStateVtbl struct {
	iD3D12PageableVtbl

	GetCachedBlob uintptr
}

type ID3DBlobVtbl struct {
	iUnknownVtbl

	GetBufferPointer uintptr
	GetBufferSize    uintptr
}
