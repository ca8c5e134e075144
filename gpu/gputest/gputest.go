// Package gputest implements the gpu interfaces in memory.
//
// Every call is appended to API.Log. Command lists record Commands and
// the queue replays them at submission: it tracks resource states, clears
// render targets into RGBA8 pixels and counts draws. Anything a real driver
// would reject (a barrier with the wrong StateBefore, submitting an open list,
// resetting an allocator the GPU still uses) is appended to API.Violations.
//
// Fences complete lazily: a signaled value is reached only when the CPU
// blocks on an event registered for it, unless CompleteOnSignal is set.
package gputest

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/kirides/hellotriangle/gpu"
)

// ErrAllocatorInUse is returned by CommandAllocator.Reset while the queue has
// not finished the work recorded from it.
var ErrAllocatorInUse = errors.New("gputest: command allocator in use by the GPU")

var (
	_ gpu.API                 = (*API)(nil)
	_ gpu.Factory             = (*Factory)(nil)
	_ gpu.Adapter             = (*Adapter)(nil)
	_ gpu.Device              = (*Device)(nil)
	_ gpu.CommandQueue        = (*CommandQueue)(nil)
	_ gpu.CommandAllocator    = (*CommandAllocator)(nil)
	_ gpu.GraphicsCommandList = (*CommandList)(nil)
	_ gpu.SwapChain           = (*SwapChain)(nil)
	_ gpu.DescriptorHeap      = (*DescriptorHeap)(nil)
	_ gpu.Resource            = (*Resource)(nil)
	_ gpu.Fence               = (*Fence)(nil)
	_ gpu.Event               = (*Event)(nil)
	_ gpu.RootSignature       = (*RootSignature)(nil)
	_ gpu.PipelineState       = (*PipelineState)(nil)
)

// CompileCall is one CompileFromFile invocation.
type CompileCall struct {
	Path       string
	EntryPoint string
	Target     string
	Flags      gpu.CompileFlag
}

type API struct {
	// Adapters is what Factory.EnumAdapters enumerates, in order.
	Adapters []gpu.AdapterDesc
	// Unsupported marks adapter indices that fail CheckDeviceSupport.
	Unsupported map[uint32]bool
	Warp        gpu.AdapterDesc
	// RTVDescriptorSize is the stride reported for RTV heaps.
	RTVDescriptorSize uint32
	// InitialBackBufferIndex is the swap chain's first back buffer.
	InitialBackBufferIndex uint32
	CompileDiagnostics     string
	CompleteOnSignal       bool

	Log               []string
	Violations        []string
	DebugLayerEnabled bool
	FactoryFlags      gpu.FactoryFlag
	Compiles          []CompileCall
	Factory           *Factory
	Device            *Device
	Events            []*Event

	failures map[string]error
	objects  []*object
	nextVA   uint64
	nextHeap uintptr
}

// New returns an API with one software and one hardware adapter.
func New() *API {
	return &API{
		Adapters: []gpu.AdapterDesc{
			{Description: "Microsoft Basic Render Driver", VendorID: 0x1414, DeviceID: 0x8c, Flags: gpu.AdapterFlagSoftware},
			{Description: "Test GPU", VendorID: 0x10de, DeviceID: 0x2484, DedicatedVideoMemory: 8 << 30, SharedSystemMemory: 16 << 30},
		},
		Warp:              gpu.AdapterDesc{Description: "Microsoft Basic Render Driver (WARP)", VendorID: 0x1414, DeviceID: 0x8c, Flags: gpu.AdapterFlagSoftware},
		RTVDescriptorSize: 32,
		nextVA:            0x10000000,
		nextHeap:          0x100000,
	}
}

// Fail makes every later call of op return err. Op names are method names,
// qualified with the type where two types share one.
func (api *API) Fail(op string, err error) {
	if api.failures == nil {
		api.failures = map[string]error{}
	}
	api.failures[op] = err
}

func (api *API) fail(op string) error {
	return api.failures[op]
}

func (api *API) log(format string, args ...any) {
	api.Log = append(api.Log, fmt.Sprintf(format, args...))
}

func (api *API) violate(format string, args ...any) {
	api.Violations = append(api.Violations, fmt.Sprintf(format, args...))
}

// Live returns the kinds of objects that were created but not released.
func (api *API) Live() []string {
	var live []string
	for _, o := range api.objects {
		if o.refs > 0 {
			live = append(live, o.kind)
		}
	}
	return live
}

// Count returns how many log entries equal entry.
func (api *API) Count(entry string) int {
	n := 0
	for _, l := range api.Log {
		if l == entry {
			n++
		}
	}
	return n
}

// Index returns the position of the first log entry equal to entry at or
// after from, or -1.
func (api *API) Index(entry string, from int) int {
	for i := from; i < len(api.Log); i++ {
		if api.Log[i] == entry {
			return i
		}
	}
	return -1
}

type object struct {
	api  *API
	kind string
	refs int
}

func (api *API) newObject(kind string) object {
	return object{api: api, kind: kind, refs: 1}
}

func (api *API) track(o *object) {
	api.objects = append(api.objects, o)
}

func (o *object) Release() {
	o.refs--
	if o.refs < 0 {
		o.api.violate("%s released more often than referenced", o.kind)
	}
	o.api.log("Release %s", o.kind)
}

func (api *API) EnableDebugLayer() error {
	if err := api.fail("EnableDebugLayer"); err != nil {
		return err
	}
	api.log("EnableDebugLayer")
	api.DebugLayerEnabled = true
	return nil
}

func (api *API) CreateFactory(flags gpu.FactoryFlag) (gpu.Factory, error) {
	if err := api.fail("CreateFactory"); err != nil {
		return nil, err
	}
	api.log("CreateFactory %d", flags)
	api.FactoryFlags = flags
	f := &Factory{object: api.newObject("Factory"), Associations: map[uintptr]gpu.WindowAssociationFlag{}}
	api.track(&f.object)
	api.Factory = f
	return f, nil
}

func (api *API) CheckDeviceSupport(a gpu.Adapter, level gpu.FeatureLevel) error {
	ad := a.(*Adapter)
	api.log("CheckDeviceSupport %d", ad.Index)
	if err := api.fail("CheckDeviceSupport"); err != nil {
		return err
	}
	if ad.Index >= 0 && api.Unsupported[uint32(ad.Index)] {
		return fmt.Errorf("gputest: adapter %d does not support feature level 0x%x", ad.Index, uint32(level))
	}
	return nil
}

func (api *API) CreateDevice(a gpu.Adapter, level gpu.FeatureLevel) (gpu.Device, error) {
	if err := api.fail("CreateDevice"); err != nil {
		return nil, err
	}
	ad := a.(*Adapter)
	api.log("CreateDevice %d", ad.Index)
	d := &Device{
		object:       api.newObject("Device"),
		Adapter:      ad.desc,
		FeatureLevel: level,
		RTVs:         map[uintptr]*Resource{},
	}
	api.track(&d.object)
	api.Device = d
	return d, nil
}

func (api *API) SerializeRootSignature(desc *gpu.RootSignatureDesc) ([]byte, error) {
	if err := api.fail("SerializeRootSignature"); err != nil {
		return nil, err
	}
	api.log("SerializeRootSignature %d", desc.Flags)
	return []byte(fmt.Sprintf("rootsig:%d", desc.Flags)), nil
}

func (api *API) CompileFromFile(path, entryPoint, target string, flags gpu.CompileFlag) ([]byte, error) {
	api.Compiles = append(api.Compiles, CompileCall{Path: path, EntryPoint: entryPoint, Target: target, Flags: flags})
	if err := api.fail("CompileFromFile"); err != nil {
		return nil, &gpu.CompileError{
			Path:        path,
			EntryPoint:  entryPoint,
			Target:      target,
			Diagnostics: api.CompileDiagnostics,
			Err:         err,
		}
	}
	api.log("CompileFromFile %s %s", entryPoint, target)
	return []byte(target + ":" + entryPoint), nil
}

func (api *API) CreateEvent() (gpu.Event, error) {
	if err := api.fail("CreateEvent"); err != nil {
		return nil, err
	}
	api.log("CreateEvent")
	e := &Event{api: api}
	api.Events = append(api.Events, e)
	return e, nil
}

type Factory struct {
	object
	Associations map[uintptr]gpu.WindowAssociationFlag
	SwapChain    *SwapChain
}

func (f *Factory) EnumAdapters(index uint32) (gpu.Adapter, error) {
	if err := f.api.fail("EnumAdapters"); err != nil {
		return nil, err
	}
	if int(index) >= len(f.api.Adapters) {
		return nil, gpu.ErrNotFound
	}
	a := &Adapter{object: f.api.newObject("Adapter"), Index: int(index), desc: f.api.Adapters[index]}
	f.api.track(&a.object)
	return a, nil
}

func (f *Factory) EnumWarpAdapter() (gpu.Adapter, error) {
	if err := f.api.fail("EnumWarpAdapter"); err != nil {
		return nil, err
	}
	f.api.log("EnumWarpAdapter")
	a := &Adapter{object: f.api.newObject("Adapter"), Index: -1, desc: f.api.Warp}
	f.api.track(&a.object)
	return a, nil
}

func (f *Factory) CreateSwapChainForHwnd(queue gpu.CommandQueue, hwnd uintptr, desc *gpu.SwapChainDesc) (gpu.SwapChain, error) {
	if err := f.api.fail("CreateSwapChainForHwnd"); err != nil {
		return nil, err
	}
	q, ok := queue.(*CommandQueue)
	if !ok || q == nil {
		return nil, errors.New("gputest: swap chain needs a command queue")
	}
	f.api.log("CreateSwapChainForHwnd %#x", hwnd)
	sc := &SwapChain{
		object: f.api.newObject("SwapChain"),
		Desc:   *desc,
		Hwnd:   hwnd,
	}
	for i := uint32(0); i < desc.BufferCount; i++ {
		r := f.api.newResource("BackBuffer", gpu.ResourceDesc{
			Dimension:        gpu.ResourceDimensionTexture2D,
			Width:            uint64(desc.Width),
			Height:           desc.Height,
			DepthOrArraySize: 1,
			MipLevels:        1,
			Format:           desc.Format,
			SampleDesc:       desc.SampleDesc,
		}, gpu.ResourceStatePresent)
		// The swap chain owns its buffers; GetBuffer hands out references.
		r.refs = 0
		sc.Buffers = append(sc.Buffers, r)
	}
	if desc.BufferCount > 0 {
		sc.current = f.api.InitialBackBufferIndex % desc.BufferCount
	}
	f.api.track(&sc.object)
	f.SwapChain = sc
	return sc, nil
}

func (f *Factory) MakeWindowAssociation(hwnd uintptr, flags gpu.WindowAssociationFlag) error {
	if err := f.api.fail("MakeWindowAssociation"); err != nil {
		return err
	}
	f.api.log("MakeWindowAssociation %#x %d", hwnd, flags)
	f.Associations[hwnd] = flags
	return nil
}

type Adapter struct {
	object
	// Index is the enumeration index, -1 for the WARP adapter.
	Index int
	desc  gpu.AdapterDesc
}

func (a *Adapter) Desc() (gpu.AdapterDesc, error) {
	if err := a.api.fail("Adapter.Desc"); err != nil {
		return gpu.AdapterDesc{}, err
	}
	return a.desc, nil
}

type Device struct {
	object
	Adapter        gpu.AdapterDesc
	FeatureLevel   gpu.FeatureLevel
	Queue          *CommandQueue
	Heaps          []*DescriptorHeap
	RTVs           map[uintptr]*Resource
	RootSignatures []*RootSignature
	Pipelines      []*PipelineState
	Resources      []*Resource
	Fences         []*Fence
	Lists          []*CommandList
}

func (d *Device) CreateCommandQueue(desc *gpu.CommandQueueDesc) (gpu.CommandQueue, error) {
	if err := d.api.fail("CreateCommandQueue"); err != nil {
		return nil, err
	}
	d.api.log("CreateCommandQueue %d", desc.Type)
	q := &CommandQueue{object: d.api.newObject("CommandQueue"), Desc: *desc, device: d}
	d.api.track(&q.object)
	d.Queue = q
	return q, nil
}

func (d *Device) CreateCommandAllocator(typ gpu.CommandListType) (gpu.CommandAllocator, error) {
	if err := d.api.fail("CreateCommandAllocator"); err != nil {
		return nil, err
	}
	d.api.log("CreateCommandAllocator %d", typ)
	a := &CommandAllocator{object: d.api.newObject("CommandAllocator"), Type: typ, device: d}
	d.api.track(&a.object)
	return a, nil
}

func (d *Device) CreateGraphicsCommandList(typ gpu.CommandListType, allocator gpu.CommandAllocator, initial gpu.PipelineState) (gpu.GraphicsCommandList, error) {
	if err := d.api.fail("CreateGraphicsCommandList"); err != nil {
		return nil, err
	}
	d.api.log("CreateGraphicsCommandList %d", typ)
	a := allocator.(*CommandAllocator)
	l := &CommandList{object: d.api.newObject("CommandList"), Type: typ, device: d, allocator: a, open: true, InitialState: initial}
	a.openList = l
	d.api.track(&l.object)
	d.Lists = append(d.Lists, l)
	return l, nil
}

func (d *Device) CreateDescriptorHeap(desc *gpu.DescriptorHeapDesc) (gpu.DescriptorHeap, error) {
	if err := d.api.fail("CreateDescriptorHeap"); err != nil {
		return nil, err
	}
	d.api.log("CreateDescriptorHeap %d %d", desc.Type, desc.NumDescriptors)
	h := &DescriptorHeap{object: d.api.newObject("DescriptorHeap"), Desc: *desc, Base: d.api.nextHeap}
	d.api.nextHeap += 0x100000
	d.api.track(&h.object)
	d.Heaps = append(d.Heaps, h)
	return h, nil
}

func (d *Device) DescriptorHandleIncrementSize(typ gpu.DescriptorHeapType) uint32 {
	d.api.log("DescriptorHandleIncrementSize %d", typ)
	if typ == gpu.DescriptorHeapTypeRTV {
		return d.api.RTVDescriptorSize
	}
	return 32
}

func (d *Device) CreateRenderTargetView(r gpu.Resource, desc *gpu.RenderTargetViewDesc, dest gpu.CPUDescriptorHandle) {
	d.api.log("CreateRenderTargetView %#x", dest.Ptr)
	if desc != nil {
		d.api.violate("render target view created with an explicit description")
	}
	res, ok := r.(*Resource)
	if !ok || res == nil {
		d.api.violate("render target view without a resource")
		return
	}
	d.RTVs[dest.Ptr] = res
}

func (d *Device) CreateRootSignature(blob []byte) (gpu.RootSignature, error) {
	if err := d.api.fail("CreateRootSignature"); err != nil {
		return nil, err
	}
	d.api.log("CreateRootSignature")
	rs := &RootSignature{object: d.api.newObject("RootSignature"), Blob: append([]byte(nil), blob...)}
	d.api.track(&rs.object)
	d.RootSignatures = append(d.RootSignatures, rs)
	return rs, nil
}

func (d *Device) CreateGraphicsPipelineState(desc *gpu.GraphicsPipelineStateDesc) (gpu.PipelineState, error) {
	if err := d.api.fail("CreateGraphicsPipelineState"); err != nil {
		return nil, err
	}
	d.api.log("CreateGraphicsPipelineState")
	ps := &PipelineState{object: d.api.newObject("PipelineState"), Desc: *desc}
	ps.Desc.InputLayout = append([]gpu.InputElementDesc(nil), desc.InputLayout...)
	ps.Desc.RTVFormats = append([]gpu.Format(nil), desc.RTVFormats...)
	d.api.track(&ps.object)
	d.Pipelines = append(d.Pipelines, ps)
	return ps, nil
}

func (d *Device) CreateCommittedResource(heap *gpu.HeapProperties, flags gpu.HeapFlag, desc *gpu.ResourceDesc, initial gpu.ResourceStates) (gpu.Resource, error) {
	if err := d.api.fail("CreateCommittedResource"); err != nil {
		return nil, err
	}
	d.api.log("CreateCommittedResource %d %d", heap.Type, desc.Width)
	r := d.api.newResource("Resource", *desc, initial)
	r.Heap = *heap
	d.Resources = append(d.Resources, r)
	return r, nil
}

func (d *Device) CreateFence(initial uint64, flags gpu.FenceFlag) (gpu.Fence, error) {
	if err := d.api.fail("CreateFence"); err != nil {
		return nil, err
	}
	d.api.log("CreateFence %d", initial)
	f := &Fence{object: d.api.newObject("Fence"), completed: initial, pending: initial}
	d.api.track(&f.object)
	d.Fences = append(d.Fences, f)
	return f, nil
}

type RootSignature struct {
	object
	Blob []byte
}

type PipelineState struct {
	object
	Desc gpu.GraphicsPipelineStateDesc
}

type DescriptorHeap struct {
	object
	Desc gpu.DescriptorHeapDesc
	Base uintptr
}

func (h *DescriptorHeap) GetCPUDescriptorHandleForHeapStart() gpu.CPUDescriptorHandle {
	return gpu.CPUDescriptorHandle{Ptr: h.Base}
}

// Resource is a buffer backed by Data or a texture backed by RGBA8 Pixels.
type Resource struct {
	object
	Desc gpu.ResourceDesc
	Heap gpu.HeapProperties
	// State is the GPU-side state after the last executed barrier.
	State    gpu.ResourceStates
	Data     []byte
	Pixels   []byte
	Draws    int
	Unmapped [][]byte

	va     uint64
	mapped int
}

func (api *API) newResource(kind string, desc gpu.ResourceDesc, state gpu.ResourceStates) *Resource {
	r := &Resource{object: api.newObject(kind), Desc: desc, State: state, va: api.nextVA}
	api.nextVA += 0x10000
	if desc.Dimension == gpu.ResourceDimensionBuffer {
		r.Data = make([]byte, desc.Width)
	} else {
		r.Pixels = make([]byte, int(desc.Width)*int(desc.Height)*4)
	}
	api.track(&r.object)
	return r
}

func (r *Resource) Map(subresource uint32, readRange *gpu.Range) (unsafe.Pointer, error) {
	if err := r.api.fail("Map"); err != nil {
		return nil, err
	}
	if r.Desc.Dimension != gpu.ResourceDimensionBuffer || len(r.Data) == 0 {
		return nil, errors.New("gputest: only buffers can be mapped")
	}
	if r.Heap.Type != gpu.HeapTypeUpload && r.Heap.Type != gpu.HeapTypeReadback {
		return nil, errors.New("gputest: resource is not CPU visible")
	}
	r.api.log("Map %d", subresource)
	r.mapped++
	return unsafe.Pointer(&r.Data[0]), nil
}

func (r *Resource) Unmap(subresource uint32, writtenRange *gpu.Range) {
	r.api.log("Unmap %d", subresource)
	if r.mapped == 0 {
		r.api.violate("unmap of a resource that is not mapped")
		return
	}
	r.mapped--
	r.Unmapped = append(r.Unmapped, append([]byte(nil), r.Data...))
}

func (r *Resource) GetGPUVirtualAddress() uint64 { return r.va }

// Pixel returns the RGBA8 value at x, y of a texture.
func (r *Resource) Pixel(x, y int) [4]uint8 {
	i := (y*int(r.Desc.Width) + x) * 4
	return [4]uint8{r.Pixels[i], r.Pixels[i+1], r.Pixels[i+2], r.Pixels[i+3]}
}

func (r *Resource) clear(c [4]float32) {
	px := [4]byte{unorm8(c[0]), unorm8(c[1]), unorm8(c[2]), unorm8(c[3])}
	for i := 0; i+3 < len(r.Pixels); i += 4 {
		copy(r.Pixels[i:i+4], px[:])
	}
}

func unorm8(v float32) byte {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(math.Round(float64(v) * 255))
}

type Fence struct {
	object
	// Signals holds every value the queue signaled, in order.
	Signals []uint64

	completed uint64
	pending   uint64
	marks     []mark
	waiters   []waiter
}

type mark struct {
	value uint64
	work  int
	queue *CommandQueue
}

type waiter struct {
	value uint64
	event *Event
}

func (f *Fence) GetCompletedValue() uint64 { return f.completed }

func (f *Fence) SetEventOnCompletion(value uint64, e gpu.Event) error {
	if err := f.api.fail("SetEventOnCompletion"); err != nil {
		return err
	}
	f.api.log("SetEventOnCompletion %d", value)
	ev := e.(*Event)
	if f.completed >= value {
		ev.signaled = true
		return nil
	}
	ev.fence = f
	f.waiters = append(f.waiters, waiter{value: value, event: ev})
	return nil
}

// drain lets the GPU catch up with every signal queued so far.
func (f *Fence) drain() {
	for _, m := range f.marks {
		if m.value > f.completed {
			f.completed = m.value
		}
		if m.work > m.queue.retired {
			m.queue.retired = m.work
		}
	}
	f.marks = nil
	rest := f.waiters[:0]
	for _, w := range f.waiters {
		if f.completed >= w.value {
			w.event.signaled = true
			continue
		}
		rest = append(rest, w)
	}
	f.waiters = rest
}

type Event struct {
	api      *API
	fence    *Fence
	signaled bool
	closed   bool
	// Waits counts returns from Wait.
	Waits int
}

func (e *Event) Wait() error {
	if err := e.api.fail("Wait"); err != nil {
		return err
	}
	e.api.log("Wait")
	if e.closed {
		return errors.New("gputest: wait on closed event")
	}
	if !e.signaled && e.fence != nil {
		e.fence.drain()
	}
	if !e.signaled {
		return errors.New("gputest: wait would block forever")
	}
	e.signaled = false
	e.Waits++
	return nil
}

func (e *Event) Close() error {
	e.api.log("CloseEvent")
	if e.closed {
		e.api.violate("event closed twice")
	}
	e.closed = true
	return nil
}

// Closed reports whether Close was called.
func (e *Event) Closed() bool { return e.closed }
