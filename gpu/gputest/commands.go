package gputest

import (
	"errors"

	"github.com/kirides/hellotriangle/gpu"
)

const (
	OpSetGraphicsRootSignature = "SetGraphicsRootSignature"
	OpRSSetViewports           = "RSSetViewports"
	OpRSSetScissorRects        = "RSSetScissorRects"
	OpResourceBarrier          = "ResourceBarrier"
	OpOMSetRenderTargets       = "OMSetRenderTargets"
	OpClearRenderTargetView    = "ClearRenderTargetView"
	OpIASetPrimitiveTopology   = "IASetPrimitiveTopology"
	OpIASetVertexBuffers       = "IASetVertexBuffers"
	OpDrawInstanced            = "DrawInstanced"
)

// Command is one recorded command list entry. Only the fields of its Op are
// set.
type Command struct {
	Op            string
	RootSignature gpu.RootSignature
	Viewports     []gpu.Viewport
	Rects         []gpu.Rect
	Barriers      []gpu.ResourceBarrier
	RTVs          []gpu.CPUDescriptorHandle
	Color         [4]float32
	Topology      gpu.PrimitiveTopology
	StartSlot     uint32
	VertexBuffers []gpu.VertexBufferView
	Draw          [4]uint32
}

type CommandQueue struct {
	object
	Desc gpu.CommandQueueDesc
	// Executed holds the commands of every submitted list, per list.
	Executed [][]Command

	device    *Device
	submitted int
	retired   int
}

func (q *CommandQueue) ExecuteCommandLists(lists ...gpu.GraphicsCommandList) {
	q.api.log("ExecuteCommandLists %d", len(lists))
	for _, l := range lists {
		cl := l.(*CommandList)
		if cl.open {
			q.api.violate("command list submitted while open")
			continue
		}
		q.submitted++
		cl.allocator.usedBy = q.submitted
		cmds := append([]Command(nil), cl.Commands...)
		q.Executed = append(q.Executed, cmds)
		q.replay(cmds)
	}
}

// replay executes cmds against the device's resources.
func (q *CommandQueue) replay(cmds []Command) {
	var (
		target   *Resource
		topology gpu.PrimitiveTopology
		vbs      []gpu.VertexBufferView
	)
	for _, c := range cmds {
		switch c.Op {
		case OpResourceBarrier:
			for _, b := range c.Barriers {
				r, ok := b.Resource.(*Resource)
				if !ok || r == nil {
					q.api.violate("barrier without a resource")
					continue
				}
				if r.State != b.StateBefore {
					q.api.violate("barrier on %s expects %s but resource is %s", r.kind, b.StateBefore, r.State)
				}
				r.State = b.StateAfter
			}
		case OpOMSetRenderTargets:
			target = nil
			if len(c.RTVs) > 0 {
				target = q.device.RTVs[c.RTVs[0].Ptr]
				if target == nil {
					q.api.violate("render target handle %#x has no view", c.RTVs[0].Ptr)
				}
			}
		case OpClearRenderTargetView:
			r := q.device.RTVs[c.RTVs[0].Ptr]
			if r == nil {
				q.api.violate("clear of handle %#x without a view", c.RTVs[0].Ptr)
				continue
			}
			if r.State != gpu.ResourceStateRenderTarget {
				q.api.violate("clear of %s in state %s", r.kind, r.State)
			}
			r.clear(c.Color)
		case OpIASetPrimitiveTopology:
			topology = c.Topology
		case OpIASetVertexBuffers:
			vbs = c.VertexBuffers
		case OpDrawInstanced:
			switch {
			case target == nil:
				q.api.violate("draw without a render target")
			case target.State != gpu.ResourceStateRenderTarget:
				q.api.violate("draw into %s in state %s", target.kind, target.State)
			case topology == gpu.PrimitiveTopologyUndefined:
				q.api.violate("draw without a primitive topology")
			case len(vbs) == 0:
				q.api.violate("draw without vertex buffers")
			default:
				target.Draws++
			}
		}
	}
}

func (q *CommandQueue) Signal(f gpu.Fence, value uint64) error {
	if err := q.api.fail("Signal"); err != nil {
		return err
	}
	q.api.log("Signal %d", value)
	fe := f.(*Fence)
	if value < fe.pending {
		q.api.violate("fence signaled backwards from %d to %d", fe.pending, value)
	}
	fe.pending = value
	fe.Signals = append(fe.Signals, value)
	fe.marks = append(fe.marks, mark{value: value, work: q.submitted, queue: q})
	if q.api.CompleteOnSignal {
		fe.drain()
	}
	return nil
}

type CommandAllocator struct {
	object
	Type gpu.CommandListType
	// Resets counts successful Reset calls.
	Resets int

	device   *Device
	usedBy   int
	openList *CommandList
}

func (a *CommandAllocator) Reset() error {
	if err := a.api.fail("CommandAllocator.Reset"); err != nil {
		return err
	}
	a.api.log("CommandAllocator.Reset")
	if q := a.device.Queue; q != nil && a.usedBy > q.retired {
		a.api.violate("allocator reset while submission %d is still executing", a.usedBy)
		return ErrAllocatorInUse
	}
	if a.openList != nil && a.openList.open {
		a.api.violate("allocator reset while a command list records into it")
		return errors.New("gputest: allocator has an open command list")
	}
	a.Resets++
	return nil
}

type CommandList struct {
	object
	Type         gpu.CommandListType
	InitialState gpu.PipelineState
	// Commands holds the current or last recording.
	Commands []Command
	Closes   int

	device    *Device
	allocator *CommandAllocator
	open      bool
}

// Open reports whether the list accepts commands.
func (l *CommandList) Open() bool { return l.open }

func (l *CommandList) Reset(allocator gpu.CommandAllocator, initial gpu.PipelineState) error {
	if err := l.api.fail("CommandList.Reset"); err != nil {
		return err
	}
	l.api.log("CommandList.Reset")
	if l.open {
		return errors.New("gputest: reset of an open command list")
	}
	a := allocator.(*CommandAllocator)
	l.allocator = a
	a.openList = l
	l.InitialState = initial
	l.Commands = nil
	l.open = true
	return nil
}

func (l *CommandList) Close() error {
	if err := l.api.fail("CommandList.Close"); err != nil {
		return err
	}
	l.api.log("CommandList.Close")
	if !l.open {
		return errors.New("gputest: close of a closed command list")
	}
	l.open = false
	l.Closes++
	return nil
}

func (l *CommandList) record(c Command) {
	if !l.open {
		l.api.violate("%s recorded into a closed command list", c.Op)
		return
	}
	l.Commands = append(l.Commands, c)
}

func (l *CommandList) SetGraphicsRootSignature(rs gpu.RootSignature) {
	l.record(Command{Op: OpSetGraphicsRootSignature, RootSignature: rs})
}

func (l *CommandList) RSSetViewports(viewports ...gpu.Viewport) {
	l.record(Command{Op: OpRSSetViewports, Viewports: append([]gpu.Viewport(nil), viewports...)})
}

func (l *CommandList) RSSetScissorRects(rects ...gpu.Rect) {
	l.record(Command{Op: OpRSSetScissorRects, Rects: append([]gpu.Rect(nil), rects...)})
}

func (l *CommandList) ResourceBarrier(barriers ...gpu.ResourceBarrier) {
	l.record(Command{Op: OpResourceBarrier, Barriers: append([]gpu.ResourceBarrier(nil), barriers...)})
}

func (l *CommandList) OMSetRenderTargets(rtvs []gpu.CPUDescriptorHandle, singleHandleToDescriptorRange bool, dsv *gpu.CPUDescriptorHandle) {
	if dsv != nil {
		l.api.violate("depth stencil view bound")
	}
	l.record(Command{Op: OpOMSetRenderTargets, RTVs: append([]gpu.CPUDescriptorHandle(nil), rtvs...)})
}

func (l *CommandList) ClearRenderTargetView(rtv gpu.CPUDescriptorHandle, color [4]float32, rects ...gpu.Rect) {
	l.record(Command{Op: OpClearRenderTargetView, RTVs: []gpu.CPUDescriptorHandle{rtv}, Color: color, Rects: append([]gpu.Rect(nil), rects...)})
}

func (l *CommandList) IASetPrimitiveTopology(t gpu.PrimitiveTopology) {
	l.record(Command{Op: OpIASetPrimitiveTopology, Topology: t})
}

func (l *CommandList) IASetVertexBuffers(startSlot uint32, views ...gpu.VertexBufferView) {
	l.record(Command{Op: OpIASetVertexBuffers, StartSlot: startSlot, VertexBuffers: append([]gpu.VertexBufferView(nil), views...)})
}

func (l *CommandList) DrawInstanced(vertexCountPerInstance, instanceCount, startVertexLocation, startInstanceLocation uint32) {
	l.record(Command{Op: OpDrawInstanced, Draw: [4]uint32{vertexCountPerInstance, instanceCount, startVertexLocation, startInstanceLocation}})
}

type SwapChain struct {
	object
	Desc    gpu.SwapChainDesc
	Hwnd    uintptr
	Buffers []*Resource
	// Presents holds the back buffer index of every Present.
	Presents []uint32

	current uint32
}

func (sc *SwapChain) GetBuffer(index uint32) (gpu.Resource, error) {
	if err := sc.api.fail("GetBuffer"); err != nil {
		return nil, err
	}
	if int(index) >= len(sc.Buffers) {
		return nil, errors.New("gputest: back buffer index out of range")
	}
	sc.api.log("GetBuffer %d", index)
	r := sc.Buffers[index]
	r.refs++
	return r, nil
}

func (sc *SwapChain) Present(syncInterval uint32, flags gpu.PresentFlag) error {
	if err := sc.api.fail("Present"); err != nil {
		return err
	}
	sc.api.log("Present %d %d", syncInterval, flags)
	if b := sc.Buffers[sc.current]; b.State != gpu.ResourceStatePresent {
		sc.api.violate("present of back buffer %d in state %s", sc.current, b.State)
	}
	sc.Presents = append(sc.Presents, sc.current)
	sc.current = (sc.current + 1) % uint32(len(sc.Buffers))
	return nil
}

func (sc *SwapChain) GetCurrentBackBufferIndex() uint32 { return sc.current }
