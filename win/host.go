// Package win hosts a sample in a native window and pumps its messages.
package win

import (
	"sync"

	"github.com/kirides/hellotriangle/sample"
)

// Options control a Run.
type Options struct {
	// Frames closes the window after that many rendered frames. Zero runs
	// until the user closes it.
	Frames int
	// BeforeClose runs once while the window still shows the last frame.
	BeforeClose func(hwnd uintptr) error
}

// host drives one sample from the window procedure.
type host struct {
	sample      sample.Sample
	maxFrames   int
	beforeClose func(hwnd uintptr) error

	frames  int
	closing bool
	err     error
}

func newHost(s sample.Sample, opts Options) *host {
	return &host{
		sample:      s,
		maxFrames:   opts.Frames,
		beforeClose: opts.BeforeClose,
	}
}

// paint runs one frame and reports whether the window should now close.
func (h *host) paint() bool {
	if h.closing {
		return false
	}
	h.sample.Update()
	if err := h.sample.Render(); err != nil {
		h.err = err
		return true
	}
	h.frames++
	return h.maxFrames > 0 && h.frames >= h.maxFrames
}

func (h *host) keyDown(key uint8) { h.sample.OnKeyDown(key) }
func (h *host) keyUp(key uint8)   { h.sample.OnKeyUp(key) }

// close runs the BeforeClose hook once, unless rendering already failed.
func (h *host) close(hwnd uintptr) {
	if h.closing {
		return
	}
	h.closing = true
	if h.beforeClose == nil || h.err != nil {
		return
	}
	if err := h.beforeClose(hwnd); err != nil {
		h.err = err
	}
}

// registry maps live windows to their hosts. The window procedure is a
// process-wide callback, so this is how it finds the sample behind a window.
// Entries do not own the sample.
type registry struct {
	mu       sync.Mutex
	hosts    map[uintptr]*host
	creating *host
}

// begin marks h as the host of the window about to be created. Messages sent
// during creation arrive before the window handle is known to Run.
func (r *registry) begin(h *host) {
	r.mu.Lock()
	r.creating = h
	r.mu.Unlock()
}

// lookup returns the host of hwnd, adopting the pending host on the first
// message of a new window.
func (r *registry) lookup(hwnd uintptr) *host {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.hosts[hwnd]; ok {
		return h
	}
	if r.creating == nil {
		return nil
	}
	if r.hosts == nil {
		r.hosts = make(map[uintptr]*host)
	}
	h := r.creating
	r.hosts[hwnd] = h
	r.creating = nil
	return h
}

// abort drops a pending host whose window was never created.
func (r *registry) abort() {
	r.mu.Lock()
	r.creating = nil
	r.mu.Unlock()
}

func (r *registry) remove(hwnd uintptr) {
	r.mu.Lock()
	delete(r.hosts, hwnd)
	r.mu.Unlock()
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hosts)
}
