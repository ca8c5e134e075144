package win

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirides/hellotriangle/sample"
)

type fakeSample struct {
	updates, renders int
	keysDown         []uint8
	keysUp           []uint8
	failAt           int
}

var errRender = errors.New("render failed")

func (s *fakeSample) BindToWindow(sample.Window) error { return nil }
func (s *fakeSample) Update()                          { s.updates++ }
func (s *fakeSample) Render() error {
	s.renders++
	if s.renders == s.failAt {
		return errRender
	}
	return nil
}
func (s *fakeSample) OnKeyDown(k uint8)      { s.keysDown = append(s.keysDown, k) }
func (s *fakeSample) OnKeyUp(k uint8)        { s.keysUp = append(s.keysUp, k) }
func (s *fakeSample) Title() string          { return "fake" }
func (s *fakeSample) WindowSize() (int, int) { return 640, 480 }
func (s *fakeSample) Release()               {}

func TestHostFrameLimit(t *testing.T) {
	s := &fakeSample{}
	var closedWith uintptr
	h := newHost(s, Options{Frames: 3, BeforeClose: func(hwnd uintptr) error {
		closedWith = hwnd
		return nil
	}})

	assert.False(t, h.paint())
	assert.False(t, h.paint())
	assert.True(t, h.paint())
	h.close(0x42)
	h.close(0x42)

	assert.Equal(t, 3, s.updates)
	assert.Equal(t, 3, s.renders)
	assert.Equal(t, uintptr(0x42), closedWith)
	assert.NoError(t, h.err)

	// WM_PAINT may still arrive while the window is torn down.
	assert.False(t, h.paint())
	assert.Equal(t, 3, s.renders)
}

func TestHostUnlimited(t *testing.T) {
	s := &fakeSample{}
	h := newHost(s, Options{})
	for i := 0; i < 100; i++ {
		require.False(t, h.paint())
	}
	assert.Equal(t, 100, s.renders)
}

func TestHostRenderError(t *testing.T) {
	s := &fakeSample{failAt: 2}
	called := false
	h := newHost(s, Options{BeforeClose: func(uintptr) error {
		called = true
		return nil
	}})

	assert.False(t, h.paint())
	assert.True(t, h.paint())
	h.close(1)

	assert.ErrorIs(t, h.err, errRender)
	assert.False(t, called, "BeforeClose must not run after a failed frame")
}

func TestHostBeforeCloseError(t *testing.T) {
	hookErr := errors.New("capture failed")
	h := newHost(&fakeSample{}, Options{BeforeClose: func(uintptr) error { return hookErr }})
	h.close(1)
	assert.ErrorIs(t, h.err, hookErr)
}

func TestHostKeys(t *testing.T) {
	s := &fakeSample{}
	h := newHost(s, Options{})
	h.keyDown('W')
	h.keyUp('W')
	h.keyDown(0x1b)
	assert.Equal(t, []uint8{'W', 0x1b}, s.keysDown)
	assert.Equal(t, []uint8{'W'}, s.keysUp)
}

func TestRegistry(t *testing.T) {
	var r registry
	assert.Nil(t, r.lookup(1))

	a := newHost(&fakeSample{}, Options{})
	r.begin(a)
	assert.Same(t, a, r.lookup(0x10), "first message adopts the pending host")
	assert.Same(t, a, r.lookup(0x10))
	assert.Nil(t, r.lookup(0x20), "pending host is adopted only once")

	b := newHost(&fakeSample{}, Options{})
	r.begin(b)
	assert.Same(t, a, r.lookup(0x10))
	assert.Same(t, b, r.lookup(0x20))
	assert.Equal(t, 2, r.len())

	r.remove(0x10)
	assert.Nil(t, r.lookup(0x10))
	assert.Equal(t, 1, r.len())

	r.begin(newHost(&fakeSample{}, Options{}))
	r.abort()
	assert.Nil(t, r.lookup(0x30))
}
