package win

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/kirides/hellotriangle/sample"
)

const className = "DXSampleClass"

var (
	hosts registry

	registerOnce sync.Once
	registerErr  error
	wndProcPtr   = windows.NewCallback(wndProc)
)

func registerClass(instance win.HINSTANCE) error {
	registerOnce.Do(func() {
		wc := win.WNDCLASSEX{
			CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
			Style:         win.CS_HREDRAW | win.CS_VREDRAW,
			LpfnWndProc:   wndProcPtr,
			HInstance:     instance,
			HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_ARROW)),
			LpszClassName: syscall.StringToUTF16Ptr(className),
		}
		if win.RegisterClassEx(&wc) == 0 {
			registerErr = fmt.Errorf("RegisterClassEx: %w", windows.GetLastError())
		}
	})
	return registerErr
}

// Run creates a window sized to the sample, binds the sample to it and
// renders on every WM_PAINT until the window is destroyed. It returns the
// first render or BeforeClose error. The caller still owns s.
func Run(s sample.Sample, opts Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if IsValidDpiAwarenessContext(DpiAwarenessContextPerMonitorAwareV2) {
		if _, err := SetThreadDpiAwarenessContext(DpiAwarenessContextPerMonitorAwareV2); err != nil {
			slog.Debug("setting per monitor DPI awareness", "error", err)
		}
	} else {
		slog.Debug("per monitor DPI awareness unavailable")
	}

	instance := win.GetModuleHandle(nil)
	if err := registerClass(instance); err != nil {
		return err
	}

	width, height := s.WindowSize()
	rect := win.RECT{Right: int32(width), Bottom: int32(height)}
	win.AdjustWindowRect(&rect, win.WS_OVERLAPPEDWINDOW, false)

	title, err := syscall.UTF16PtrFromString(s.Title())
	if err != nil {
		return err
	}

	h := newHost(s, opts)
	hosts.begin(h)
	hwnd := win.CreateWindowEx(
		0,
		syscall.StringToUTF16Ptr(className),
		title,
		win.WS_OVERLAPPEDWINDOW,
		win.CW_USEDEFAULT,
		win.CW_USEDEFAULT,
		rect.Right-rect.Left,
		rect.Bottom-rect.Top,
		0,
		0,
		instance,
		nil,
	)
	if hwnd == 0 {
		hosts.abort()
		return fmt.Errorf("CreateWindowEx: %w", windows.GetLastError())
	}
	hosts.lookup(uintptr(hwnd))

	if err := s.BindToWindow(sample.Window{Handle: uintptr(hwnd), Width: width, Height: height}); err != nil {
		h.closing = true
		win.DestroyWindow(hwnd)
		pump()
		return err
	}

	win.ShowWindow(hwnd, win.SW_SHOW)
	pump()
	slog.Debug("window closed", "frames", h.frames)
	return h.err
}

// pump dispatches messages until WM_QUIT. WM_PAINT is never validated, so
// PeekMessage keeps delivering it while the window lives.
func pump() {
	var msg win.MSG
	for msg.Message != win.WM_QUIT {
		if win.PeekMessage(&msg, 0, 0, 0, win.PM_REMOVE) {
			win.TranslateMessage(&msg)
			win.DispatchMessage(&msg)
		}
	}
}

func wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	h := hosts.lookup(uintptr(hwnd))
	if h == nil {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}

	switch msg {
	case win.WM_PAINT:
		if h.paint() {
			h.close(uintptr(hwnd))
			win.DestroyWindow(hwnd)
		}
		return 0

	case win.WM_KEYDOWN:
		h.keyDown(uint8(wParam))
		return 0

	case win.WM_KEYUP:
		h.keyUp(uint8(wParam))
		return 0

	case win.WM_CLOSE:
		h.close(uintptr(hwnd))
		win.DestroyWindow(hwnd)
		return 0

	case win.WM_DESTROY:
		hosts.remove(uintptr(hwnd))
		win.PostQuitMessage(0)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

// ClientRect returns the window's client area in screen coordinates.
func ClientRect(hwnd uintptr) (image.Rectangle, error) {
	var rc win.RECT
	if !win.GetClientRect(win.HWND(hwnd), &rc) {
		return image.Rectangle{}, fmt.Errorf("GetClientRect: %w", windows.GetLastError())
	}
	origin := win.POINT{X: rc.Left, Y: rc.Top}
	if !win.ClientToScreen(win.HWND(hwnd), &origin) {
		return image.Rectangle{}, fmt.Errorf("ClientToScreen: %w", windows.GetLastError())
	}
	return image.Rect(
		int(origin.X),
		int(origin.Y),
		int(origin.X+rc.Right-rc.Left),
		int(origin.Y+rc.Bottom-rc.Top),
	), nil
}
