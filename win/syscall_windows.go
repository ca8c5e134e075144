package win

import (
	"syscall"

	"golang.org/x/sys/windows"
)

const (
	DpiAwarenessContextUndefined         = 0
	DpiAwarenessContextUnaware           = -1
	DpiAwarenessContextSystemAware       = -2
	DpiAwarenessContextPerMonitorAware   = -3
	DpiAwarenessContextPerMonitorAwareV2 = -4
	DpiAwarenessContextUnawareGdiScaled  = -5
)

var (
	modUser32 = windows.NewLazySystemDLL("user32.dll")

	procSetThreadDpiAwarenessContext = modUser32.NewProc("SetThreadDpiAwarenessContext")
	procIsValidDpiAwarenessContext   = modUser32.NewProc("IsValidDpiAwarenessContext")
)

// SetThreadDpiAwarenessContext returns the previous context. It fails on
// Windows versions before 10 1607, which lack the call.
func SetThreadDpiAwarenessContext(value int32) (prev uintptr, err error) {
	if err = procSetThreadDpiAwarenessContext.Find(); err != nil {
		return 0, err
	}
	r0, _, e1 := syscall.SyscallN(procSetThreadDpiAwarenessContext.Addr(), uintptr(value))
	if r0 == 0 {
		err = e1
	}
	return r0, err
}

func IsValidDpiAwarenessContext(value int32) bool {
	if procIsValidDpiAwarenessContext.Find() != nil {
		return false
	}
	r0, _, _ := syscall.SyscallN(procIsValidDpiAwarenessContext.Addr(), uintptr(value))
	return r0 != 0
}
