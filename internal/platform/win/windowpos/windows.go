//go:build windows

package windowpos

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

// Supported reports whether this build can read and move native windows.
const Supported = true

var (
	user32            = syscall.NewLazyDLL("user32.dll")
	procGetWindowRect = user32.NewProc("GetWindowRect")
	procSetWindowPos  = user32.NewProc("SetWindowPos")
)

type winRect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

const (
	swpNOSIZE     = 0x0001
	swpNOZORDER   = 0x0004
	swpNOACTIVATE = 0x0010
)

// Get returns the top-left corner of the HWND behind w.
func Get(w fyne.Window) (Point, error) {
	var p Point
	err := withNativeHWND(w, func(hwnd uintptr) error {
		var rect winRect
		ret, _, errno := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rect)))
		if ret == 0 {
			return fmt.Errorf("GetWindowRect: %w", errno)
		}
		p = Point{X: int(rect.Left), Y: int(rect.Top)}
		return nil
	})
	return p, err
}

// Apply moves the HWND behind w to p without resizing or changing Z-order.
func Apply(w fyne.Window, p Point) error {
	return withNativeHWND(w, func(hwnd uintptr) error {
		ret, _, errno := procSetWindowPos.Call(hwnd, 0, uintptr(int32(p.X)), uintptr(int32(p.Y)), 0, 0, swpNOSIZE|swpNOZORDER|swpNOACTIVATE)
		if ret == 0 {
			return fmt.Errorf("SetWindowPos: %w", errno)
		}
		return nil
	})
}

// withNativeHWND runs fn with the window's HWND on the GUI thread and waits
// for it to finish.
func withNativeHWND(w fyne.Window, fn func(hwnd uintptr) error) error {
	nw, ok := w.(driver.NativeWindow)
	if !ok {
		return ErrUnsupported
	}
	var (
		err error
		wg  sync.WaitGroup
	)
	err = ErrUnsupported
	wg.Add(1)
	nw.RunNative(func(ctx any) {
		defer wg.Done()
		winCtx, ok := ctx.(driver.WindowsWindowContext)
		if !ok || winCtx.HWND == 0 {
			return
		}
		err = fn(winCtx.HWND)
	})
	wg.Wait()
	return err
}
