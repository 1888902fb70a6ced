//go:build windows

package main

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessage     = user32.NewProc("DispatchMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
	procGetKeyState         = user32.NewProc("GetKeyState")
	procSendInput           = user32.NewProc("SendInput")
)

const (
	WH_KEYBOARD_LL  = 13
	HC_ACTION       = 0
	WM_QUIT         = 0x0012
	INPUT_KEYBOARD  = 1
	KEYEVENTF_KEYUP = 0x0002
)

type MSG struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// keybdInput mirrors KEYBDINPUT
type keybdInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// keyboardInput is an INPUT record holding the keyboard member of the union.
// The trailing pad brings it to sizeof(INPUT), which is sized by MOUSEINPUT.
type keyboardInput struct {
	Type uint32
	Ki   keybdInput
	_    [8]byte
}

// The OS callback carries no user pointer, so the running hook is reached
// through this package variable. It is set by Start and cleared by Run.
var (
	activeHook   atomic.Pointer[windowsKeyboardHook]
	hookCallback = windows.NewCallback(keyboardProc)
)

// windowsKeyboardHook implements KeyboardHook for Windows
type windowsKeyboardHook struct {
	filter   EventFilter
	handle   uintptr
	threadID uint32
	stopOnce sync.Once
	stopErr  error
}

// NewKeyboardHook creates a new keyboard hook for Windows
func NewKeyboardHook() KeyboardHook {
	return &windowsKeyboardHook{}
}

func (h *windowsKeyboardHook) Start(filter EventFilter) error {
	if filter == nil {
		return ErrNilFilter
	}
	if !activeHook.CompareAndSwap(nil, h) {
		return fmt.Errorf("%w: another hook is already running", ErrHookInstall)
	}
	h.filter = filter

	// Low-level hook callbacks are delivered through the message loop of the
	// installing thread, so Start and Run must stay on one OS thread.
	runtime.LockOSThread()
	h.threadID = windows.GetCurrentThreadId()

	handle, _, err := procSetWindowsHookEx.Call(
		WH_KEYBOARD_LL,
		hookCallback,
		0,
		0,
	)
	if handle == 0 {
		h.threadID = 0
		activeHook.Store(nil)
		runtime.UnlockOSThread()
		return fmt.Errorf("%w: %w", ErrHookInstall, err)
	}
	h.handle = handle
	return nil
}

func (h *windowsKeyboardHook) Run() error {
	if h.handle == 0 {
		return ErrHookNotStarted
	}
	defer h.release()

	var msg MSG
	for {
		ret, _, err := procGetMessage.Call(
			uintptr(unsafe.Pointer(&msg)),
			0,
			0,
			0,
		)
		switch int32(ret) {
		case 0:
			return nil
		case -1:
			return fmt.Errorf("get message: %w", err)
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&msg)))
	}
}

func (h *windowsKeyboardHook) Stop() error {
	if h.threadID == 0 {
		return nil
	}
	h.stopOnce.Do(func() {
		ret, _, err := procPostThreadMessage.Call(uintptr(h.threadID), WM_QUIT, 0, 0)
		if ret == 0 {
			h.stopErr = fmt.Errorf("post quit message: %w", err)
		}
	})
	return h.stopErr
}

// release unhooks and restores normal input delivery
func (h *windowsKeyboardHook) release() {
	procUnhookWindowsHookEx.Call(h.handle)
	h.handle = 0
	activeHook.Store(nil)
	runtime.UnlockOSThread()
}

// keyboardProc is the callback for the Windows keyboard hook
func keyboardProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if h := activeHook.Load(); nCode == HC_ACTION && h != nil {
		if h.filter.Handle(newKeyEvent(wParam, hookPayload(lParam))) == Suppress {
			return 1
		}
	}

	// Call next hook in the chain
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// hookPayload converts lParam to the KBDLLHOOKSTRUCT the OS owns for the
// duration of one callback. A zero lParam yields nil.
func hookPayload(lParam uintptr) *kbdLLHookStruct {
	if lParam == 0 {
		return nil
	}
	return (*kbdLLHookStruct)(unsafe.Pointer(lParam))
}

// keyStateModifiers polls GetKeyState; the high bit is set while a key is down
type keyStateModifiers struct{}

// NewModifierSource returns the GetKeyState-backed modifier source
func NewModifierSource() ModifierSource {
	return keyStateModifiers{}
}

func (keyStateModifiers) Modifiers() ModifierState {
	return ModifierState{
		Ctrl:  keyDown(VK_CONTROL),
		Shift: keyDown(VK_SHIFT),
		Alt:   keyDown(VK_MENU),
	}
}

func keyDown(vk VirtualKey) bool {
	r, _, _ := procGetKeyState.Call(uintptr(vk))
	return int16(r) < 0
}

// sendInputInjector implements InputInjector with SendInput
type sendInputInjector struct{}

// NewInputInjector returns the SendInput-backed injector
func NewInputInjector() InputInjector {
	return sendInputInjector{}
}

func (sendInputInjector) Inject(events []KeyEvent) int {
	if len(events) == 0 {
		return 0
	}
	inputs := make([]keyboardInput, len(events))
	for i, ev := range events {
		inputs[i].Type = INPUT_KEYBOARD
		inputs[i].Ki.WVk = uint16(ev.VirtualKey)
		inputs[i].Ki.DwExtraInfo = ev.ExtraInfo
		if ev.Transition == KeyUp {
			inputs[i].Ki.DwFlags = KEYEVENTF_KEYUP
		}
	}
	n, _, _ := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	return int(n)
}
