package main

import "fmt"

// VirtualKey is a Windows virtual-key code
type VirtualKey uint32

// Windows Virtual Key codes
const (
	VK_SHIFT   VirtualKey = 0x10
	VK_CONTROL VirtualKey = 0x11
	VK_MENU    VirtualKey = 0x12 // Alt
	VK_DIVIDE  VirtualKey = 0x6F // Numpad '/'
	VK_OEM_2   VirtualKey = 0xBF // '/?' on US layouts
)

func (vk VirtualKey) String() string {
	switch vk {
	case VK_SHIFT:
		return "VK_SHIFT"
	case VK_CONTROL:
		return "VK_CONTROL"
	case VK_MENU:
		return "VK_MENU"
	case VK_DIVIDE:
		return "VK_DIVIDE"
	case VK_OEM_2:
		return "VK_OEM_2"
	default:
		return fmt.Sprintf("VK(0x%02X)", uint32(vk))
	}
}

// Low-level keyboard hook messages delivered in wParam
const (
	WM_KEYDOWN    = 0x0100
	WM_KEYUP      = 0x0101
	WM_SYSKEYDOWN = 0x0104
	WM_SYSKEYUP   = 0x0105
)

// LLKHF_INJECTED is set in KBDLLHOOKSTRUCT.Flags for events produced by SendInput
const LLKHF_INJECTED = 0x10

// Transition is the direction of a key event
type Transition int

const (
	TransitionUnknown Transition = iota
	KeyDown
	KeyUp
)

func (t Transition) String() string {
	switch t {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	default:
		return "unknown"
	}
}

// Origin tells whether an event came from a device or from SendInput
type Origin int

const (
	Hardware Origin = iota
	Synthetic
)

// syntheticTag is stamped into dwExtraInfo of every event we inject so the
// hook can recognise its own output. dwExtraInfo is pointer-sized, so 32-bit
// builds keep the low half.
const syntheticTag = uintptr(uint64(0x1234_5678_8765_4321) & uint64(^uintptr(0)))

// KeyEvent is a borrowed view of one hook event. It is only valid for the
// duration of the callback that produced it.
type KeyEvent struct {
	VirtualKey VirtualKey
	Transition Transition
	Origin     Origin
	ExtraInfo  uintptr
}

// ModifierState is a snapshot of the global Ctrl/Shift/Alt state
type ModifierState struct {
	Ctrl  bool
	Shift bool
	Alt   bool
}

// Any reports whether at least one modifier is held
func (m ModifierState) Any() bool {
	return m.Ctrl || m.Shift || m.Alt
}

// RemapRule replaces Source with Target while no modifier is held
type RemapRule struct {
	Source VirtualKey
	Target VirtualKey
}

var slashRule = RemapRule{Source: VK_OEM_2, Target: VK_DIVIDE}

// kbdLLHookStruct mirrors KBDLLHOOKSTRUCT
type kbdLLHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// transitionFromMessage folds the normal and system variants together
func transitionFromMessage(msg uintptr) Transition {
	switch msg {
	case WM_KEYDOWN, WM_SYSKEYDOWN:
		return KeyDown
	case WM_KEYUP, WM_SYSKEYUP:
		return KeyUp
	default:
		return TransitionUnknown
	}
}

// newKeyEvent validates the raw hook payload and copies out the fields the
// filter needs. A nil payload yields a nil event.
func newKeyEvent(msg uintptr, info *kbdLLHookStruct) *KeyEvent {
	if info == nil {
		return nil
	}
	origin := Hardware
	if info.Flags&LLKHF_INJECTED != 0 {
		origin = Synthetic
	}
	return &KeyEvent{
		VirtualKey: VirtualKey(info.VkCode),
		Transition: transitionFromMessage(msg),
		Origin:     origin,
		ExtraInfo:  info.DwExtraInfo,
	}
}
