//go:build !windows

package main

// unsupportedKeyboardHook stands in for the hook on platforms without a
// low-level keyboard hook. Start always fails.
type unsupportedKeyboardHook struct{}

// NewKeyboardHook creates a hook that reports ErrUnsupportedPlatform
func NewKeyboardHook() KeyboardHook {
	return unsupportedKeyboardHook{}
}

func (unsupportedKeyboardHook) Start(filter EventFilter) error {
	if filter == nil {
		return ErrNilFilter
	}
	return ErrUnsupportedPlatform
}

func (unsupportedKeyboardHook) Run() error  { return ErrHookNotStarted }
func (unsupportedKeyboardHook) Stop() error { return nil }

// NewModifierSource reports no modifiers held
func NewModifierSource() ModifierSource {
	return ModifierSourceFunc(func() ModifierState { return ModifierState{} })
}

// NewInputInjector accepts nothing, so the filter always passes events through
func NewInputInjector() InputInjector {
	return InputInjectorFunc(func([]KeyEvent) int { return 0 })
}
