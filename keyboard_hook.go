package main

// KeyboardHook is the interface for the platform keyboard hook
type KeyboardHook interface {
	// Start registers the hook and routes every event through filter
	Start(filter EventFilter) error

	// Run pumps messages until Stop is called.
	// Must be called on the same goroutine as Start.
	Run() error

	// Stop ends Run and unregisters the hook
	Stop() error
}

// EventFilter decides the fate of a single key event
type EventFilter interface {
	Handle(ev *KeyEvent) Decision
}

// EventFilterFunc adapts a function literal to the EventFilter interface.
type EventFilterFunc func(ev *KeyEvent) Decision

// Handle calls the underlying function.
func (f EventFilterFunc) Handle(ev *KeyEvent) Decision {
	return f(ev)
}

// InputInjector delivers synthetic events into the system input stream and
// returns how many were accepted.
type InputInjector interface {
	Inject(events []KeyEvent) int
}

// InputInjectorFunc adapts a function literal to the InputInjector interface.
type InputInjectorFunc func(events []KeyEvent) int

// Inject calls the underlying function.
func (f InputInjectorFunc) Inject(events []KeyEvent) int {
	return f(events)
}

// ModifierSource samples the global modifier state
type ModifierSource interface {
	Modifiers() ModifierState
}

// ModifierSourceFunc adapts a function literal to the ModifierSource interface.
type ModifierSourceFunc func() ModifierState

// Modifiers calls the underlying function.
func (f ModifierSourceFunc) Modifiers() ModifierState {
	return f()
}
