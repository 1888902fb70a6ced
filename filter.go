package main

// Decision is the hook's verdict on an event
type Decision int

const (
	PassThrough Decision = iota
	Suppress
)

func (d Decision) String() string {
	if d == Suppress {
		return "suppress"
	}
	return "pass-through"
}

// InterceptionFilter substitutes rule.Source with rule.Target. Every path
// that cannot deliver the substitute lets the original event through.
type InterceptionFilter struct {
	rule     RemapRule
	mods     ModifierSource
	injector InputInjector
}

// NewInterceptionFilter creates a filter for rule
func NewInterceptionFilter(rule RemapRule, mods ModifierSource, injector InputInjector) *InterceptionFilter {
	return &InterceptionFilter{
		rule:     rule,
		mods:     mods,
		injector: injector,
	}
}

// Handle is called on the hook thread for every key event in the system
func (f *InterceptionFilter) Handle(ev *KeyEvent) Decision {
	if ev == nil {
		return PassThrough
	}

	// Our own injected event
	if ev.ExtraInfo == syntheticTag {
		return PassThrough
	}

	// Leave Ctrl+/ and friends to the application
	if f.mods != nil && f.mods.Modifiers().Any() {
		return PassThrough
	}

	if ev.VirtualKey != f.rule.Source {
		return PassThrough
	}

	if ev.Transition != KeyDown && ev.Transition != KeyUp {
		return PassThrough
	}

	if f.injector == nil {
		return PassThrough
	}
	substitute := []KeyEvent{{
		VirtualKey: f.rule.Target,
		Transition: ev.Transition,
		Origin:     Synthetic,
		ExtraInfo:  syntheticTag,
	}}
	if f.injector.Inject(substitute) == 0 {
		// Don't swallow the key if the substitute never made it
		return PassThrough
	}

	return Suppress
}
