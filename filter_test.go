package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingInjector captures injected batches and reports accepted events
type recordingInjector struct {
	batches  [][]KeyEvent
	accepted int
}

func (r *recordingInjector) Inject(events []KeyEvent) int {
	r.batches = append(r.batches, append([]KeyEvent(nil), events...))
	if r.accepted < 0 {
		return len(events)
	}
	return r.accepted
}

func acceptAll() *recordingInjector { return &recordingInjector{accepted: -1} }

func noMods() ModifierSource {
	return ModifierSourceFunc(func() ModifierState { return ModifierState{} })
}

func mods(m ModifierState) ModifierSource {
	return ModifierSourceFunc(func() ModifierState { return m })
}

func slashEvent(t Transition) *KeyEvent {
	return &KeyEvent{VirtualKey: VK_OEM_2, Transition: t, Origin: Hardware}
}

func TestHandleNilEvent(t *testing.T) {
	inj := acceptAll()
	f := NewInterceptionFilter(slashRule, noMods(), inj)

	assert.Equal(t, PassThrough, f.Handle(nil))
	assert.Empty(t, inj.batches, "malformed payload must not reach the injector")
}

func TestHandleTaggedEvent(t *testing.T) {
	states := []ModifierState{
		{},
		{Ctrl: true},
		{Shift: true, Alt: true},
	}
	keys := []VirtualKey{VK_OEM_2, VK_DIVIDE, VK_CONTROL, 0x41}
	transitions := []Transition{KeyDown, KeyUp, TransitionUnknown}

	for _, m := range states {
		for _, vk := range keys {
			for _, tr := range transitions {
				inj := acceptAll()
				sampled := false
				src := ModifierSourceFunc(func() ModifierState {
					sampled = true
					return m
				})
				f := NewInterceptionFilter(slashRule, src, inj)

				ev := &KeyEvent{VirtualKey: vk, Transition: tr, Origin: Synthetic, ExtraInfo: syntheticTag}
				assert.Equal(t, PassThrough, f.Handle(ev), "vk=%v transition=%v mods=%+v", vk, tr, m)
				assert.Empty(t, inj.batches)
				assert.False(t, sampled, "tagged events are passed before modifiers are sampled")
			}
		}
	}
}

func TestHandleModifierHeld(t *testing.T) {
	tests := []struct {
		name string
		mods ModifierState
	}{
		{"Ctrl", ModifierState{Ctrl: true}},
		{"Shift", ModifierState{Shift: true}},
		{"Alt", ModifierState{Alt: true}},
		{"Ctrl+Shift", ModifierState{Ctrl: true, Shift: true}},
		{"All", ModifierState{Ctrl: true, Shift: true, Alt: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, tr := range []Transition{KeyDown, KeyUp} {
				inj := acceptAll()
				f := NewInterceptionFilter(slashRule, mods(tt.mods), inj)

				assert.Equal(t, PassThrough, f.Handle(slashEvent(tr)))
				assert.Empty(t, inj.batches)
			}
		})
	}
}

func TestHandleSourceKeyDown(t *testing.T) {
	inj := acceptAll()
	f := NewInterceptionFilter(slashRule, noMods(), inj)

	assert.Equal(t, Suppress, f.Handle(slashEvent(KeyDown)))

	require.Len(t, inj.batches, 1)
	require.Len(t, inj.batches[0], 1)
	got := inj.batches[0][0]
	assert.Equal(t, VK_DIVIDE, got.VirtualKey)
	assert.Equal(t, KeyDown, got.Transition)
	assert.Equal(t, Synthetic, got.Origin)
	assert.Equal(t, syntheticTag, got.ExtraInfo)
}

func TestHandleSourceKeyUp(t *testing.T) {
	inj := acceptAll()
	f := NewInterceptionFilter(slashRule, noMods(), inj)

	assert.Equal(t, Suppress, f.Handle(slashEvent(KeyUp)))

	require.Len(t, inj.batches, 1)
	assert.Equal(t, []KeyEvent{{
		VirtualKey: VK_DIVIDE,
		Transition: KeyUp,
		Origin:     Synthetic,
		ExtraInfo:  syntheticTag,
	}}, inj.batches[0])
}

func TestHandleInjectionFailure(t *testing.T) {
	for _, tr := range []Transition{KeyDown, KeyUp} {
		inj := &recordingInjector{accepted: 0}
		f := NewInterceptionFilter(slashRule, noMods(), inj)

		assert.Equal(t, PassThrough, f.Handle(slashEvent(tr)), "no suppression without a delivered substitute")
		assert.Len(t, inj.batches, 1, "injection is attempted once, never retried")
	}
}

func TestHandleNilCollaborators(t *testing.T) {
	f := NewInterceptionFilter(slashRule, nil, nil)
	assert.Equal(t, PassThrough, f.Handle(slashEvent(KeyDown)))

	inj := acceptAll()
	f = NewInterceptionFilter(slashRule, nil, inj)
	assert.Equal(t, Suppress, f.Handle(slashEvent(KeyDown)))
	assert.Len(t, inj.batches, 1)
}

func TestHandleOtherKeys(t *testing.T) {
	keys := []VirtualKey{VK_DIVIDE, VK_SHIFT, VK_CONTROL, VK_MENU, 0x41, 0xBE, 0xC0, 0}

	for _, vk := range keys {
		for _, tr := range []Transition{KeyDown, KeyUp, TransitionUnknown} {
			inj := acceptAll()
			f := NewInterceptionFilter(slashRule, noMods(), inj)

			ev := &KeyEvent{VirtualKey: vk, Transition: tr}
			assert.Equal(t, PassThrough, f.Handle(ev), "vk=%v", vk)
			assert.Empty(t, inj.batches)
		}
	}
}

func TestHandleUnknownTransition(t *testing.T) {
	inj := acceptAll()
	f := NewInterceptionFilter(slashRule, noMods(), inj)

	assert.Equal(t, PassThrough, f.Handle(slashEvent(TransitionUnknown)))
	assert.Empty(t, inj.batches)
}

func TestHandleInjectedForeignEvent(t *testing.T) {
	// Injected by another program: no tag, so it is remapped like hardware input
	inj := acceptAll()
	f := NewInterceptionFilter(slashRule, noMods(), inj)

	ev := &KeyEvent{VirtualKey: VK_OEM_2, Transition: KeyDown, Origin: Synthetic, ExtraInfo: 42}
	assert.Equal(t, Suppress, f.Handle(ev))
	assert.Len(t, inj.batches, 1)
}

func TestHandleSequence(t *testing.T) {
	inj := acceptAll()
	var held ModifierState
	f := NewInterceptionFilter(slashRule, ModifierSourceFunc(func() ModifierState { return held }), inj)

	steps := []struct {
		ev   *KeyEvent
		mods ModifierState
		want Decision
	}{
		{slashEvent(KeyDown), ModifierState{}, Suppress},
		// Our own echo comes back through the hook
		{&KeyEvent{VirtualKey: VK_DIVIDE, Transition: KeyDown, Origin: Synthetic, ExtraInfo: syntheticTag}, ModifierState{}, PassThrough},
		{slashEvent(KeyUp), ModifierState{}, Suppress},
		{&KeyEvent{VirtualKey: VK_DIVIDE, Transition: KeyUp, Origin: Synthetic, ExtraInfo: syntheticTag}, ModifierState{}, PassThrough},
		{slashEvent(KeyDown), ModifierState{Ctrl: true}, PassThrough},
		{slashEvent(KeyUp), ModifierState{Ctrl: true}, PassThrough},
	}

	for i, step := range steps {
		held = step.mods
		assert.Equal(t, step.want, f.Handle(step.ev), "step %d", i)
	}

	require.Len(t, inj.batches, 2)
	assert.Equal(t, KeyDown, inj.batches[0][0].Transition)
	assert.Equal(t, KeyUp, inj.batches[1][0].Transition)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "pass-through", PassThrough.String())
	assert.Equal(t, "suppress", Suppress.String())
}
