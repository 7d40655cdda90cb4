package main

import (
	"sync"
)

// Synth shares a State between the audio callback and the control loop.
//
// The lock is held for one output sample on the render side and for one
// batch of control changes on the control side, never for a whole block.
type Synth struct {
	mu    sync.Mutex
	state *State
	scope *Scope
}

// NewSynth wraps state. scope may be nil.
func NewSynth(state *State, scope *Scope) *Synth {
	return &Synth{
		state: state,
		scope: scope,
	}
}

func (s *Synth) Scope() *Scope {
	return s.scope
}

// RenderSample computes one filtered sample and offers it to the scope.
func (s *Synth) RenderSample() Smp {
	s.mu.Lock()
	smp := s.state.Sample()
	s.mu.Unlock()
	if s.scope != nil {
		s.scope.TryPush(smp)
	}
	return smp
}

// Tick runs one control tick's worth of mutations under the lock.
func (s *Synth) Tick(f func(state *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.state)
}

func (s *Synth) SetNote(voice int, freq float64) {
	s.Tick(func(state *State) { state.SetNote(voice, freq) })
}

func (s *Synth) ClearVoice(voice int) {
	s.Tick(func(state *State) { state.ClearVoice(voice) })
}

func (s *Synth) SetWavetableLevel(slot int, value float32) {
	s.Tick(func(state *State) { state.SetLevel(slot, value) })
}

func (s *Synth) SetFilterCutoff(hz float32) {
	s.Tick(func(state *State) { state.SetFilterCutoff(hz) })
}

func (s *Synth) SetFilterQ(q float32) {
	s.Tick(func(state *State) { state.SetFilterQ(q) })
}

func (s *Synth) SetFilterMode(mode FilterMode) {
	s.Tick(func(state *State) { state.SetFilterMode(mode) })
}

// Close releases the state. The render loop must have stopped.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Destroy()
}
