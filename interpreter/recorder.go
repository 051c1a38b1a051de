package interpreter

import (
	"fmt"
	"sort"
)

// Effect is one register or unregister command
type Effect struct {
	Key      VirtualKey
	Register bool
}

func (e Effect) String() string {
	if e.Register {
		return "+" + e.Key.String()
	}
	return "-" + e.Key.String()
}

// Recorder is a Registrar that keeps the ordered effect log and the set of
// keys it currently considers held.
type Recorder struct {
	Effects []Effect
	held    map[VirtualKey]bool

	// OnEffect, if set, is called after each effect is recorded
	OnEffect func(Effect)
}

func NewRecorder() *Recorder {
	return &Recorder{held: map[VirtualKey]bool{}}
}

func (r *Recorder) Register(key VirtualKey) {
	r.record(Effect{Key: key, Register: true})
}

func (r *Recorder) Unregister(key VirtualKey) {
	r.record(Effect{Key: key})
}

func (r *Recorder) record(e Effect) {
	if r.held == nil {
		r.held = map[VirtualKey]bool{}
	}
	if e.Register {
		r.held[e.Key] = true
	} else {
		delete(r.held, e.Key)
	}
	r.Effects = append(r.Effects, e)
	if r.OnEffect != nil {
		r.OnEffect(e)
	}
}

// Held reports whether key is currently registered
func (r *Recorder) Held(key VirtualKey) bool {
	return r.held[key]
}

// HeldKeys returns the registered keys in a stable order
func (r *Recorder) HeldKeys() []VirtualKey {
	keys := make([]VirtualKey, 0, len(r.held))
	for k := range r.held {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Take returns the effects recorded since the last call and clears the log
func (r *Recorder) Take() []Effect {
	out := r.Effects
	r.Effects = nil
	return out
}

// Log renders effects as a compact string such as "-Alt +Ctrl"
func Log(effects []Effect) string {
	s := ""
	for i, e := range effects {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprint(e)
	}
	return s
}
