package gldraw

import "sync"

// SyncToken is an opaque device sync object. Zero means no token.
type SyncToken uintptr

// FenceSlot holds the fence guarding one resource.
//
// The draw dispatcher installs a fresh token after every draw that reads
// the resource and destroys the one it replaces. The resource layer calls
// Take before touching the resource's memory and waits on the token it
// gets back. FenceSlot is safe for concurrent use.
type FenceSlot struct {
	mu    sync.Mutex
	token SyncToken
}

// Current returns the installed token without removing it.
func (f *FenceSlot) Current() (SyncToken, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.token != 0
}

// Take removes and returns the installed token.
// The caller becomes responsible for destroying it.
func (f *FenceSlot) Take() (SyncToken, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.token
	f.token = 0
	return t, t != 0
}

// replace installs t and returns the token it displaced, or zero.
func (f *FenceSlot) replace(t SyncToken) SyncToken {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev := f.token
	f.token = t
	return prev
}

// pendingFences collects the slots read by one draw call.
// A slot queued twice gets a single token.
type pendingFences struct {
	slots []*FenceSlot
}

func (p *pendingFences) add(s *FenceSlot) {
	if s == nil {
		return
	}
	for _, have := range p.slots {
		if have == s {
			return
		}
	}
	p.slots = append(p.slots, s)
}

func (p *pendingFences) addBuffer(b Buffer) {
	if b != nil {
		p.add(b.Fence())
	}
}

// install issues one token per pending slot and destroys the tokens they replace.
func (p *pendingFences) install(dev Device) {
	for _, s := range p.slots {
		if prev := s.replace(dev.FenceSync()); prev != 0 {
			dev.DeleteSync(prev)
		}
	}
	p.slots = p.slots[:0]
}

// reset drops the pending slots of an aborted draw.
func (p *pendingFences) reset() {
	p.slots = p.slots[:0]
}
