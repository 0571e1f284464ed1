// Package refresh provides the broadcast channel that lets one screen's
// action trigger reloads on other screens without direct references between
// them.
package refresh

import "sync"

// Scope tags a refresh event with the screens it targets.
type Scope int

const (
	// ScopeAll refreshes every screen.
	ScopeAll Scope = iota
	// ScopeHome refreshes the home/status view only.
	ScopeHome
	// ScopeDashboard refreshes the dashboard only.
	ScopeDashboard
)

// String implements fmt.Stringer.
func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeHome:
		return "home"
	case ScopeDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// Matches reports whether an emitted scope targets a subscriber listening
// for `listening`.
func (s Scope) Matches(listening Scope) bool {
	return s == ScopeAll || s == listening
}

// Bus is a lightweight publish-subscribe channel. Each subscriber holds a
// one-slot buffer; when a subscriber is behind, the pending tag is replaced
// by the newest one (drop-oldest) so publishers never block.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan Scope
	nextID int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Scope)}
}

// Subscribe registers a subscriber. The returned cancel func must be called
// when the owner is torn down; the channel is closed then.
func (b *Bus) Subscribe() (<-chan Scope, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Scope, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish broadcasts a refresh tag. Never blocks: a full subscriber buffer is
// drained first so each live subscriber eventually observes the latest tag.
func (b *Bus) Publish(scope Scope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- scope:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- scope:
			default:
			}
		}
	}
}
