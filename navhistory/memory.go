package navhistory

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"go.uber.org/atomic"
)

// ErrRelativeLocation is returned by NewMemory for a location without a
// scheme and host.
var ErrRelativeLocation = errors.New("navhistory: location must be absolute")

// Entry is one history entry.
type Entry struct {
	URL   *url.URL
	State any
}

// Memory is an in-process history stack. It is safe for concurrent use.
// Subscribers are called synchronously, outside the lock, in subscription
// order.
type Memory struct {
	mu        sync.Mutex
	entries   []Entry
	index     int
	listeners map[uint64]func(u *url.URL, state any)

	nextID atomic.Uint64
}

// NewMemory returns a history holding a single entry for location.
func NewMemory(location string) (*Memory, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("navhistory: parse location %q: %w", location, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrRelativeLocation, location)
	}
	return &Memory{
		entries:   []Entry{{URL: u}},
		listeners: make(map[uint64]func(u *url.URL, state any)),
	}, nil
}

// Location returns a copy of the current entry's URL.
func (m *Memory) Location() *url.URL {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneURL(m.entries[m.index].URL)
}

// PushState drops the entries after the current one and appends a new
// entry for u.
func (m *Memory) PushState(state any, u *url.URL) error {
	if u == nil {
		return errors.New("navhistory: nil url")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries[:m.index+1], Entry{URL: cloneURL(u), State: state})
	m.index = len(m.entries) - 1
	return nil
}

// Subscribe registers fn for back/forward notifications. fn receives
// the URL and state of the entry moved to.
func (m *Memory) Subscribe(fn func(u *url.URL, state any)) func() {
	id := m.nextID.Inc()

	m.mu.Lock()
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Back moves one entry back. It reports false at the first entry.
func (m *Memory) Back() bool {
	return m.Go(-1)
}

// Forward moves one entry forward. It reports false at the last entry.
func (m *Memory) Forward() bool {
	return m.Go(1)
}

// Go moves delta entries and notifies subscribers with the URL and state
// of the entry it lands on. It reports false, without notifying, when the
// target is out of range or delta is zero.
func (m *Memory) Go(delta int) bool {
	m.mu.Lock()
	target := m.index + delta
	if delta == 0 || target < 0 || target >= len(m.entries) {
		m.mu.Unlock()
		return false
	}
	m.index = target
	entry := m.entries[target]
	listeners := m.snapshotListeners()
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(cloneURL(entry.URL), entry.State)
	}
	return true
}

// Entries returns a copy of the entry stack.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = Entry{URL: cloneURL(e.URL), State: e.State}
	}
	return out
}

// Index returns the position of the current entry.
func (m *Memory) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// snapshotListeners returns the listeners ordered by subscription.
// The caller must hold m.mu.
func (m *Memory) snapshotListeners() []func(u *url.URL, state any) {
	ids := make([]uint64, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]func(u *url.URL, state any), len(ids))
	for i, id := range ids {
		out[i] = m.listeners[id]
	}
	return out
}

func cloneURL(u *url.URL) *url.URL {
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
