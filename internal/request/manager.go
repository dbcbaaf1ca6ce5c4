package request

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/jdwp/internal/event"
	"github.com/dshills/jdwp/internal/runtime"
)

// Sentinel errors for the request table.
var (
	// ErrNotFound is returned when a request ID is not in the table.
	ErrNotFound = errors.New("request not found")

	// ErrTooManyRequests is returned when the table is at its configured
	// capacity.
	ErrTooManyRequests = errors.New("request table full")
)

// ModifierFunc constructs one modifier. Constructors for handle-owning
// kinds can fail with runtime.ErrOutOfResources; the Manager aborts the
// whole request when any constructor fails.
type ModifierFunc func() (event.Modifier, error)

// Manager is the table of outstanding event requests. All methods are
// safe for concurrent use.
type Manager struct {
	mu sync.RWMutex

	nextID int32
	limit  int

	byID   map[int32]*Request
	byKind map[event.Kind][]*Request
}

// NewManager creates an empty request table. A limit of zero means
// unlimited.
func NewManager(limit int) *Manager {
	return &Manager{
		nextID: 1,
		limit:  limit,
		byID:   make(map[int32]*Request),
		byKind: make(map[event.Kind][]*Request),
	}
}

// Create builds a request's chain from the given modifier constructors,
// in order, and installs the request. When any constructor fails, every
// modifier already built is released and nothing is installed: a partial
// filter chain must never be visible to dispatch.
func (m *Manager) Create(kind event.Kind, suspend SuspendPolicy, mods ...ModifierFunc) (*Request, error) {
	chain := event.NewChain()
	for _, mk := range mods {
		mod, err := mk()
		if err != nil {
			chain.Close()
			return nil, fmt.Errorf("create %v request: %w", kind, err)
		}
		chain.Add(mod)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limit > 0 && len(m.byID) >= m.limit {
		chain.Close()
		return nil, fmt.Errorf("create %v request: %w", kind, ErrTooManyRequests)
	}

	req := &Request{
		id:      m.nextID,
		kind:    kind,
		suspend: suspend,
		enabled: true,
		chain:   chain,
	}
	m.nextID++
	m.byID[req.id] = req
	m.byKind[kind] = append(m.byKind[kind], req)
	return req, nil
}

// Get returns the request with the given ID.
func (m *Manager) Get(id int32) (*Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	req, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("request %d: %w", id, ErrNotFound)
	}
	return req, nil
}

// Remove unlinks the request and releases its chain.
func (m *Manager) Remove(id int32) error {
	m.mu.Lock()
	req, ok := m.byID[id]
	if ok {
		m.unlinkLocked(req)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("request %d: %w", id, ErrNotFound)
	}
	req.close()
	return nil
}

// RemoveKind removes every request registered for the event kind, as the
// protocol's clear-all commands do. It returns the number removed.
func (m *Manager) RemoveKind(kind event.Kind) int {
	m.mu.Lock()
	removed := m.byKind[kind]
	delete(m.byKind, kind)
	for _, req := range removed {
		delete(m.byID, req.id)
	}
	m.mu.Unlock()

	for _, req := range removed {
		req.close()
	}
	return len(removed)
}

// Requests returns every outstanding request for the event kind, in
// creation order.
func (m *Manager) Requests(kind event.Kind) []*Request {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Request, len(m.byKind[kind]))
	copy(out, m.byKind[kind])
	return out
}

// Len returns the number of outstanding requests.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

// Dispatch evaluates the occurrence against every request registered for
// its kind and returns the requests that matched, in creation order. The
// caller encodes and ships one composite event for them.
//
// Requests whose Count modifier fired during this pass are expired: the
// protocol reports their event once and the request is removed before
// Dispatch returns.
func (m *Manager) Dispatch(env runtime.Env, info *event.Info) []*Request {
	candidates := m.Requests(info.Kind)

	var matched []*Request
	var expired []*Request
	for _, req := range candidates {
		if req.Match(env, info) {
			matched = append(matched, req)
			if req.expired() {
				expired = append(expired, req)
			}
		}
	}

	if len(expired) > 0 {
		m.mu.Lock()
		for _, req := range expired {
			if _, ok := m.byID[req.id]; ok {
				m.unlinkLocked(req)
			}
		}
		m.mu.Unlock()
		for _, req := range expired {
			req.close()
		}
	}
	return matched
}

// Close removes every request and releases every chain.
func (m *Manager) Close() {
	m.mu.Lock()
	all := make([]*Request, 0, len(m.byID))
	for _, req := range m.byID {
		all = append(all, req)
	}
	m.byID = make(map[int32]*Request)
	m.byKind = make(map[event.Kind][]*Request)
	m.mu.Unlock()

	for _, req := range all {
		req.close()
	}
}

// unlinkLocked removes req from both indexes. Must be called with m.mu
// held for writing.
func (m *Manager) unlinkLocked(req *Request) {
	delete(m.byID, req.id)
	kindList := m.byKind[req.kind]
	for i, r := range kindList {
		if r == req {
			m.byKind[req.kind] = append(kindList[:i], kindList[i+1:]...)
			break
		}
	}
	if len(m.byKind[req.kind]) == 0 {
		delete(m.byKind, req.kind)
	}
}
