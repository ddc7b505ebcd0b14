// Package dialog remembers, per conversation, that the previous turn asked
// the user for a project name to finish an in-flight create or delete. It
// stands in for the assistant framework's set-context/remove-context
// annotations: one pending operation per conversation, consumed by the next
// supplied name or dropped after a short expiry.
package dialog

import (
	"sync"
	"time"
)

// Op identifies the command waiting on a project name.
type Op int

const (
	// None means no operation is pending.
	None Op = iota
	// PendingCreate means a create is waiting on a name.
	PendingCreate
	// PendingDelete means a delete is waiting on a name.
	PendingDelete
)

func (o Op) String() string {
	switch o {
	case PendingCreate:
		return "create"
	case PendingDelete:
		return "delete"
	default:
		return "none"
	}
}

type pending struct {
	op      Op
	expires time.Time
}

// Registry tracks pending operations keyed by conversation session ID.
type Registry struct {
	mu  sync.Mutex
	ttl time.Duration
	ops map[string]pending
	now func() time.Time
}

// DefaultTTL bounds how long a pending operation waits for its name.
const DefaultTTL = 2 * time.Minute

// NewRegistry creates a registry with the given expiry, or DefaultTTL when
// ttl is zero.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		ttl: ttl,
		ops: make(map[string]pending),
		now: time.Now,
	}
}

// Set records a pending operation for the session, replacing any prior one.
func (r *Registry) Set(sessionID string, op Op) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if op == None {
		delete(r.ops, sessionID)
		return
	}
	r.ops[sessionID] = pending{op: op, expires: r.now().Add(r.ttl)}
}

// Take returns and clears the session's pending operation. Expired or
// absent entries yield None.
func (r *Registry) Take(sessionID string) Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.ops[sessionID]
	if !ok {
		return None
	}
	delete(r.ops, sessionID)
	if r.now().After(p.expires) {
		return None
	}
	return p.op
}

// Clear drops the session's pending operation, if any.
func (r *Registry) Clear(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ops, sessionID)
}
