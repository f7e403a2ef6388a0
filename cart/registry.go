package cart

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Snapshotter persists cart contents between process restarts. It is an
// optimisation only: a failing snapshotter never changes what a session sees.
type Snapshotter interface {
	Load(ctx context.Context, sessionID string) ([]LineItem, error)
	Save(ctx context.Context, sessionID string, items []LineItem) error
	Delete(ctx context.Context, sessionID string) error
}

const snapshotTimeout = 5 * time.Second

type entry struct {
	store       *Store
	unsubscribe func()

	saveMu    sync.Mutex
	lastSaved uint64
	dropped   bool
}

// Registry hands out one Store per browser session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	snap     Snapshotter
}

// NewRegistry builds a registry. snap may be nil for memory-only carts.
func NewRegistry(snap Snapshotter) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		snap:     snap,
	}
}

// Get returns the session's store, creating it (and restoring any persisted
// snapshot) on first use. The snapshot is loaded without holding the registry
// lock.
func (r *Registry) Get(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	if e, ok := r.sessions[sessionID]; ok {
		r.mu.Unlock()
		return e.store
	}
	r.mu.Unlock()

	store := r.restore(ctx, sessionID)

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request for the same session may have won the race.
	if e, ok := r.sessions[sessionID]; ok {
		return e.store
	}

	e := &entry{store: store}
	if r.snap != nil {
		e.unsubscribe = store.Subscribe(func(s Snapshot) { r.persist(sessionID, e, s) })
	}
	r.sessions[sessionID] = e
	return store
}

func (r *Registry) restore(ctx context.Context, sessionID string) *Store {
	if r.snap == nil {
		return NewStore()
	}

	loadCtx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	items, err := r.snap.Load(loadCtx, sessionID)
	if err != nil {
		log.WithFields(log.Fields{"session_id": sessionID, "error": err}).Warn("⚠️ could not restore cart snapshot, starting empty")
		return NewStore()
	}
	if len(items) == 0 {
		return NewStore()
	}
	return NewStoreFrom(items)
}

// Drop forgets the session's in-memory cart and deletes its snapshot.
func (r *Registry) Drop(ctx context.Context, sessionID string) {
	r.mu.Lock()
	e, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	if ok {
		if e.unsubscribe != nil {
			e.unsubscribe()
		}
		// Waits out a Save already in flight; later ones see the flag.
		e.saveMu.Lock()
		e.dropped = true
		e.saveMu.Unlock()
	}
	if r.snap == nil {
		return
	}
	if err := r.snap.Delete(ctx, sessionID); err != nil {
		log.WithFields(log.Fields{"session_id": sessionID, "error": err}).Warn("⚠️ failed to delete cart snapshot")
	}
}

// Len reports how many carts are held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) persist(sessionID string, e *entry, s Snapshot) {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	if e.dropped {
		return
	}
	// Listeners run outside the store lock, so an older snapshot can arrive
	// after a newer one has already been written.
	if s.Version <= e.lastSaved {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	if err := r.snap.Save(ctx, sessionID, s.Items); err != nil {
		log.WithFields(log.Fields{"session_id": sessionID, "error": err}).Error("❌ failed to save cart snapshot")
		return
	}
	e.lastSaved = s.Version
}
