package docstore

import (
	"context"
	"sync"
)

// Listener receives the complete current result set of a watched query, or
// the error that prevented it from being read.
type Listener func(snaps []*Snapshot, err error)

// Watch runs q now and again after every commit that writes a document in
// q's collection, passing each full result set to l. Bursts of commits are
// coalesced, so l may skip intermediate states but every delivered result set
// reflects committed data. Calls to l are sequential.
//
// The watch ends when ctx is done or the returned stop func is called. stop
// waits for an in-flight l to return and must not be called from l.
func (db *DB) Watch(ctx context.Context, q Query, l Listener) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	w := &watcher{
		collection: q.Collection.path,
		wake:       make(chan struct{}, 1),
	}
	db.hub.add(w)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer db.hub.remove(w)
		for {
			snaps, err := db.Query(ctx, q)
			if ctx.Err() != nil {
				return
			}
			l(snaps, err)

			select {
			case <-ctx.Done():
				return
			case <-db.hub.closed:
				return
			case <-w.wake:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

type watcher struct {
	collection string
	wake       chan struct{}
}

type hub struct {
	mu       sync.Mutex
	watchers map[*watcher]struct{}
	closed   chan struct{}
	once     sync.Once
}

func newHub() *hub {
	return &hub{
		watchers: make(map[*watcher]struct{}),
		closed:   make(chan struct{}),
	}
}

func (h *hub) add(w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.watchers[w] = struct{}{}
}

func (h *hub) remove(w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.watchers, w)
}

// notify wakes every watcher of the given collections.
func (h *hub) notify(collections []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for w := range h.watchers {
		for _, c := range collections {
			if w.collection != c {
				continue
			}
			select {
			case w.wake <- struct{}{}:
			default:
			}
			break
		}
	}
}

// WatchCount returns the number of active watches.
func (db *DB) WatchCount() int {
	db.hub.mu.Lock()
	defer db.hub.mu.Unlock()
	return len(db.hub.watchers)
}

func (h *hub) close() {
	h.once.Do(func() { close(h.closed) })
}
