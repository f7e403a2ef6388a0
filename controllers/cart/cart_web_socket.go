package cartControllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/kataplum-api/cart"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// latestSnapshot keeps only the newest pending snapshot for a slow client.
type latestSnapshot struct {
	mu     sync.Mutex
	snap   cart.Snapshot
	has    bool
	signal chan struct{}
}

func (l *latestSnapshot) offer(s cart.Snapshot) {
	l.mu.Lock()
	if !l.has || s.Version > l.snap.Version {
		l.snap = s
		l.has = true
	}
	l.mu.Unlock()

	select {
	case l.signal <- struct{}{}:
	default:
	}
}

func (l *latestSnapshot) take() (cart.Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.snap, l.has
	l.has = false
	return s, ok
}

// GET /cart/ws
// Streams the session's cart to every open view so a change made in one tab
// or component shows up everywhere.
func CartWebSocketHandler(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionCart(c, reg)
		if !ok {
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		pending := &latestSnapshot{signal: make(chan struct{}, 1)}
		unsubscribe := store.Subscribe(pending.offer)
		defer unsubscribe()

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		current := store.Snapshot()
		if err := conn.WriteJSON(view(current)); err != nil {
			return
		}
		lastSent := current.Version

		for {
			select {
			case <-closed:
				return
			case <-pending.signal:
				s, ok := pending.take()
				if !ok || s.Version <= lastSent {
					continue
				}
				if err := conn.WriteJSON(view(s)); err != nil {
					log.WithError(err).Debug("cart websocket write failed")
					return
				}
				lastSent = s.Version
			}
		}
	}
}
