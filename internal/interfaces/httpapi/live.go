package httpapi

import (
	"net/http"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/sourcegraph/conc"

	"github.com/grassroots-fc/matchday/internal/platform/logging"
	"github.com/grassroots-fc/matchday/internal/usecase"
)

const (
	liveSendBuffer = 16
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
)

// LiveHub pushes session state snapshots to websocket subscribers, one
// subscriber set per match. A spectator on the touchline sees the clock
// and score move without polling.
type LiveHub struct {
	logger      *logging.Logger
	upgrader    websocket.Upgrader
	mu          sync.RWMutex
	subscribers map[string]map[*liveClient]struct{}
	pumps       conc.WaitGroup
	closed      bool
}

type liveClient struct {
	hub     *LiveHub
	matchID string
	conn    *websocket.Conn
	send    chan []byte
}

func NewLiveHub(logger *logging.Logger) *LiveHub {
	if logger == nil {
		logger = logging.Default()
	}

	return &LiveHub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The CORS middleware owns origin policy; the upgrade itself
			// accepts any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subscribers: make(map[string]map[*liveClient]struct{}),
	}
}

// Subscribe upgrades the request and registers the connection for the
// match's broadcasts until the peer goes away.
func (h *LiveHub) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	matchID := r.PathValue("matchID")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed", "match_id", matchID, "error", err)
		return
	}

	client := &liveClient{
		hub:     h,
		matchID: matchID,
		conn:    conn,
		send:    make(chan []byte, liveSendBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	if _, ok := h.subscribers[matchID]; !ok {
		h.subscribers[matchID] = make(map[*liveClient]struct{})
	}
	h.subscribers[matchID][client] = struct{}{}
	h.mu.Unlock()

	h.logger.InfoContext(ctx, "live subscriber joined", "match_id", matchID)
	h.pumps.Go(client.writePump)
	h.pumps.Go(client.readPump)
}

// BroadcastState fans a session state out to the match's subscribers. A
// subscriber that cannot keep up is dropped rather than allowed to stall
// the rest.
func (h *LiveHub) BroadcastState(state usecase.SessionState) {
	payload, err := sonic.Marshal(sessionStateToDTO(state))
	if err != nil {
		h.logger.Warn("marshal live state failed", "match_id", state.Match.ID, "error", err)
		return
	}

	// Sends stay under the read lock so a concurrent drop cannot close a
	// channel mid-send; they are non-blocking, so the lock is held briefly.
	var stalled []*liveClient
	h.mu.RLock()
	for client := range h.subscribers[state.Match.ID] {
		select {
		case client.send <- payload:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.drop(client)
	}
}

// Shutdown disconnects every subscriber and waits for their pumps.
func (h *LiveHub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	for matchID, clients := range h.subscribers {
		for client := range clients {
			close(client.send)
		}
		delete(h.subscribers, matchID)
	}
	h.mu.Unlock()

	h.pumps.Wait()
}

func (h *LiveHub) drop(client *liveClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.subscribers[client.matchID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.subscribers, client.matchID)
	}
	close(client.send)
}

func (c *liveClient) writePump() {
	defer c.conn.Close()

	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			c.hub.drop(c)
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames; the feed is one way. It exists to
// notice the peer closing and to answer pings.
func (c *liveClient) readPump() {
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(livePongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(livePongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.hub.drop(c)
			return
		}
	}
}
