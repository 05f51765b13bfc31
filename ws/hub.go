// Package ws pushes order, table and billing events to the live dashboards.
package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/entity"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/events"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/resp"
	"github.com/rajeshhitechvalley/Cfapp-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	ChannelKitchen   = "kitchen"
	ChannelReception = "reception"
	ChannelSales     = "sales"
)

var ErrHubClosed = errors.New("ws: hub closed")

// channelRoles lists who may watch each feed.
var channelRoles = map[string][]string{
	ChannelKitchen:   {entity.RoleKitchen, entity.RoleManager, entity.RoleAdmin},
	ChannelReception: {entity.RoleReception, entity.RoleWaiter, entity.RoleManager, entity.RoleAdmin},
	ChannelSales:     {entity.RoleCashier, entity.RoleManager, entity.RoleAdmin},
}

// CanWatch reports whether role may subscribe to channel.
func CanWatch(channel, role string) bool {
	for _, r := range channelRoles[channel] {
		if r == role {
			return true
		}
	}
	return false
}

const (
	sendBuffer   = 32
	writeTimeout = 5 * time.Second
)

// Hub fans events out to websocket clients grouped by dashboard channel.
// Each client has its own writer; the hub never waits on a socket.
type Hub struct {
	clients    map[string]map[*client]bool // channel -> set of clients
	broadcast  chan broadcastMessage
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.Mutex
	log        *logger.Logger
}

type Subscription struct {
	Conn    *websocket.Conn
	Channel string
	UserID  uint
}

type client struct {
	Subscription
	send chan events.Event
}

type broadcastMessage struct {
	Channel string
	Event   events.Event
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[string]map[*client]bool),
		broadcast:  make(chan broadcastMessage, sendBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run serves register/unregister/broadcast until ctx ends, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.Channel] == nil {
				h.clients[c.Channel] = make(map[*client]bool)
			}
			h.clients[c.Channel][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.drop(c)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients[msg.Channel] {
				select {
				case c.send <- msg.Event:
				default:
					h.log.Warn(ctx, "ws_write", "client too slow, dropping",
						slog.String("channel", msg.Channel), slog.Uint64("user_id", uint64(c.UserID)))
					h.drop(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop removes c and stops its writer. Callers hold h.mu.
func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c.Channel][c]; !ok {
		return
	}
	delete(h.clients[c.Channel], c)
	close(c.send)
}

func (h *Hub) shutdown() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch, set := range h.clients {
		for c := range set {
			h.drop(c)
		}
		delete(h.clients, ch)
	}
}

// Publish implements events.Publisher. It only queues the event for Run.
func (h *Hub) Publish(ctx context.Context, ev events.Event) error {
	for _, ch := range events.Channels(ev.Type) {
		select {
		case <-h.done:
			return ErrHubClosed
		default:
		}
		select {
		case h.broadcast <- broadcastMessage{Channel: ch, Event: ev}:
		case <-h.done:
			return ErrHubClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Clients counts subscribers on a channel.
func (h *Hub) Clients(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[channel])
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades GET /ws/:channel. Auth middleware must have set the role.
func (h *Hub) Handle(c *gin.Context) {
	channel := c.Param("channel")
	if _, ok := channelRoles[channel]; !ok {
		resp.NotFound(c, "unknown channel")
		return
	}
	if !CanWatch(channel, utils.CurrentRole(c)) {
		resp.Forbidden(c, "forbidden")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn(c.Request.Context(), "ws_upgrade", "upgrade failed", slog.String("error", err.Error()))
		return
	}

	cl := &client{
		Subscription: Subscription{Conn: conn, Channel: channel, UserID: utils.CurrentUserID(c)},
		send:         make(chan events.Event, sendBuffer),
	}
	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return
	}
	h.log.Info(c.Request.Context(), "ws_subscribe", "dashboard connected",
		slog.String("channel", channel), slog.Uint64("user_id", uint64(cl.UserID)))

	go h.write(cl)
	go h.listen(cl)
}

// write drains cl.send onto the socket. It owns every write to the connection
// and closes it once the hub drops the client.
func (h *Hub) write(cl *client) {
	defer cl.Conn.Close()
	for ev := range cl.send {
		_ = cl.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := cl.Conn.WriteJSON(ev); err != nil {
			h.log.Warn(context.Background(), "ws_write", "write failed",
				slog.String("channel", cl.Channel), slog.String("error", err.Error()))
			h.leave(cl)
			break
		}
	}
	// keep draining until Run closes send
	for range cl.send {
	}
}

// listen drains client frames; the feed is one-way, so reads only detect hang-ups.
func (h *Hub) listen(cl *client) {
	defer h.leave(cl)
	for {
		if _, _, err := cl.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) leave(cl *client) {
	select {
	case h.unregister <- cl:
	case <-h.done:
	}
}
