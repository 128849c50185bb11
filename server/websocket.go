package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shengmingqijiquan/streamlit/errors"
	"github.com/shengmingqijiquan/streamlit/message"
)

// NewUpgrader returns a WebSocket upgrader whose origin check is backed by
// the given policy. Requests without an Origin header (non-browser
// clients) are accepted; the CORS policy only constrains browsers.
func NewUpgrader(policy *OriginPolicy) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     CheckOrigin(policy),
	}
}

// CheckOrigin returns an origin callback for a websocket.Upgrader that
// defers to policy.IsAllowedOrigin.
func CheckOrigin(policy *OriginPolicy) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return policy.IsAllowedOrigin(origin)
	}
}

// clientInfo holds per-connection state for a connected browser client.
type clientInfo struct {
	conn        *websocket.Conn
	connectedAt time.Time
	writeMu     sync.Mutex // serializes writes to the same connection
}

// WebsocketServer is the browser-facing WebSocket surface. It upgrades
// incoming requests under the origin policy, tracks connected clients,
// and delivers forward messages through the message guard.
//
// WebsocketServer implements http.Handler; mount it on the mux path the
// frontend connects to.
type WebsocketServer struct {
	guard    *MessageGuard
	logger   *slog.Logger
	upgrader *websocket.Upgrader

	// Greeting, when set, produces the first message sent to each newly
	// connected client.
	Greeting func() *message.ForwardMsg

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*clientInfo
	closed    bool
}

// NewWebsocketServer creates the WebSocket surface from its two policies.
func NewWebsocketServer(guard *MessageGuard, policy *OriginPolicy, logger *slog.Logger) *WebsocketServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebsocketServer{
		guard:    guard,
		logger:   logger,
		upgrader: NewUpgrader(policy),
		clients:  make(map[*websocket.Conn]*clientInfo),
	}
}

// ServeHTTP upgrades the request and services the connection until the
// client disconnects.
func (s *WebsocketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response (403 on a
		// rejected origin).
		s.logger.Debug("websocket upgrade rejected",
			"remote", r.RemoteAddr, "origin", r.Header.Get("Origin"), "error", err)
		return
	}

	client := &clientInfo{conn: conn, connectedAt: time.Now()}
	if !s.addClient(client) {
		_ = conn.Close()
		return
	}
	defer s.removeClient(client)

	s.logger.Info("client connected", "remote", conn.RemoteAddr().String())

	if s.Greeting != nil {
		if msg := s.Greeting(); msg != nil {
			if err := s.send(client, msg); err != nil {
				s.logger.Warn("greeting delivery failed", "error", err)
				return
			}
		}
	}

	// Inbound data messages are not part of this surface; reading keeps
	// control frames serviced and detects disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.logger.Info("client disconnected", "remote", conn.RemoteAddr().String())
}

// Broadcast delivers a forward message to every connected client. The
// message is serialized once; per-client write failures are logged and do
// not stop delivery to the remaining clients.
func (s *WebsocketServer) Broadcast(msg *message.ForwardMsg) error {
	s.clientsMu.RLock()
	if s.closed {
		s.clientsMu.RUnlock()
		return errors.Wrap(errors.ErrNotStarted, "WebsocketServer", "Broadcast", "deliver message")
	}
	clients := make([]*clientInfo, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.clientsMu.RUnlock()

	data, err := s.guard.Serialize(msg)
	if err != nil {
		return errors.Wrap(err, "WebsocketServer", "Broadcast", "serialize message")
	}

	for _, client := range clients {
		if err := s.writeBinary(client, data); err != nil {
			s.logger.Warn("broadcast write failed",
				"remote", client.conn.RemoteAddr().String(), "error", err)
		}
	}
	return nil
}

// ClientCount reports the number of currently connected clients.
func (s *WebsocketServer) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Close disconnects all clients and rejects future connections.
func (s *WebsocketServer) Close() {
	s.clientsMu.Lock()
	s.closed = true
	clients := make([]*clientInfo, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.clients = make(map[*websocket.Conn]*clientInfo)
	s.clientsMu.Unlock()

	for _, client := range clients {
		deadline := time.Now().Add(time.Second)
		_ = client.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			deadline)
		_ = client.conn.Close()
	}
}

func (s *WebsocketServer) addClient(client *clientInfo) bool {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if s.closed {
		return false
	}
	s.clients[client.conn] = client
	return true
}

func (s *WebsocketServer) removeClient(client *clientInfo) {
	s.clientsMu.Lock()
	delete(s.clients, client.conn)
	s.clientsMu.Unlock()
	_ = client.conn.Close()
}

func (s *WebsocketServer) send(client *clientInfo, msg *message.ForwardMsg) error {
	data, err := s.guard.Serialize(msg)
	if err != nil {
		return errors.Wrap(err, "WebsocketServer", "send", "serialize message")
	}
	return s.writeBinary(client, data)
}

func (s *WebsocketServer) writeBinary(client *clientInfo, data []byte) error {
	client.writeMu.Lock()
	defer client.writeMu.Unlock()
	if err := client.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return errors.WrapTransient(err, "WebsocketServer", "writeBinary", "write frame")
	}
	return nil
}
