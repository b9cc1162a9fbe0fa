package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// viewMessage es lo que viaja por el websocket: una vista que cambió.
type viewMessage struct {
	View string `json:"view"`
	Data any    `json:"data"`
}

// Hub implementa ports.Notifier empujando por websocket las vistas que
// cambiaron en cada ciclo del poller. Cada escritura lleva deadline: un
// cliente estancado (buffer TCP lleno) se desconecta al vencer, nunca
// bloquea el loop de refresco.
type Hub struct {
	upgrader     websocket.Upgrader
	writeTimeout time.Duration

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub crea un hub sin clientes.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		writeTimeout: 5 * time.Second,
		clients:      make(map[*websocket.Conn]struct{}),
	}
}

// Handle hace el upgrade y registra el cliente hasta que cierre.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	slog.Debug("websocket client connected", "clients", n)

	// Loop de lectura solo para detectar el cierre; los mensajes entrantes
	// se descartan.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Notify serializa cada vista cambiada y la empuja a todos los clientes.
func (h *Hub) Notify(_ context.Context, up domain.Update) error {
	msgs := changedMessages(up)
	if len(msgs) == 0 {
		return nil
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		for _, msg := range msgs {
			conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				slog.Debug("websocket write failed, dropping client", "err", err)
				h.drop(conn)
				break
			}
		}
	}
	return nil
}

// Close desconecta todos los clientes.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]struct{})
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// changedMessages arma el mensaje de cada vista marcada en el update,
// con los mismos DTOs que la API REST. Un ciclo sin datos viaja como
// mensaje de status — el mismo placeholder que el 503 de la API.
func changedMessages(up domain.Update) []viewMessage {
	if up.DataUnavailable {
		return []viewMessage{{View: "status", Data: map[string]string{"error": "no data yet"}}}
	}

	var msgs []viewMessage
	snap := up.Snapshot

	if up.Changed.Summary {
		msgs = append(msgs, viewMessage{View: "summary", Data: newSummaryResponse(snap.Summary)})
	}
	if up.Changed.Trades {
		out := make([]tradeResponse, 0, len(snap.Trades))
		for _, t := range snap.Trades {
			out = append(out, newTradeResponse(t))
		}
		msgs = append(msgs, viewMessage{View: "trades", Data: out})
	}
	if up.Changed.Performance {
		out := make([]performanceResponse, 0, len(snap.Performance))
		for _, p := range snap.Performance {
			out = append(out, newPerformanceResponse(p))
		}
		msgs = append(msgs, viewMessage{View: "performance", Data: out})
	}
	if up.Changed.Sentiment {
		out := make([]sentimentResponse, 0, len(snap.Sentiment))
		for _, r := range snap.Sentiment.Chronological() {
			out = append(out, newSentimentResponse(r))
		}
		msgs = append(msgs, viewMessage{View: "sentiment", Data: out})
	}
	if up.Changed.Equity {
		out := make([]equityResponse, 0, len(snap.Equity))
		for _, p := range snap.Equity {
			out = append(out, equityResponse{Timestamp: p.Timestamp, Cumulative: p.Cumulative})
		}
		msgs = append(msgs, viewMessage{View: "equity", Data: out})
	}
	return msgs
}
