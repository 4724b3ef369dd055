package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"foodops-server/internal/infra/async"
	"foodops-server/internal/infra/httpserver"
	statsdomain "foodops-server/internal/stats/domain"
	"foodops-server/internal/stats/usecases"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// dashboards are served from a separate origin in local setups
		return true
	},
}

// LiveStatsController pushes donation events to open dashboard sessions.
// Clients treat every event as a signal to refetch the stats table rather
// than patching it locally.
type LiveStatsController struct {
	broker     async.InternalBroker
	clients    map[*websocket.Conn]bool
	clientsMux sync.RWMutex
	broadcast  chan statsdomain.DonationRecorded
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewLiveStatsController(broker async.InternalBroker) *LiveStatsController {
	ctx, cancel := context.WithCancel(context.Background())

	controller := &LiveStatsController{
		broker:     broker,
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan statsdomain.DonationRecorded, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		ctx:        ctx,
		cancel:     cancel,
	}

	go controller.run()

	return controller
}

var _ httpserver.Controller = (*LiveStatsController)(nil)

func (c *LiveStatsController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/stats/live", c.handleWebSocket())
}

func (c *LiveStatsController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		slog.Info("live stats connection established", slog.String("remote_addr", r.RemoteAddr))

		c.register <- conn

		go c.handlePingPong(conn)
		go c.handleClient(conn)
	}
}

func (c *LiveStatsController) handleClient(conn *websocket.Conn) {
	defer func() {
		c.unregister <- conn
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("websocket read error", slog.String("error", err.Error()))
			} else {
				slog.Debug("websocket connection closed", slog.String("error", err.Error()))
			}
			break
		}
	}
}

func (c *LiveStatsController) handlePingPong(conn *websocket.Conn) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *LiveStatsController) run() {
	subscription, err := c.broker.Subscribe(usecases.BrokerTopicDonationEvents)
	if err != nil {
		slog.Error("subscribing to donation events", slog.String("error", err.Error()))
		return
	}
	defer c.broker.Unsubscribe(usecases.BrokerTopicDonationEvents, subscription)

	for {
		select {
		case <-c.ctx.Done():
			return

		case client := <-c.register:
			c.clientsMux.Lock()
			c.clients[client] = true
			c.clientsMux.Unlock()
			slog.Info("live stats client registered", slog.Int("total_clients", len(c.clients)))

		case client := <-c.unregister:
			c.clientsMux.Lock()
			if _, ok := c.clients[client]; ok {
				delete(c.clients, client)
				client.Close()
			}
			c.clientsMux.Unlock()
			slog.Info("live stats client unregistered", slog.Int("total_clients", len(c.clients)))

		case event := <-c.broadcast:
			c.clientsMux.Lock()
			for client := range c.clients {
				client.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := client.WriteJSON(event); err != nil {
					slog.Error("writing to live stats client", slog.String("error", err.Error()))
					client.Close()
					delete(c.clients, client)
				}
			}
			c.clientsMux.Unlock()

		case brokerMsg := <-subscription.Receiver:
			event, ok := brokerMsg.Value.(statsdomain.DonationRecorded)
			if !ok {
				continue
			}
			select {
			case c.broadcast <- event:
			default:
				slog.Warn("broadcast channel full, dropping donation event")
			}
		}
	}
}

func (c *LiveStatsController) Shutdown() {
	slog.Info("shutting down live stats controller")
	c.cancel()

	c.clientsMux.Lock()
	for client := range c.clients {
		client.Close()
	}
	c.clientsMux.Unlock()
}
