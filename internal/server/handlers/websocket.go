// internal/server/handlers/websocket.go

package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// FeedClient represents a connected live feed client
type FeedClient struct {
	conn          *websocket.Conn
	send          chan []byte
	done          chan struct{}
	natsConn      *nats.Conn
	subscriptions []*nats.Subscription
	closeOnce     sync.Once
}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 64 * 1024,
	}
}

// upgrader is used to upgrade HTTP connections to WebSocket
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, this should be more restrictive
		return true
	},
}

// FeedWebSocketHandler streams live feed events (classifications and deep
// scans) published on the event bus to connected clients.
func FeedWebSocketHandler(natsConn *nats.Conn, eventsTopic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error().Err(err).Msg("failed to upgrade to WebSocket")
			return
		}

		client := &FeedClient{
			conn:     conn,
			send:     make(chan []byte, 256),
			done:     make(chan struct{}),
			natsConn: natsConn,
		}

		go client.writePump()
		go client.readPump()

		if err := client.subscribeToFeed(eventsTopic); err != nil {
			log.Error().Err(err).Msg("failed to subscribe to feed topics")
			client.closeConnection()
			return
		}

		log.Info().Str("remote", r.RemoteAddr).Msg("new feed WebSocket connection")
	}
}

// readPump consumes control frames until the client disconnects
func (c *FeedClient) readPump() {
	config := DefaultWebSocketConfig()

	defer func() {
		c.closeConnection()
	}()

	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("WebSocket read error")
			}
			break
		}
	}
}

// writePump pumps feed events to the WebSocket connection
func (c *FeedClient) writePump() {
	config := DefaultWebSocketConfig()
	ticker := time.NewTicker(config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// subscribeToFeed subscribes to feed-related NATS topics
func (c *FeedClient) subscribeToFeed(eventsTopic string) error {
	for _, kind := range []string{"classified", "scanned"} {
		sub, err := c.natsConn.Subscribe(fmt.Sprintf("%s.%s", eventsTopic, kind), func(msg *nats.Msg) {
			c.enqueue(msg.Data)
		})
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s events: %w", kind, err)
		}
		c.subscriptions = append(c.subscriptions, sub)
	}

	return nil
}

// enqueue hands a feed event to the write pump. Unsubscribe does not wait for
// in-flight callbacks, so a message racing a disconnect is dropped here rather
// than sent into a torn-down client.
func (c *FeedClient) enqueue(data []byte) {
	select {
	case c.send <- data:
	case <-c.done:
	}
}

// closeConnection closes the WebSocket connection and cleans up resources.
// Both pumps call it on exit; only the first call tears down.
func (c *FeedClient) closeConnection() {
	c.closeOnce.Do(func() {
		close(c.done)

		for _, sub := range c.subscriptions {
			sub.Unsubscribe()
		}

		c.conn.Close()

		log.Info().Msg("feed WebSocket connection closed")
	})
}
