package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"unimarket/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one WebSocket subscriber bound to a single topic.
type Client struct {
	Topic string
	Conn  *websocket.Conn
	Send  chan []byte
}

func NewClient(topic string, conn *websocket.Conn) *Client {
	return &Client{
		Topic: topic,
		Conn:  conn,
		Send:  make(chan []byte, 8),
	}
}

// Manager fans messages out to all subscribers of a topic.
type Manager struct {
	topics map[string]map[*Client]struct{}
	mutex  sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		topics: make(map[string]map[*Client]struct{}),
	}
}

// Subscribe registers the client and reports how many subscribers the topic
// now has, so the caller knows when a topic goes live.
func (m *Manager) Subscribe(client *Client) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	subscribers, ok := m.topics[client.Topic]
	if !ok {
		subscribers = make(map[*Client]struct{})
		m.topics[client.Topic] = subscribers
	}
	subscribers[client] = struct{}{}

	logger.Debug("Subscriber added: topic=%s count=%d", client.Topic, len(subscribers))
	return len(subscribers)
}

// Unsubscribe removes the client and reports the remaining subscriber count,
// so the caller knows when a topic goes idle.
func (m *Manager) Unsubscribe(client *Client) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	subscribers, ok := m.topics[client.Topic]
	if !ok {
		return 0
	}
	if _, ok := subscribers[client]; ok {
		delete(subscribers, client)
		close(client.Send)
	}
	if len(subscribers) == 0 {
		delete(m.topics, client.Topic)
		return 0
	}
	return len(subscribers)
}

// Publish delivers a message to every subscriber of the topic. Slow clients
// are dropped rather than allowed to block the fan-out.
func (m *Manager) Publish(topic string, message []byte) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	subscribers, ok := m.topics[topic]
	if !ok {
		return
	}

	for client := range subscribers {
		select {
		case client.Send <- message:
		default:
			delete(subscribers, client)
			close(client.Send)
			logger.Warn("Dropped slow subscriber: topic=%s", topic)
		}
	}
}

// WritePump drains the send channel to the connection, keeping it alive with
// pings. Runs until the send channel is closed.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump discards inbound frames and invokes onClose when the peer
// disconnects. Subscribers are read-only; reads exist to detect closure.
func (c *Client) ReadPump(onClose func()) {
	defer onClose()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debug("WebSocket read error: %v", err)
			}
			return
		}
	}
}
