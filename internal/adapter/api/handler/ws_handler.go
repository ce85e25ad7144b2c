package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"unimarket/internal/domain/entity"
	"unimarket/internal/infrastructure/websocket"
	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/logger"
	"unimarket/pkg/response"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams live rating aggregates to browsers. One snapshot
// watcher runs per item topic, shared by every subscriber of that item.
type WebSocketHandler struct {
	manager       *websocket.Manager
	ratingUseCase *usecase.RatingUseCase

	mutex    sync.Mutex
	watchers map[string]context.CancelFunc
}

var wsHandler *WebSocketHandler

func SetupWebSocketHandler(manager *websocket.Manager, ratingUseCase *usecase.RatingUseCase) {
	wsHandler = NewWebSocketHandler(manager, ratingUseCase)
}

func GetWebSocketHandler() *WebSocketHandler {
	return wsHandler
}

func NewWebSocketHandler(manager *websocket.Manager, ratingUseCase *usecase.RatingUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		manager:       manager,
		ratingUseCase: ratingUseCase,
		watchers:      make(map[string]context.CancelFunc),
	}
}

type aggregateMessage struct {
	ItemKind      string  `json:"item_kind"`
	ItemID        string  `json:"item_id"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

func (h *WebSocketHandler) WatchItemRatings(c echo.Context) error {
	kind := c.Param("kind")
	itemID := c.Param("id")

	if !entity.IsRatableKind(kind) {
		return response.Error(c, errors.BadRequest("Item kind cannot be rated", nil))
	}
	if itemID == "" {
		return response.Error(c, errors.BadRequest("Item ID is required", nil))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed: %v", err)
		return err
	}

	topic := kind + "/" + itemID
	client := websocket.NewClient(topic, conn)

	if h.manager.Subscribe(client) == 1 {
		h.startWatcher(topic, kind, itemID)
	}

	go client.WritePump()
	go client.ReadPump(func() {
		if h.manager.Unsubscribe(client) == 0 {
			h.stopWatcher(topic)
		}
	})

	return nil
}

func (h *WebSocketHandler) startWatcher(topic, kind, itemID string) {
	ctx, cancel := context.WithCancel(context.Background())

	h.mutex.Lock()
	h.watchers[topic] = cancel
	h.mutex.Unlock()

	go func() {
		updates, err := h.ratingUseCase.WatchItemAggregate(ctx, kind, itemID)
		if err != nil {
			logger.Error("Aggregate watch failed: topic=%s err=%v", topic, err)
			h.stopWatcher(topic)
			return
		}

		for agg := range updates {
			message, err := json.Marshal(aggregateMessage{
				ItemKind:      kind,
				ItemID:        itemID,
				AverageRating: agg.AverageRating,
				RatingCount:   agg.RatingCount,
			})
			if err != nil {
				continue
			}
			h.manager.Publish(topic, message)
		}
	}()
}

func (h *WebSocketHandler) stopWatcher(topic string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if cancel, ok := h.watchers[topic]; ok {
		cancel()
		delete(h.watchers, topic)
	}
}
