package router

import (
	"unimarket/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

// SetupWebSocketRouter exposes the live rating feed. No auth middleware;
// aggregates are public data.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws/:kind/:id/ratings", wsHandler.WatchItemRatings)
}
