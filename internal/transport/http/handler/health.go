package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atmosaether/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	statusCode := http.StatusOK
	if !h.storeReachable(ctx) {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":  status,
		"service": h.app.Config.App.Name,
	})
}

func (h *HealthHandler) storeReachable(ctx context.Context) bool {
	sqlDB, err := h.app.MySQL.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
