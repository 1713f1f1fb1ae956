package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/poolledger-backend/internal/usecase/ledger"
)

// PoolHandler exposes pool setup, full state and reset
type PoolHandler struct {
	Ledger *ledger.Service
	Logger *zap.Logger
}

// Register binds the pool routes
func (h *PoolHandler) Register(r *gin.Engine) {
	api := r.Group("/api")
	api.POST("/setup", h.setup)
	api.POST("/reset", h.reset)
	api.GET("/state", h.state)
}

type setupRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func (h *PoolHandler) setup(c *gin.Context) {
	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Ledger.InitializePool(c.Request.Context(), req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	h.Logger.Info("pool initialized", zap.String("amount", req.Amount.String()))
	Ok(c, entry)
}

func (h *PoolHandler) reset(c *gin.Context) {
	if err := h.Ledger.ResetAll(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	h.Logger.Info("state reset")
	Ok(c, nil)
}

func (h *PoolHandler) state(c *gin.Context) {
	Ok(c, h.Ledger.State())
}

// parseDate parses an ISO date from a request, defaulting to now when the
// field is empty. Accepts both date-only and full RFC 3339 timestamps.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
