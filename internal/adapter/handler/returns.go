package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/poolledger-backend/internal/usecase/ledger"
)

// ReturnHandler exposes monthly return recording and listing
type ReturnHandler struct {
	Ledger *ledger.Service
	Logger *zap.Logger
}

// Register binds the return routes
func (h *ReturnHandler) Register(r *gin.Engine) {
	api := r.Group("/api/returns")
	api.POST("", h.record)
	api.GET("", h.list)
}

type recordReturnRequest struct {
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	InvestmentID string          `json:"investmentId" binding:"required"`
}

func (h *ReturnHandler) record(c *gin.Context) {
	var req recordReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		Error(c, http.StatusBadRequest, "invalid date")
		return
	}
	investmentID, err := uuid.Parse(req.InvestmentID)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid investment id")
		return
	}

	ret, err := h.Ledger.RecordReturn(c.Request.Context(), ledger.RecordReturnInput{
		Date:         date,
		Amount:       req.Amount,
		InvestmentID: investmentID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	h.Logger.Info("return recorded",
		zap.String("id", ret.ID.String()),
		zap.String("amount", ret.Amount.String()),
		zap.Bool("warning", ret.Warning))
	Ok(c, ret)
}

func (h *ReturnHandler) list(c *gin.Context) {
	Ok(c, h.Ledger.State().Returns)
}
