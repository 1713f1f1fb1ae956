package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/poolledger-backend/internal/domain"
	"github.com/simaogato/poolledger-backend/internal/usecase/dashboard"
	"github.com/simaogato/poolledger-backend/internal/usecase/ledger"
)

// TransactionHandler exposes manual transactions and the ledger listing
type TransactionHandler struct {
	Ledger    *ledger.Service
	Dashboard *dashboard.Service
	Logger    *zap.Logger
}

// Register binds the transaction and ledger routes
func (h *TransactionHandler) Register(r *gin.Engine) {
	api := r.Group("/api")
	api.POST("/transactions", h.add)
	api.GET("/transactions", h.list)
	api.GET("/ledger", h.ledger)
}

type addTransactionRequest struct {
	Date        string          `json:"date"`
	Type        string          `json:"type" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	SourceType  string          `json:"sourceType"`
	SourceID    string          `json:"sourceId"`
}

func (h *TransactionHandler) add(c *gin.Context) {
	var req addTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		Error(c, http.StatusBadRequest, "invalid date")
		return
	}

	var sourceID *uuid.UUID
	if req.SourceID != "" {
		id, err := uuid.Parse(req.SourceID)
		if err != nil {
			Error(c, http.StatusBadRequest, "invalid source id")
			return
		}
		sourceID = &id
	}

	tx, err := h.Ledger.AddManualTransaction(c.Request.Context(), ledger.AddManualTransactionInput{
		Date:        date,
		Type:        req.Type,
		Description: req.Description,
		Amount:      req.Amount,
		SourceType:  domain.SourceType(req.SourceType),
		SourceID:    sourceID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	h.Logger.Info("manual transaction added",
		zap.String("id", tx.ID.String()),
		zap.String("type", tx.Type),
		zap.String("amount", tx.Amount.String()))
	Ok(c, tx)
}

func (h *TransactionHandler) list(c *gin.Context) {
	Ok(c, h.Ledger.State().ManualTransactions)
}

func (h *TransactionHandler) ledger(c *gin.Context) {
	if raw := c.Query("recent"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			Error(c, http.StatusBadRequest, "invalid recent count")
			return
		}
		Ok(c, h.Dashboard.RecentActivity(n))
		return
	}
	Ok(c, h.Ledger.State().Transactions)
}
