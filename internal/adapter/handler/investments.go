package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/poolledger-backend/internal/domain"
	"github.com/simaogato/poolledger-backend/internal/usecase/dashboard"
	"github.com/simaogato/poolledger-backend/internal/usecase/ledger"
)

// InvestmentHandler exposes investment creation, listing and closing
type InvestmentHandler struct {
	Ledger    *ledger.Service
	Dashboard *dashboard.Service
	Logger    *zap.Logger
}

// Register binds the investment routes
func (h *InvestmentHandler) Register(r *gin.Engine) {
	api := r.Group("/api/investments")
	api.POST("", h.add)
	api.GET("", h.list)
	api.POST("/:id/close", h.close)
	api.GET("/:id/returns", h.returns)
}

type addInvestmentRequest struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Notes  string          `json:"notes"`
}

func (h *InvestmentHandler) add(c *gin.Context) {
	var req addInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		Error(c, http.StatusBadRequest, "invalid date")
		return
	}

	inv, err := h.Ledger.AddInvestment(c.Request.Context(), ledger.AddInvestmentInput{
		Date:   date,
		Amount: req.Amount,
		Notes:  req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	h.Logger.Info("investment added",
		zap.String("id", inv.ID.String()),
		zap.String("amount", inv.Amount.String()))
	Ok(c, inv)
}

func (h *InvestmentHandler) list(c *gin.Context) {
	status := domain.InvestmentStatus(c.Query("status"))
	if status != "" && status != domain.InvestmentStatusActive && status != domain.InvestmentStatusClosed {
		Error(c, http.StatusBadRequest, "invalid status filter")
		return
	}
	Ok(c, h.Dashboard.InvestmentsByStatus(status))
}

func (h *InvestmentHandler) close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid investment id")
		return
	}

	inv, err := h.Ledger.CloseInvestment(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if inv == nil {
		// Missing or already closed: a silent skip, reported as such
		Ok(c, gin.H{"closed": false})
		return
	}
	h.Logger.Info("investment closed", zap.String("id", inv.ID.String()))
	Ok(c, gin.H{"closed": true, "investment": inv})
}

func (h *InvestmentHandler) returns(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid investment id")
		return
	}
	Ok(c, h.Dashboard.ReturnsForInvestment(id))
}
