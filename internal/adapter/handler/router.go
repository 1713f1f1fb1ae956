package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/poolledger-backend/internal/usecase/dashboard"
	"github.com/simaogato/poolledger-backend/internal/usecase/ledger"
)

// NewRouter builds the gin engine with all routes bound
func NewRouter(ledgerSvc *ledger.Service, dashboardSvc *dashboard.Service, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers := []interface{ Register(*gin.Engine) }{
		&PoolHandler{Ledger: ledgerSvc, Logger: logger},
		&InvestmentHandler{Ledger: ledgerSvc, Dashboard: dashboardSvc, Logger: logger},
		&ReturnHandler{Ledger: ledgerSvc, Logger: logger},
		&TransactionHandler{Ledger: ledgerSvc, Dashboard: dashboardSvc, Logger: logger},
		&DashboardHandler{Dashboard: dashboardSvc},
	}
	for _, h := range handlers {
		h.Register(r)
	}
	return r
}
