package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/simaogato/poolledger-backend/internal/usecase/dashboard"
)

// DashboardHandler exposes the derived aggregates, alerts and chart series
type DashboardHandler struct {
	Dashboard *dashboard.Service
}

// Register binds the dashboard routes
func (h *DashboardHandler) Register(r *gin.Engine) {
	api := r.Group("/api/dashboard")
	api.GET("/summary", h.summary)
	api.GET("/alerts", h.alerts)
	api.GET("/charts", h.charts)
}

func (h *DashboardHandler) summary(c *gin.Context) {
	Ok(c, h.Dashboard.Summary())
}

func (h *DashboardHandler) alerts(c *gin.Context) {
	Ok(c, h.Dashboard.Alerts())
}

func (h *DashboardHandler) charts(c *gin.Context) {
	Ok(c, h.Dashboard.Charts())
}
