package controllers

import (
	"log/slog"
	"net/http"

	h "churchconnect/internal/delivery/http/helpers"
	"churchconnect/internal/domain"
)

type DashboardController struct {
	Logger  *slog.Logger
	Service domain.DashboardService
}

func NewDashboardController(logger *slog.Logger, svc domain.DashboardService) *DashboardController {
	return &DashboardController{Logger: logger, Service: svc}
}

// Stats godoc
// @Summary Dashboard statistics
// @Description Live counts of sermons, events, upcoming events, topics and admins.
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Router /dashboard/stats [get]
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Stats(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

// Activity godoc
// @Summary Dashboard activity
// @Description The ten latest sermon and event changes and the number of changes per day over the last seven days.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.DashboardActivity
// @Failure 401 {object} helpers.APIError
// @Router /dashboard/activity [get]
func (c *DashboardController) Activity(w http.ResponseWriter, r *http.Request) {
	activity, err := c.Service.Activity(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, activity)
}
