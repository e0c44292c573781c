package http

import (
	"net/http"

	"github.com/workforcehq/ems-backend-go/internal/domain/dashboard"
	"github.com/workforcehq/ems-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetAdminStats(w http.ResponseWriter, r *http.Request)
	GetMyStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *dashboardHandlerImpl) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetAdminStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dashboardHandlerImpl) GetMyStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetMyStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
