package http

import (
	"net/http"
	"strconv"

	"github.com/workforcehq/ems-backend-go/internal/domain/activity"
	"github.com/workforcehq/ems-backend-go/internal/handler/http/response"
)

type ActivityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type activityHandlerImpl struct {
	activityService activity.Service
}

func NewActivityHandler(activityService activity.Service) ActivityHandler {
	return &activityHandlerImpl{activityService: activityService}
}

func (h *activityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := activity.ListFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entity_type"),
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	result, err := h.activityService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if result.Limit > 0 {
		totalPages = int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	}
	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}
