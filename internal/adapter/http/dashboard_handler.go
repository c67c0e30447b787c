package http

import (
	"oalass-backend/internal/usecase/dashboard"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct{ uc *dashboard.Usecase }

func NewDashboardHandler(uc *dashboard.Usecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	out, err := h.uc.Summary(c.Request().Context(), actor(c))
	return respond(c, out, err)
}
