package http

import (
	"net/http"

	"oalass-backend/internal/usecase/catalog"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct{ uc *catalog.Usecase }

func NewCatalogHandler(uc *catalog.Usecase) *CatalogHandler { return &CatalogHandler{uc: uc} }

type entryReq struct {
	Code string `json:"code" validate:"required,max=32"`
	Name string `json:"name" validate:"required,max=191"`
}

func (h *CatalogHandler) Roles(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Roles())
}

func (h *CatalogHandler) Departments(c echo.Context) error {
	out, err := h.uc.Departments(c.Request().Context())
	return respond(c, out, err)
}

func (h *CatalogHandler) Statuses(c echo.Context) error {
	out, err := h.uc.Statuses(c.Request().Context())
	return respond(c, out, err)
}

func (h *CatalogHandler) LeaveTypes(c echo.Context) error {
	out, err := h.uc.LeaveTypes(c.Request().Context())
	return respond(c, out, err)
}

func (h *CatalogHandler) CreateDepartment(c echo.Context) error {
	var req entryReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateDepartment(c.Request().Context(), catalog.Entry(req))
	return created(c, out, err)
}

func (h *CatalogHandler) CreateStatus(c echo.Context) error {
	var req entryReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateStatus(c.Request().Context(), catalog.Entry(req))
	return created(c, out, err)
}

func (h *CatalogHandler) CreateLeaveType(c echo.Context) error {
	var req entryReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateLeaveType(c.Request().Context(), catalog.Entry(req))
	return created(c, out, err)
}

func respond(c echo.Context, v any, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func created(c echo.Context, v any, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}
