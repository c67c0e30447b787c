package http

import (
	"net/http"
	"strconv"

	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/usecase/account"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct{ uc *account.Usecase }

func NewAccountHandler(uc *account.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

type createAccountReq struct {
	Email        string `json:"email"         validate:"required,email,max=191"`
	FirstName    string `json:"first_name"    validate:"required,max=100"`
	LastName     string `json:"last_name"     validate:"required,max=100"`
	Role         string `json:"role"          validate:"required,oneof=TEACHER DEAN FINANCE ADMIN"`
	DepartmentID uint64 `json:"department_id"`
	StatusID     uint64 `json:"status_id"`
	Password     string `json:"password"      validate:"required,min=8,max=72"`
}

func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	usr, err := h.uc.Create(c.Request().Context(), account.CreateInput{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         user.Role(req.Role),
		DepartmentID: req.DepartmentID,
		StatusID:     req.StatusID,
		Password:     req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, usr)
}

func (h *AccountHandler) List(c echo.Context) error {
	var (
		in   account.ListInput
		role string
		page pageQuery
	)
	b := echo.QueryParamsBinder(c).String("role", &role).Uint64("department_id", &in.DepartmentID)
	if err := bindPage(b, &page).BindError(); err != nil {
		return badRequest(c, "invalid query")
	}
	if raw := c.QueryParam("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "invalid query")
		}
		in.Active = &active
	}
	in.Role, in.Limit, in.Offset = user.Role(role), page.Limit, page.Offset
	if in.Role != "" && !in.Role.Valid() {
		return writeError(c, user.ErrInvalidRole)
	}
	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AccountHandler) Get(c echo.Context) error {
	usr, err := h.uc.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, usr)
}

type updateAccountReq struct {
	FirstName    *string `json:"first_name"    validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"last_name"     validate:"omitempty,min=1,max=100"`
	Role         *string `json:"role"          validate:"omitempty,oneof=TEACHER DEAN FINANCE ADMIN"`
	DepartmentID *uint64 `json:"department_id"`
	StatusID     *uint64 `json:"status_id"`
}

func (h *AccountHandler) Update(c echo.Context) error {
	var req updateAccountReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	in := account.UpdateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DepartmentID: req.DepartmentID,
		StatusID:     req.StatusID,
	}
	if req.Role != nil {
		r := user.Role(*req.Role)
		in.Role = &r
	}
	usr, err := h.uc.Update(c.Request().Context(), c.Param("user_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, usr)
}

func (h *AccountHandler) Activate(c echo.Context) error   { return h.setActive(c, true) }
func (h *AccountHandler) Deactivate(c echo.Context) error { return h.setActive(c, false) }

func (h *AccountHandler) setActive(c echo.Context, active bool) error {
	usr, err := h.uc.SetActive(c.Request().Context(), actor(c), c.Param("user_id"), active)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, usr)
}

type resetPasswordReq struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (h *AccountHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.ResetPassword(c.Request().Context(), c.Param("user_id"), req.Password); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
