package http

import (
	"net/http"

	"oalass-backend/internal/usecase/account"
	"oalass-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	auth     *auth.Usecase
	accounts *account.Usecase
}

func NewAuthHandler(a *auth.Usecase, accounts *account.Usecase) *AuthHandler {
	return &AuthHandler{auth: a, accounts: accounts}
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	dto, err := h.auth.Login(c.Request().Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, actor(c))
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.accounts.ChangePassword(c.Request().Context(), actor(c), req.CurrentPassword, req.NewPassword); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
