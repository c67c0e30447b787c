package http

import (
	"errors"
	"net/http"

	"oalass-backend/internal/domain/catalog"
	"oalass-backend/internal/domain/leave"
	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/probation"
	"oalass-backend/internal/domain/travel"
	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/internal/usecase/auth"
	"oalass-backend/pkg/businessday"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var errBadBody = errors.New("invalid body")

type validationError struct{ err error }

func (v validationError) Error() string { return "validation failed" }

var statusBySentinel = []struct {
	code int
	errs []error
}{
	{http.StatusNotFound, []error{
		user.ErrNotFound,
		catalog.ErrDepartmentNotFound, catalog.ErrStatusNotFound, catalog.ErrLeaveTypeNotFound,
		period.ErrNotFound,
		leave.ErrNotFound, leave.ErrLimitNotFound, leave.ErrBalanceNotFound,
		travel.ErrNotFound,
		probation.ErrNotFound,
	}},
	{http.StatusConflict, []error{
		workflow.ErrInvalidTransition, workflow.ErrNotCancellable,
		user.ErrEmailTaken, catalog.ErrCodeTaken, period.ErrDuplicate,
		leave.ErrOverlap,
		probation.ErrAlreadyActive, probation.ErrNotActive,
	}},
	{http.StatusUnprocessableEntity, []error{
		leave.ErrInsufficientBalance, leave.ErrNoLeaveLimit, leave.ErrNoBusinessDays, leave.ErrInvalidLimit,
		businessday.ErrInvalidRange, workflow.ErrUnknownDecision,
		period.ErrInvalidYear, period.ErrInvalidTerm, period.ErrOutsidePeriod, period.ErrNoCurrent,
		travel.ErrInvalidAmount,
		probation.ErrInvalidEnd, probation.ErrInvalidRange, probation.ErrInvalidStatus,
		user.ErrInvalidRole, user.ErrInvalidPassword,
	}},
	{http.StatusForbidden, []error{user.ErrForbidden, user.ErrInactive, workflow.ErrSelfReview}},
	{http.StatusUnauthorized, []error{auth.ErrInvalidCredentials, auth.ErrUnauthenticated}},
}

// statusFor maps a usecase error to its HTTP status; unknown errors are 500.
func statusFor(err error) int {
	for _, group := range statusBySentinel {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.code
			}
		}
	}
	return http.StatusInternalServerError
}

// writeError renders err as an ErrorResponse. It always returns nil so
// handlers can `return writeError(c, err)`.
func writeError(c echo.Context, err error) error {
	var ve validationError
	switch {
	case errors.Is(err, errBadBody):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: errBadBody.Error()})
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: ve.Error(), Details: ToFieldErrors(ve.err)})
	}

	code := statusFor(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

// bind decodes and validates the request into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errBadBody
	}
	if err := c.Validate(req); err != nil {
		return validationError{err: err}
	}
	return nil
}
