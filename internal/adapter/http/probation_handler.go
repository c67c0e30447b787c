package http

import (
	"context"
	"net/http"

	"oalass-backend/internal/domain/probation"
	probationUC "oalass-backend/internal/usecase/probation"

	"github.com/labstack/echo/v4"
)

type ProbationHandler struct{ uc *probationUC.Usecase }

func NewProbationHandler(uc *probationUC.Usecase) *ProbationHandler {
	return &ProbationHandler{uc: uc}
}

type startProbationReq struct {
	UserID    string `json:"user_id"    validate:"required,hex32"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Remarks   string `json:"remarks"    validate:"max=1000"`
}

func (h *ProbationHandler) Start(c echo.Context) error {
	var req startProbationReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Start(c.Request().Context(), probationUC.StartInput{
		UserID:    req.UserID,
		StartDate: date(req.StartDate),
		EndDate:   date(req.EndDate),
		Remarks:   req.Remarks,
	})
	return created(c, dto, err)
}

func (h *ProbationHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	return respond(c, dto, err)
}

func (h *ProbationHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), probation.Status(c.QueryParam("status")))
	return respond(c, out, err)
}

func dueDays(c echo.Context) (int, error) {
	days := probationUC.DefaultDueDays
	err := echo.QueryParamsBinder(c).Int("days", &days).BindError()
	if err == nil && days < 0 {
		err = echo.ErrBadRequest
	}
	return days, err
}

func (h *ProbationHandler) Due(c echo.Context) error {
	days, err := dueDays(c)
	if err != nil {
		return badRequest(c, "invalid days")
	}
	out, err := h.uc.Due(c.Request().Context(), days)
	return respond(c, out, err)
}

func (h *ProbationHandler) NotifyDue(c echo.Context) error {
	days, err := dueDays(c)
	if err != nil {
		return badRequest(c, "invalid days")
	}
	n, err := h.uc.NotifyDue(c.Request().Context(), days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"notified": n})
}

type extendProbationReq struct {
	EndDate string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Remarks string `json:"remarks"  validate:"max=1000"`
}

func (h *ProbationHandler) Extend(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req extendProbationReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Extend(c.Request().Context(), id, probationUC.ExtendInput{EndDate: date(req.EndDate), Remarks: req.Remarks})
	return respond(c, dto, err)
}

type remarksReq struct {
	Remarks string `json:"remarks" validate:"max=1000"`
}

func (h *ProbationHandler) Complete(c echo.Context) error {
	return h.close(c, h.uc.Complete)
}

func (h *ProbationHandler) Terminate(c echo.Context) error {
	return h.close(c, h.uc.Terminate)
}

func (h *ProbationHandler) close(c echo.Context, fn func(ctx context.Context, id uint64, remarks string) (*probationUC.ProbationDTO, error)) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req remarksReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	dto, err := fn(c.Request().Context(), id, req.Remarks)
	return respond(c, dto, err)
}
