package http

import (
	"oalass-backend/internal/domain/period"
	periodUC "oalass-backend/internal/usecase/period"

	"github.com/labstack/echo/v4"
)

type PeriodHandler struct{ uc *periodUC.Usecase }

func NewPeriodHandler(uc *periodUC.Usecase) *PeriodHandler { return &PeriodHandler{uc: uc} }

type createPeriodReq struct {
	AcademicYear string `json:"academic_year" validate:"required"`
	Term         string `json:"term"          validate:"required,oneof=FIRST SECOND SUMMER"`
	StartDate    string `json:"start_date"    validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date"      validate:"required,datetime=2006-01-02"`
	Current      bool   `json:"current"`
}

func (h *PeriodHandler) Create(c echo.Context) error {
	var req createPeriodReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	p, err := h.uc.Create(c.Request().Context(), periodUC.CreateInput{
		AcademicYear: req.AcademicYear,
		Term:         period.Term(req.Term),
		StartDate:    date(req.StartDate),
		EndDate:      date(req.EndDate),
		MakeCurrent:  req.Current,
	})
	return created(c, p, err)
}

func (h *PeriodHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	return respond(c, out, err)
}

func (h *PeriodHandler) Current(c echo.Context) error {
	p, err := h.uc.Current(c.Request().Context())
	return respond(c, p, err)
}

func (h *PeriodHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	p, err := h.uc.Get(c.Request().Context(), id)
	return respond(c, p, err)
}

func (h *PeriodHandler) SetCurrent(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	p, err := h.uc.SetCurrent(c.Request().Context(), id)
	return respond(c, p, err)
}
