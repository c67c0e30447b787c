package http

import (
	"net/http"

	"oalass-backend/internal/domain/period"
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/internal/usecase/leave"

	"github.com/labstack/echo/v4"
)

type LeaveHandler struct{ uc *leave.Usecase }

func NewLeaveHandler(uc *leave.Usecase) *LeaveHandler { return &LeaveHandler{uc: uc} }

// ---- limits ----

type upsertLimitReq struct {
	StatusID    uint64 `json:"status_id"     validate:"required"`
	Term        string `json:"term"          validate:"required,oneof=FIRST SECOND SUMMER"`
	LeaveTypeID uint64 `json:"leave_type_id" validate:"required"`
	AllowedDays int    `json:"allowed_days"  validate:"gt=0,lte=366"`
}

func (h *LeaveHandler) UpsertLimit(c echo.Context) error {
	var req upsertLimitReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	l, err := h.uc.UpsertLimit(c.Request().Context(), leave.LimitInput{
		StatusID:    req.StatusID,
		Term:        period.Term(req.Term),
		LeaveTypeID: req.LeaveTypeID,
		AllowedDays: req.AllowedDays,
	})
	return respond(c, l, err)
}

func (h *LeaveHandler) Limits(c echo.Context) error {
	out, err := h.uc.Limits(c.Request().Context())
	return respond(c, out, err)
}

func (h *LeaveHandler) DeleteLimit(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.uc.DeleteLimit(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- balances ----

func periodQuery(c echo.Context) (uint64, error) {
	var id uint64
	err := echo.QueryParamsBinder(c).Uint64("period", &id).BindError()
	return id, err
}

func (h *LeaveHandler) MyBalances(c echo.Context) error {
	periodID, err := periodQuery(c)
	if err != nil {
		return badRequest(c, "invalid period")
	}
	out, err := h.uc.Balances(c.Request().Context(), actor(c), "", periodID)
	return respond(c, out, err)
}

func (h *LeaveHandler) UserBalances(c echo.Context) error {
	periodID, err := periodQuery(c)
	if err != nil {
		return badRequest(c, "invalid period")
	}
	out, err := h.uc.Balances(c.Request().Context(), actor(c), c.Param("user_id"), periodID)
	return respond(c, out, err)
}

func (h *LeaveHandler) Recompute(c echo.Context) error {
	periodID, err := periodQuery(c)
	if err != nil {
		return badRequest(c, "invalid period")
	}
	out, err := h.uc.Recompute(c.Request().Context(), c.Param("user_id"), periodID)
	return respond(c, out, err)
}

// ---- applications ----

type submitLeaveReq struct {
	LeaveTypeID uint64 `json:"leave_type_id" validate:"required"`
	PeriodID    uint64 `json:"period_id"`
	StartDate   string `json:"start_date"    validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date"      validate:"required,datetime=2006-01-02"`
	Reason      string `json:"reason"        validate:"required,max=1000"`
}

func (h *LeaveHandler) Submit(c echo.Context) error {
	var req submitLeaveReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Submit(c.Request().Context(), actor(c), leave.SubmitInput{
		LeaveTypeID: req.LeaveTypeID,
		PeriodID:    req.PeriodID,
		StartDate:   date(req.StartDate),
		EndDate:     date(req.EndDate),
		Reason:      req.Reason,
	})
	return created(c, dto, err)
}

func (h *LeaveHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), actor(c), c.Param("application_id"))
	return respond(c, dto, err)
}

func (h *LeaveHandler) Cancel(c echo.Context) error {
	dto, err := h.uc.Cancel(c.Request().Context(), actor(c), c.Param("application_id"))
	return respond(c, dto, err)
}

type reviewReq struct {
	Stage    string `json:"stage"    validate:"omitempty,oneof=DEAN FINANCE"`
	Decision string `json:"decision" validate:"required,oneof=APPROVE REJECT"`
	Remarks  string `json:"remarks"  validate:"max=1000"`
}

func (h *LeaveHandler) Review(c echo.Context) error {
	var req reviewReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Review(c.Request().Context(), actor(c), c.Param("application_id"), leave.ReviewInput{
		Stage:    workflow.Stage(req.Stage),
		Decision: workflow.Decision(req.Decision),
		Remarks:  req.Remarks,
	})
	return respond(c, dto, err)
}

func (h *LeaveHandler) Mine(c echo.Context) error {
	q, err := bindWorkflowQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.ListMine(c.Request().Context(), actor(c), leaveList(q))
	return respond(c, out, err)
}

func (h *LeaveHandler) Queue(c echo.Context) error {
	q, err := bindWorkflowQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.Queue(c.Request().Context(), actor(c), leaveList(q))
	return respond(c, out, err)
}

func (h *LeaveHandler) List(c echo.Context) error {
	q, err := bindWorkflowQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.ListAll(c.Request().Context(), leaveList(q))
	return respond(c, out, err)
}

func leaveList(q workflowQuery) leave.ListInput {
	return leave.ListInput{
		Status:       workflow.Status(q.Status),
		PeriodID:     q.PeriodID,
		UserID:       q.UserID,
		DepartmentID: q.DepartmentID,
		Stage:        workflow.Stage(q.Stage),
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
}
