package http

import (
	"oalass-backend/internal/domain/workflow"
	"oalass-backend/internal/usecase/travel"

	"github.com/labstack/echo/v4"
)

type TravelHandler struct{ uc *travel.Usecase }

func NewTravelHandler(uc *travel.Usecase) *TravelHandler { return &TravelHandler{uc: uc} }

type submitTravelReq struct {
	Destination string  `json:"destination"  validate:"required,max=191"`
	Purpose     string  `json:"purpose"      validate:"required,max=1000"`
	StartDate   string  `json:"start_date"   validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date"     validate:"required,datetime=2006-01-02"`
	CashAdvance float64 `json:"cash_advance" validate:"gte=0,dec2"`
}

func (h *TravelHandler) Submit(c echo.Context) error {
	var req submitTravelReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Submit(c.Request().Context(), actor(c), travel.SubmitInput{
		Destination: req.Destination,
		Purpose:     req.Purpose,
		StartDate:   date(req.StartDate),
		EndDate:     date(req.EndDate),
		CashAdvance: req.CashAdvance,
	})
	return created(c, dto, err)
}

func (h *TravelHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), actor(c), c.Param("order_id"))
	return respond(c, dto, err)
}

func (h *TravelHandler) Cancel(c echo.Context) error {
	dto, err := h.uc.Cancel(c.Request().Context(), actor(c), c.Param("order_id"))
	return respond(c, dto, err)
}

func (h *TravelHandler) Review(c echo.Context) error {
	var req reviewReq
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Review(c.Request().Context(), actor(c), c.Param("order_id"), travel.ReviewInput{
		Stage:    workflow.Stage(req.Stage),
		Decision: workflow.Decision(req.Decision),
		Remarks:  req.Remarks,
	})
	return respond(c, dto, err)
}

func (h *TravelHandler) Mine(c echo.Context) error {
	q, err := bindWorkflowQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.ListMine(c.Request().Context(), actor(c), travelList(q))
	return respond(c, out, err)
}

func (h *TravelHandler) Queue(c echo.Context) error {
	q, err := bindWorkflowQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.Queue(c.Request().Context(), actor(c), travelList(q))
	return respond(c, out, err)
}

func (h *TravelHandler) List(c echo.Context) error {
	q, err := bindWorkflowQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	out, err := h.uc.ListAll(c.Request().Context(), travelList(q))
	return respond(c, out, err)
}

func travelList(q workflowQuery) travel.ListInput {
	return travel.ListInput{
		Status:       workflow.Status(q.Status),
		UserID:       q.UserID,
		DepartmentID: q.DepartmentID,
		Stage:        workflow.Stage(q.Stage),
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
}
