package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"oalass-backend/internal/adapter/middleware"
	"oalass-backend/internal/domain/user"
	"oalass-backend/internal/domain/workflow"

	"github.com/labstack/echo/v4"
)

var (
	errInvalidStatus = errors.New("unknown status")
	errInvalidStage  = errors.New("stage must be DEAN or FINANCE")
)

func actor(c echo.Context) *user.User { return middleware.Actor(c) }

// date parses a field already checked by the datetime validator.
func date(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func pathID(c echo.Context) (uint64, bool) {
	var id uint64
	err := echo.PathParamsBinder(c).MustUint64("id", &id).BindError()
	return id, err == nil
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// workflowQuery holds the filters shared by the leave and travel listings.
type workflowQuery struct {
	Status       string
	Stage        string
	UserID       string
	DepartmentID uint64
	PeriodID     uint64
	pageQuery
}

func bindWorkflowQuery(c echo.Context) (workflowQuery, error) {
	var q workflowQuery
	b := echo.QueryParamsBinder(c).
		String("status", &q.Status).
		String("stage", &q.Stage).
		String("user_id", &q.UserID).
		Uint64("department_id", &q.DepartmentID).
		Uint64("period", &q.PeriodID)
	if err := bindPage(b, &q.pageQuery).BindError(); err != nil {
		return q, err
	}
	if q.Status != "" && !workflow.Status(q.Status).Valid() {
		return q, errInvalidStatus
	}
	if q.Stage != "" && q.Stage != string(workflow.StageDean) && q.Stage != string(workflow.StageFinance) {
		return q, errInvalidStage
	}
	return q, nil
}

type pageQuery struct {
	Limit  int
	Offset int
}

func bindPage(b *echo.ValueBinder, p *pageQuery) *echo.ValueBinder {
	return b.Int("limit", &p.Limit).Int("offset", &p.Offset)
}

func badQuery(c echo.Context, err error) error {
	if errors.Is(err, errInvalidStatus) || errors.Is(err, errInvalidStage) {
		return badRequest(c, err.Error())
	}
	return badRequest(c, "invalid query")
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
