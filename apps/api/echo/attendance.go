package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/attendance"
	"github.com/darasahq/darasa/core/report"
	"github.com/darasahq/darasa/core/student"
)

type attendanceApi struct {
	svc    *attendance.Service
	stdSvc *student.Service
}

// StudentAttendanceResponse is the student-facing attendance history:
// day-level presence (2-of-3 slots) plus the raw records of the window.
type StudentAttendanceResponse struct {
	Range   string                `json:"range"`
	Summary attendance.DaySummary `json:"summary"`
	Records []attendance.Record   `json:"records"`
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *attendance.Service, stdSvc *student.Service) {
	api := attendanceApi{svc: svc, stdSvc: stdSvc}

	ag := g.Group("/attendance", jwt)
	ag.POST("", api.mark, teacherMiddleware())
	ag.GET("/recent", api.recent, teacherMiddleware())
	ag.GET("/students/:id", api.queryByStudent, teacherMiddleware())
	ag.GET("/me", api.self, studentMiddleware())
}

// mark records a day's attendance for a batch of students in one call.
func (api *attendanceApi) mark(ctx echo.Context) error {
	var entries []attendance.Entry
	if err := ctx.Bind(&entries); err != nil {
		return errors.Wrap(err, "binding to attendance entries")
	}
	if err := api.svc.Mark(ctx.Request().Context(), entries); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "attendance recorded"})
}

func (api *attendanceApi) recent(ctx echo.Context) error {
	limit := intQueryParam(ctx, "limit", 10)
	records, err := api.svc.Recent(ctx.Request().Context(), limit)
	if err != nil {
		return errors.Wrap(err, "querying recent attendance")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) queryByStudent(ctx echo.Context) error {
	if _, err := api.stdSvc.GetByID(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}

	window := rangeWindow(ctx.QueryParam("range"))
	records, err := api.svc.QueryByStudent(ctx.Request().Context(), ctx.Param("id"), window, 0)
	if err != nil {
		return errors.Wrap(err, "querying attendance by student")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

// self serves the logged-in student their own history. The account is
// resolved to a registry entry first; accounts without one get a 404.
func (api *attendanceApi) self(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	st, err := api.stdSvc.GetByUserID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}

	rng := ctx.QueryParam("range")
	window := rangeWindow(rng)
	records, err := api.svc.QueryByStudent(ctx.Request().Context(), st.ID, window, 0)
	if err != nil {
		return errors.Wrap(err, "querying own attendance")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, StudentAttendanceResponse{
		Range:   rng,
		Summary: attendance.DaySummarize(records),
		Records: records,
	})
}

// rangeWindow maps the optional ?range= param to a date window;
// anything other than weekly/monthly/yearly means no filtering.
func rangeWindow(rng string) *core.DateWindow {
	switch rng {
	case report.PeriodWeekly, report.PeriodMonthly, report.PeriodYearly:
		window := report.ResolveWindow(rng, time.Now())
		return &window
	}
	return nil
}

func intQueryParam(ctx echo.Context, name string, fallback int) int {
	var n int
	if err := echo.QueryParamsBinder(ctx).Int(name, &n).BindError(); err != nil || n <= 0 {
		return fallback
	}
	return n
}
