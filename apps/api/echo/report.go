package echoapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/darasahq/darasa/core/report"
)

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *report.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports", jwt, teacherMiddleware())
	rg.GET("/attendance", api.attendance)
	rg.GET("/marks", api.marks)
	rg.GET("/:kind/download", api.download)
}

func (api *reportApi) attendance(ctx echo.Context) error {
	data, err := api.svc.Attendance(ctx.Request().Context(), ctx.QueryParam("period"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, data)
}

func (api *reportApi) marks(ctx echo.Context) error {
	data, err := api.svc.Marks(ctx.Request().Context(), ctx.QueryParam("period"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, data)
}

// download streams the report as a CSV attachment named after the kind,
// period and current date.
func (api *reportApi) download(ctx echo.Context) error {
	kind := ctx.Param("kind")
	period := ctx.QueryParam("period")

	var csv string
	switch kind {
	case report.KindAttendance:
		data, err := api.svc.Attendance(ctx.Request().Context(), period)
		if err != nil {
			return err
		}
		csv = data.CSV()
	case report.KindMarks:
		data, err := api.svc.Marks(ctx.Request().Context(), period)
		if err != nil {
			return err
		}
		csv = data.CSV()
	default:
		return report.ErrUnknownKind
	}

	filename := report.Filename(kind, period, time.Now())
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Blob(http.StatusOK, "text/csv", []byte(csv))
}
