package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/marks"
)

type marksApi struct {
	svc *marks.Service
}

func registerMarksAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *marks.Service) {
	api := marksApi{svc: svc}

	mg := g.Group("/marks", jwt, teacherMiddleware())
	mg.POST("", api.save)
	mg.GET("/recent", api.recent)
	mg.GET("/students/:id", api.queryByStudent)
	mg.GET("/sample-csv", api.sampleCSV)
	mg.POST("/import", api.importCSV)
}

// save records a single mark; an existing mark for the same
// (student, class, board, exam type, subject) has its score overwritten.
func (api *marksApi) save(ctx echo.Context) error {
	var data marks.NewMark
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMark")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	m, err := api.svc.Save(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *marksApi) recent(ctx echo.Context) error {
	limit := intQueryParam(ctx, "limit", 10)
	mks, err := api.svc.Recent(ctx.Request().Context(), limit)
	if err != nil {
		return errors.Wrap(err, "querying recent marks")
	}
	if mks == nil {
		mks = []marks.Mark{}
	}
	return ctx.JSON(http.StatusOK, mks)
}

func (api *marksApi) queryByStudent(ctx echo.Context) error {
	mks, err := api.svc.QueryByStudent(ctx.Request().Context(), ctx.Param("id"), intQueryParam(ctx, "limit", 0))
	if err != nil {
		return errors.Wrap(err, "querying marks by student")
	}
	if mks == nil {
		mks = []marks.Mark{}
	}
	return ctx.JSON(http.StatusOK, mks)
}

// importCSV ingests a bulk marks upload. The class/board/exam/subject
// selection rides along as form fields and applies to every row. A
// missing column aborts the whole file; a bad row only lands in the
// ledger.
func (api *marksApi) importCSV(ctx echo.Context) error {
	sel := marks.Selection{
		ClassID:   ctx.FormValue("class_id"),
		Board:     ctx.FormValue("board"),
		ExamType:  ctx.FormValue("exam_type"),
		SubjectID: ctx.FormValue("subject_id"),
	}
	if err := sel.Validate(); err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "a csv file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer f.Close()

	res, err := api.svc.ImportCSV(ctx.Request().Context(), f, sel)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *marksApi) sampleCSV(ctx echo.Context) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=marks_sample.csv`)
	return ctx.Blob(http.StatusOK, "text/csv", []byte(marks.SampleCSV()))
}
