package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasahq/darasa/core/dashboard"
	"github.com/darasahq/darasa/core/student"
)

type dashboardApi struct {
	svc    *dashboard.Service
	stdSvc *student.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *dashboard.Service, stdSvc *student.Service) {
	api := dashboardApi{svc: svc, stdSvc: stdSvc}

	dg := g.Group("/dashboard", jwt)
	dg.GET("/teacher", api.teacher, teacherMiddleware())
	dg.GET("/student", api.student, studentMiddleware())
}

func (api *dashboardApi) teacher(ctx echo.Context) error {
	data, err := api.svc.Teacher(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, data)
}

func (api *dashboardApi) student(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	st, err := api.stdSvc.GetByUserID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}

	data, err := api.svc.Student(ctx.Request().Context(), st.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, data)
}
