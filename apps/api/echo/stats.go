package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradetracker/backend/core"
	"github.com/gradetracker/backend/core/grade"
	"github.com/gradetracker/backend/core/stats"
	"github.com/gradetracker/backend/core/user"
)

type statsApi struct {
	conf     *core.Config
	gradeSvc grade.Service
	userSvc  user.Service
}

func registerStatsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := statsApi{
		conf:     deps.Conf,
		gradeSvc: deps.GradeSvc,
		userSvc:  deps.UserSvc,
	}

	g.GET("/stats", api.summary, jwt)
	g.GET("/report-card", api.reportCard, jwt)
}

type ReportCardResponse struct {
	Semesters []grade.Semester  `json:"semesters"`
	Rows      []stats.ReportRow `json:"rows"`
}

func (api *statsApi) userGrades(ctx echo.Context) ([]grade.Grade, error) {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return nil, errors.Wrap(err, "getting context user")
	}
	grades, err := api.gradeSvc.QueryAll(ctx.Request().Context(), usr.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	return grades, nil
}

func (api *statsApi) summary(ctx echo.Context) error {
	grades, err := api.userGrades(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, stats.Summarize(grades))
}

// reportCard lays out the user's grades over the configured semesters, or the `semester` query params when given.
func (api *statsApi) reportCard(ctx echo.Context) error {
	grades, err := api.userGrades(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, 0)
	for _, sem := range ctx.QueryParams()["semester"] {
		if sem = core.CleanString(sem); sem != "" && !core.StringInSlice(sem, ids) {
			ids = append(ids, sem)
		}
	}
	if len(ids) == 0 {
		ids = api.conf.Semesters
	}
	semesters := grade.Semesters(ids)

	return ctx.JSON(http.StatusOK, ReportCardResponse{
		Semesters: semesters,
		Rows:      stats.BuildReportMatrix(grades, semesters),
	})
}
