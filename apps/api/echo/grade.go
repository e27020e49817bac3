package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradetracker/backend/core"
	"github.com/gradetracker/backend/core/grade"
	"github.com/gradetracker/backend/core/user"
)

type gradeApi struct {
	conf     *core.Config
	svc      grade.Service
	userSvc  user.Service
	validate *validator.Validate
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := gradeApi{
		conf:     deps.Conf,
		svc:      deps.GradeSvc,
		userSvc:  deps.UserSvc,
		validate: deps.Validate,
	}
	ctxGrade := ctxGradeMiddleware(deps.GradeSvc, deps.UserSvc)

	gg := g.Group("/grades", jwt)
	gg.GET("", api.list)
	gg.POST("", api.create)
	gg.GET("/:id", api.retrieve, ctxGrade)
	gg.PUT("/:id", api.update, ctxGrade)
	gg.DELETE("/:id", api.destroy, ctxGrade)
	gg.GET("/:id/attachment", api.attachment, ctxGrade)
}

// Handlers

func (api *gradeApi) list(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	filter := new(grade.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()

	var ordering Ordering
	ordering.Bind(ctx, grade.OrderingFields...)

	grades, err := api.svc.Query(ctx.Request().Context(), usr.ID, *filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Create(ctx.Request().Context(), usr.ID, data, usr.Preferences.Semesters)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	g, err := getContextGrade(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) update(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	g, err := getContextGrade(ctx)
	if err != nil {
		return err
	}

	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err = api.svc.Update(ctx.Request().Context(), usr.ID, g.ID, data, usr.Preferences.Semesters)
	if err != nil {
		if errors.Cause(err) == grade.ErrNotFound { // deleted concurrently
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	g, err := getContextGrade(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), usr.ID, g.ID); err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// attachment serves the decoded attachment file inline.
func (api *gradeApi) attachment(ctx echo.Context) error {
	g, err := getContextGrade(ctx)
	if err != nil {
		return err
	}
	att := g.Attachment
	if att == nil {
		return errHttpNotFound
	}

	if att.FileName != "" {
		ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", att.FileName))
	} else {
		ctx.Response().Header().Set(echo.HeaderContentDisposition, "inline")
	}
	return ctx.Blob(http.StatusOK, att.ContentType(), att.Content)
}
