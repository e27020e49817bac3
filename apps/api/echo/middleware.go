package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradetracker/backend/core/grade"
	"github.com/gradetracker/backend/core/user"
)

var contextObjectKey = "object"

// ctxGradeMiddleware loads the grade identified by the `:id` path param into the context.
// Grades of other users are reported as not found.
func ctxGradeMiddleware(gradeSvc grade.Service, userSvc user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := strconv.Atoi(ctx.Param("id"))
			if err != nil {
				return errHttpNotFound
			}

			usr, err := getContextUser(ctx, userSvc)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}

			g, err := gradeSvc.Get(ctx.Request().Context(), usr.ID, id)
			if err != nil {
				if errors.Cause(err) == grade.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "getting grade")
			}
			ctx.Set(contextObjectKey, g)
			return next(ctx)
		}
	}
}

func getContextGrade(ctx echo.Context) (grade.Grade, error) {
	if g, ok := ctx.Get(contextObjectKey).(grade.Grade); ok {
		return g, nil
	}
	return grade.Grade{}, errHttpNotFound
}
