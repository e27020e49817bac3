package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/gradetracker/backend/core/grade"
)

func Test_appHTTPErrorHandler_gradeErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "grade not found",
			err:      errors.Wrap(grade.ErrNotFound, "getting grade"),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"not found"}`,
		},
		{
			name:     "no semester for date",
			err:      errors.Wrap(grade.ErrNoSemester, "creating grade"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"semester":"no semester covers this date"}`,
		},
		{
			name:     "http error",
			err:      echo.NewHTTPError(http.StatusConflict, "conflict"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"conflict"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handle := newAppHTTPErrorHandler(nil, nil, func() {})
			rec := httptest.NewRecorder()
			ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/grades/1", nil), rec)

			handle(tt.err, ctx)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
