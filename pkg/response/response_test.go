package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cryptnote-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestError(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, "Test", apperror.Conflict("Email Already Exists"))
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Email Already Exists"}`, w.Body.String())
}

func TestError_Validation(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, "Test", apperror.Validation([]apperror.FieldError{{Field: "name", Msg: "Enter Valid Name", Value: "Al"}}))
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"errors":[{"field":"name","msg":"Enter Valid Name","value":"Al"}]}`, w.Body.String())
}

func TestError_InternalHidesDetail(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, "Test", apperror.Internal(errors.New("pq: connection refused")))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal Server Error"}`, w.Body.String())
}

func TestErrorWithStatus(t *testing.T) {
	w := serve(func(c *gin.Context) {
		ErrorWithStatus(c, "Test", apperror.NotFound("User not found"), http.StatusBadRequest)
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"User not found"}`, w.Body.String())
}
