package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
)

func TestErrorHandlerExposesCauseOutsideProduction(t *testing.T) {
	r := newEngine(false)
	r.GET("/boom", func(c *gin.Context) {
		response.Error(c, appErrors.Wrap(errors.New("connection refused"), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enquiries"))
	})

	w := perform(r, http.MethodGet, "/boom", nil, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "failed to list enquiries", env.Message)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	assert.Equal(t, "connection refused", env.Error.Cause)
}

func TestErrorHandlerHidesCauseInProduction(t *testing.T) {
	r := newEngine(true)
	r.GET("/boom", func(c *gin.Context) {
		response.Error(c, errors.New("raw failure"))
	})

	w := perform(r, http.MethodGet, "/boom", nil, nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.Equal(t, "internal server error", env.Message)
	assert.Nil(t, env.Error)
}

func TestErrorHandlerLeavesSuccessAlone(t *testing.T) {
	r := newEngine(false)
	r.GET("/ok", func(c *gin.Context) { response.OK(c, "fine", nil) })

	w := perform(r, http.MethodGet, "/ok", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
}

func TestNotFoundRoute(t *testing.T) {
	r := newEngine(false)
	r.NoRoute(NotFound())

	w := perform(r, http.MethodGet, "/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Not found - /missing", env.Message)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestRecoveryRendersInternalError(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(false, nil))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := perform(r, http.MethodGet, "/panic", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Internal server error", env.Message)
	assert.Equal(t, "panic: kaboom", env.Error.Cause)
}
