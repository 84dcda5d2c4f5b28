package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(isProduction bool) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(isProduction, nil))
	return r
}

func perform(r http.Handler, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type stubValidator struct {
	claims *models.JWTClaims
	token  string
}

func (s stubValidator) ValidateToken(ctx context.Context, token string) (*models.JWTClaims, error) {
	if token != s.token {
		return nil, appErrors.ErrUnauthorized
	}
	return s.claims, nil
}
