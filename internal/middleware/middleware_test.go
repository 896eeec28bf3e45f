package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/medifind/internal/httperr"
	"github.com/BruksfildServices01/medifind/internal/identity"
	"github.com/BruksfildServices01/medifind/internal/metrics"
	"github.com/BruksfildServices01/medifind/internal/models"
	"github.com/BruksfildServices01/medifind/internal/token"
)

type users map[uint]*models.User

func (u users) GetByID(_ context.Context, id uint) (*models.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, httperr.ErrNotFound("user_not_found", "User not found")
}

type server struct {
	engine  *gin.Engine
	issuer  *token.Issuer
	metrics *metrics.Metrics
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &server{
		engine:  gin.New(),
		issuer:  token.NewIssuer("secret", time.Hour),
		metrics: metrics.New("test"),
	}
	store := users{
		1: {ID: 1, Name: "Asha", Email: "asha@example.com", PasswordHash: "hash", Role: models.RolePharmacyAdmin},
		2: {ID: 2, Name: "Ravi", Email: "ravi@example.com", PasswordHash: "hash", Role: models.RoleUser},
	}

	s.engine.Use(RequestIDMiddleware(), MetricsMiddleware(s.metrics))
	auth := s.engine.Group("/", AuthMiddleware(s.issuer, store, s.metrics))
	auth.GET("/whoami", func(c *gin.Context) {
		caller, ok := identity.FromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, caller)
	})
	auth.GET("/pharmacy-only", RequireRole(models.RolePharmacy), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return s
}

func (s *server) get(path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	s := newServer(t)

	w := s.get("/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing_authorization_header", errorCode(t, w))

	w = s.get("/whoami", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_authorization_header", errorCode(t, w))

	for _, scheme := range []string{"bearer", "BEARER"} {
		w = s.get("/whoami", scheme+" abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code, scheme)
		assert.Equal(t, "invalid_authorization_header", errorCode(t, w), scheme)
	}

	w = s.get("/whoami", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_token", errorCode(t, w))
}

func TestAuthRejectsForeignSignature(t *testing.T) {
	s := newServer(t)
	forged, err := token.NewIssuer("other-secret", time.Hour).Issue(1)
	require.NoError(t, err)

	w := s.get("/whoami", "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthUnknownUser(t *testing.T) {
	s := newServer(t)
	tok, err := s.issuer.Issue(99)
	require.NoError(t, err)

	w := s.get("/whoami", "Bearer "+tok)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user_not_found", errorCode(t, w))
}

func TestAuthAttachesCaller(t *testing.T) {
	s := newServer(t)
	tok, err := s.issuer.Issue(1)
	require.NoError(t, err)

	w := s.get("/whoami", "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")

	var caller identity.Caller
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &caller))
	assert.Equal(t, uint(1), caller.ID)
	assert.Equal(t, models.RolePharmacy, caller.Role)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestRequireRole(t *testing.T) {
	s := newServer(t)
	pharmacyTok, err := s.issuer.Issue(1)
	require.NoError(t, err)
	userTok, err := s.issuer.Issue(2)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, s.get("/pharmacy-only", "Bearer "+pharmacyTok).Code)

	w := s.get("/pharmacy-only", "Bearer "+userTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden_role", errorCode(t, w))
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDReusesClientValue(t *testing.T) {
	s := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.medifind.in"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.medifind.in")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.medifind.in", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsUseRoutePattern(t *testing.T) {
	s := newServer(t)
	s.get("/whoami", "")

	w := httptest.NewRecorder()
	s.metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `test_http_requests_total{method="GET",path="/whoami",status="401"} 1`)
	assert.Contains(t, body, `test_auth_failures_total{reason="missing_authorization_header"} 1`)
}
