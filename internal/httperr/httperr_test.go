package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrValidation("invalid_request", "bad"), http.StatusBadRequest, "invalid_request"},
		{ErrAuth("invalid_token", "bad token"), http.StatusUnauthorized, "invalid_token"},
		{ErrForbidden("not_owner", "nope"), http.StatusForbidden, "not_owner"},
		{ErrNotFound("medicine_not_found", "missing"), http.StatusNotFound, "medicine_not_found"},
		{ErrUnavailable("image_storage_disabled", "off"), http.StatusServiceUnavailable, "image_storage_disabled"},
	}

	for _, tc := range cases {
		w, body := respond(t, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.code)
		assert.Equal(t, tc.code, body.Code)
		assert.NotEmpty(t, body.Message)
	}
}

func TestRespondHidesInternalCause(t *testing.T) {
	w, body := respond(t, ErrInternal("failed_to_get_pharmacy", errors.New("connection refused")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed_to_get_pharmacy", body.Code)
	assert.NotContains(t, body.Message, "connection refused")
}

func TestRespondUnknownError(t *testing.T) {
	w, body := respond(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", body.Code)
}

func TestIsAndKindOfSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("resolve: %w", ErrNotFound("pharmacy_not_found", "Pharmacy not found"))

	assert.True(t, Is(err, "pharmacy_not_found"))
	assert.False(t, Is(err, "medicine_not_found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
