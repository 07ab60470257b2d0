package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/middleware"
	"Lee_Groups/internal/policy"
)

func testContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindReportsJSONFieldNames(t *testing.T) {
	c, w := testContext(`{"username":"alice"}`)
	var req LoginReq
	require.False(t, bind(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"invalid","errors":{"password":["required"]}}`, w.Body.String())
}

func TestRequireAuthBeforeBody(t *testing.T) {
	c, w := testContext(`{"name":"` + strings.Repeat("组", 51) + `"}`)
	assert.False(t, requireAuth(c))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"msg":"not_authenticated"}`, w.Body.String())

	c, w = testContext(`{}`)
	c.Set(middleware.ContextIdentityKey, policy.Identity{UserID: 7})
	assert.True(t, requireAuth(c))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBindMalformedBody(t *testing.T) {
	c, w := testContext(`{"username":`)
	var req LoginReq
	require.False(t, bind(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"msg":"invalid_params"}`, w.Body.String())
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", apperr.Validation("email", apperr.CodeDuplicateEmail), http.StatusBadRequest, `{"msg":"duplicate_email","errors":{"email":["duplicate_email"]}}`},
		{"authentication", apperr.Authentication(apperr.CodeNotAuthenticated), http.StatusUnauthorized, `{"msg":"not_authenticated"}`},
		{"authorization", apperr.Authorization("group", apperr.CodeNotGroupOwner), http.StatusForbidden, `{"msg":"not_group_owner","errors":{"group":["not_group_owner"]}}`},
		{"not found", apperr.NotFound(apperr.CodePostNotFound), http.StatusNotFound, `{"msg":"post_not_found"}`},
		{"internal", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, `{"msg":"internal_error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := testContext("")
			writeError(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestPathID(t *testing.T) {
	c, w := testContext("")
	c.Params = gin.Params{{Key: "id", Value: "0"}}
	_, ok := pathID(c, apperr.CodeGroupNotFound)
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, _ = testContext("")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := pathID(c, apperr.CodeGroupNotFound)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)
}
