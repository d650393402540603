package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/company-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/company-tracker-api/internal/errors"
	"github.com/yukikurage/company-tracker-api/internal/services"
	"go.uber.org/zap"
)

type stubVerifier struct {
	claims *services.Claims
	err    error
	kinds  []services.TokenKind
}

func (v *stubVerifier) Verify(_ string, kind services.TokenKind) (*services.Claims, error) {
	v.kinds = append(v.kinds, kind)
	return v.claims, v.err
}

type stubMembers struct {
	err error
}

func (m *stubMembers) EnsureMember(uint64, uint64) error {
	return m.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func codeOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Code
}

func authRouter(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/", handler, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return r
}

func TestRequireAuth_CredentialErrors(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
		code   string
	}{
		{name: "missing header", header: "", code: apierrors.ErrCodeMissingCredential},
		{name: "wrong scheme", header: "Basic abc", code: apierrors.ErrCodeMalformedCredential},
		{name: "empty token", header: "Bearer   ", code: apierrors.ErrCodeMalformedCredential},
		{name: "invalid token", header: "Bearer abc", err: services.ErrInvalidToken, code: apierrors.ErrCodeInvalidCredential},
		{name: "wrong kind", header: "Bearer abc", err: services.ErrWrongTokenKind, code: apierrors.ErrCodeWrongTokenKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authRouter(RequireAuth(&stubVerifier{err: tt.err}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.code, codeOf(t, w))
		})
	}
}

func TestRequireToken_PassesKindAndStoresUser(t *testing.T) {
	verifier := &stubVerifier{claims: &services.Claims{UserID: 42}}

	for _, handler := range []gin.HandlerFunc{RequireAuth(verifier), RequireTemporaryToken(verifier)} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer token")
		w := httptest.NewRecorder()
		authRouter(handler).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":42}`, w.Body.String())
	}

	assert.Equal(t, []services.TokenKind{services.TokenSession, services.TokenTemporary}, verifier.kinds)
}

func TestGetUserID_Types(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  uint64
		ok    bool
	}{
		{name: "uint64", value: uint64(7), want: 7, ok: true},
		{name: "uint", value: uint(7), want: 7, ok: true},
		{name: "int", value: 7, want: 7, ok: true},
		{name: "negative int", value: -1, ok: false},
		{name: "string", value: "7", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Set(constants.ContextKeyUserID, tt.value)

			got, ok := GetUserID(c)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetUserID(c)
	assert.False(t, ok)
}

func TestRequireCompanyAccess(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{name: "member", path: "/companies/3", status: http.StatusOK},
		{name: "non member", path: "/companies/3", err: services.ErrNotCompanyMember, status: http.StatusForbidden},
		{name: "bad id", path: "/companies/abc", status: http.StatusBadRequest},
		{name: "storage failure", path: "/companies/3", err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/companies/:id",
				func(c *gin.Context) { c.Set(constants.ContextKeyUserID, uint64(1)) },
				RequireCompanyAccess(&stubMembers{err: tt.err}),
				func(c *gin.Context) {
					companyID, ok := GetCompanyID(c)
					require.True(t, ok)
					c.JSON(http.StatusOK, gin.H{"companyId": companyID})
				},
			)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"companyId":3}`, w.Body.String())
			}
		})
	}
}

func TestRequireWebhookSecret(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		sent       string
		status     int
	}{
		{name: "match", configured: "s3cret", sent: "s3cret", status: http.StatusOK},
		{name: "mismatch", configured: "s3cret", sent: "other", status: http.StatusUnauthorized},
		{name: "missing header", configured: "s3cret", status: http.StatusUnauthorized},
		{name: "unconfigured", configured: "", sent: "", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/webhook", RequireWebhookSecret(tt.configured), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
			if tt.sent != "" {
				req.Header.Set(constants.TelegramSecretHeader, tt.sent)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, apierrors.ErrCodeSecretMismatch, codeOf(t, w))
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(constants.RequestIDHeader))
	assert.Equal(t, "req-123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(constants.RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())
}
