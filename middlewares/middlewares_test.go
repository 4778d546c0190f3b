package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ctfpractice/config"
	"ctfpractice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/who", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserID),
			"trusted": c.GetBool(CtxTrustedCaller),
		})
	})
	return r
}

func do(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("wildcard on every response", func(t *testing.T) {
		r := newEngine(CORSMiddleware([]string{"*"}), JWTAuthMiddleware(utils.NewTokenManager(testSecret, time.Hour)))
		w := do(r, http.MethodGet, "/who", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "authorization, x-client-info, apikey, content-type, x-service-key", w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("preflight", func(t *testing.T) {
		r := newEngine(CORSMiddleware([]string{"*"}))
		w := do(r, http.MethodOptions, "/who", map[string]string{"Origin": "https://app.example.com"})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("configured origin list", func(t *testing.T) {
		r := newEngine(CORSMiddleware([]string{"https://a.example.com", "https://b.example.com"}))
		w := do(r, http.MethodGet, "/who", map[string]string{"Origin": "https://b.example.com"})
		assert.Equal(t, "https://b.example.com", w.Header().Get("Access-Control-Allow-Origin"))

		w = do(r, http.MethodGet, "/who", map[string]string{"Origin": "https://evil.example.com"})
		assert.Equal(t, "https://a.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestJWTAuthMiddleware(t *testing.T) {
	tm := utils.NewTokenManager(testSecret, time.Hour)
	r := newEngine(JWTAuthMiddleware(tm))

	token, err := tm.GenerateToken("auth|1", utils.Claims{})
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/who", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"auth|1"`)

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Basic " + token,
		"bad token":    "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/who", map[string]string{"Authorization": header})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestJWTTryAuthMiddleware(t *testing.T) {
	tm := utils.NewTokenManager(testSecret, time.Hour)
	r := newEngine(JWTTryAuthMiddleware(tm))

	w := do(r, http.MethodGet, "/who", map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":""`)
}

func TestTrustedCallerMiddleware(t *testing.T) {
	hash, err := utils.HashServiceKey("s3cret")
	require.NoError(t, err)
	cfg := config.AuthConfig{TrustModel: config.TrustModelTrusted, ServiceKeyHash: hash}
	keys := utils.NewServiceKeyVerifier(hash)

	t.Run("required", func(t *testing.T) {
		r := newEngine(IdentityMiddleware(cfg, nil, keys))
		w := do(r, http.MethodGet, "/who", map[string]string{ServiceKeyHeader: "s3cret"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"trusted":true`)

		w = do(r, http.MethodGet, "/who", map[string]string{ServiceKeyHeader: "guess"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		w = do(r, http.MethodGet, "/who", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("optional", func(t *testing.T) {
		r := newEngine(OptionalIdentityMiddleware(cfg, nil, keys))
		w := do(r, http.MethodGet, "/who", map[string]string{ServiceKeyHeader: "guess"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"trusted":false`)
	})
}

func TestRoleAuthMiddleware(t *testing.T) {
	tm := utils.NewTokenManager(testSecret, time.Hour)
	r := newEngine(JWTAuthMiddleware(tm), RoleAuthMiddleware(utils.RoleAdmin))

	admin, err := tm.GenerateToken("a", utils.Claims{Role: utils.RoleAdmin})
	require.NoError(t, err)
	player, err := tm.GenerateToken("p", utils.Claims{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/who", map[string]string{"Authorization": "Bearer " + admin}).Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/who", map[string]string{"Authorization": "Bearer " + player}).Code)
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(quietLogger()), Recovery(quietLogger()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/panic", map[string]string{RequestIDHeader: "req-1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, w.Body.String())

	w = do(r, http.MethodGet, "/ok", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
