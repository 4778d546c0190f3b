package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics("ctf")

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/challenges/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/challenges/a", "/api/v1/challenges/b", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/v1/challenges/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.RequestsInFlight))
}

func TestObserveSubmission(t *testing.T) {
	m := NewMetrics("ctf")
	m.ObserveSubmission(OutcomeCorrect)
	m.ObserveSubmission(OutcomeWrong)
	m.ObserveSubmission(OutcomeWrong)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues(OutcomeWrong)))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveSubmission(OutcomeError) })
}

func TestHandler(t *testing.T) {
	m := NewMetrics("ctf")
	m.ObserveSubmission(OutcomeAlreadySolved)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `ctf_submissions_total{outcome="already_solved"} 1`)
}
