package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordEmailSent("otp")
	c.RecordEmailSent("otp")
	c.RecordEmailFailed("reset")
	c.RecordTokensEvicted("reset", 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.emailsSent.WithLabelValues("otp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.emailsFailed.WithLabelValues("reset")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.tokensEvicted.WithLabelValues("reset")))
}

func TestCollector_MiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	r := gin.New()
	r.Use(c.Middleware())
	r.DELETE("/api/notes/deletenote/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/notes/deletenote/abc", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/notes/deletenote/:id", "DELETE", "404")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordEmailSent("reset")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cryptnote_emails_sent_total{kind="reset"} 1`)
}
