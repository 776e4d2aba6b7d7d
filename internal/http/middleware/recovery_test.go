package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecovery_WritesEnvelope(t *testing.T) {
	buf := captureLogs(t)
	r := gin.New()
	r.Use(RequestID(), AccessLog(AccessLogOptions{}), Recovery())
	r.GET("/panic", func(*gin.Context) { panic("kaboom") })

	before := testutil.ToFloat64(httpPanics.WithLabelValues("/panic"))
	w := do(r, http.MethodGet, "/panic", map[string]string{HeaderRequestID: "rid-p"})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w.Body)
	if body["code"] != CodeInternal || body["message"] != msgInternal || body["request_id"] != "rid-p" {
		t.Fatalf("body = %v", body)
	}
	if got := testutil.ToFloat64(httpPanics.WithLabelValues("/panic")) - before; got != 1 {
		t.Fatalf("panic counter delta = %v", got)
	}

	var sawPanic bool
	for _, l := range logLines(t, buf) {
		if l["message"] == "handler panic" && l["panic"] == "kaboom" && l["request_id"] == "rid-p" {
			sawPanic = true
		}
	}
	if !sawPanic {
		t.Fatalf("panic not logged: %s", buf.String())
	}
}

func TestRecovery_AfterWriteKeepsBody(t *testing.T) {
	captureLogs(t)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/late", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late")
	})

	w := do(r, http.MethodGet, "/late", nil)
	if w.Body.String() != "partial" {
		t.Fatalf("body rewritten after headers were sent: %q", w.Body.String())
	}
}

func TestRecovery_RepanicsAbortHandler(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/abort", func(*gin.Context) { panic(http.ErrAbortHandler) })

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Fatalf("recovered %v; want ErrAbortHandler", rec)
		}
	}()
	do(r, http.MethodGet, "/abort", nil)
}
