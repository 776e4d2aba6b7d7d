package middleware

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	tests := []struct {
		name    string
		inbound string
		keep    bool
	}{
		{"absent", "", false},
		{"kept", "mum-app-42", true},
		{"spaces", "has space", false},
		{"control", "abc\x01", false},
		{"too long", strings.Repeat("a", maxRequestIDLen+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr := map[string]string{}
			if tt.inbound != "" {
				hdr[HeaderRequestID] = tt.inbound
			}
			w := do(r, http.MethodGet, "/x", hdr)
			got := w.Header().Get(HeaderRequestID)
			if got != w.Body.String() {
				t.Fatalf("header %q and context %q differ", got, w.Body.String())
			}
			if tt.keep {
				if got != tt.inbound {
					t.Fatalf("got %q; want inbound %q", got, tt.inbound)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected generated uuid, got %q", got)
			}
		})
	}
}

func TestRequestIDFrom_FallsBackToHeader(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Header(HeaderRequestID, "from-header")
		c.String(http.StatusOK, RequestIDFrom(c))
	})
	if w := do(r, http.MethodGet, "/x", nil); w.Body.String() != "from-header" {
		t.Fatalf("RequestIDFrom = %q", w.Body.String())
	}
}
