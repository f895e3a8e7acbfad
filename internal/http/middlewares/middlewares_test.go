package middlewares

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequireJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequireJSON())
	r.Any("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		chunked     bool
		want        int
	}{
		{name: "json", method: http.MethodPost, contentType: "application/json", body: "{}", want: http.StatusOK},
		{name: "json charset", method: http.MethodPut, contentType: "application/json; charset=utf-8", body: "{}", want: http.StatusOK},
		{name: "form", method: http.MethodPost, contentType: "application/x-www-form-urlencoded", body: "a=b", want: http.StatusUnsupportedMediaType},
		{name: "missing", method: http.MethodPost, body: "{}", want: http.StatusUnsupportedMediaType},
		{name: "bodyless delete", method: http.MethodDelete, want: http.StatusOK},
		{name: "chunked bodyless delete", method: http.MethodDelete, chunked: true, want: http.StatusOK},
		{name: "delete with json", method: http.MethodDelete, contentType: "application/json", body: `{"email":"a@x.com"}`, want: http.StatusOK},
		{name: "delete with text", method: http.MethodDelete, contentType: "text/plain", body: "a@x.com", want: http.StatusUnsupportedMediaType},
		{name: "get", method: http.MethodGet, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/x", strings.NewReader(tt.body))
			if tt.chunked {
				req.ContentLength = -1
			}
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRequestIDAndLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Request-Id") != "req-123" {
		t.Fatalf("request id not echoed: %q", w.Header().Get("X-Request-Id"))
	}

	line := buf.String()
	for _, want := range []string{`"msg":"http_request"`, `"route":"/ping"`, `"request_id":"req-123"`, `"status":200`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %s missing %s", line, want)
		}
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected a generated request id")
	}
}

func TestMaxBodyBytes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/x", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	for body, want := range map[string]int{"short": http.StatusOK, "much too long": http.StatusRequestEntityTooLarge} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body)))
		if w.Code != want {
			t.Fatalf("%q: status = %d, want %d", body, w.Code, want)
		}
	}
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(SecurityHeaders(), CORSMiddleware([]string{"http://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://app.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Content-Type-Options") != "nosniff" || w.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("security headers missing: %v", w.Header())
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://app.test" {
		t.Fatalf("allowed origin not echoed")
	}

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("preflight from unknown origin: status %d, origin %q", w.Code, w.Header().Get("Access-Control-Allow-Origin"))
	}
}
