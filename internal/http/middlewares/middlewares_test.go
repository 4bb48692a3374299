package middlewares_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shuaibullattil/daily-motivation/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.RequestID())
	r.GET("/x", func(ctx *gin.Context) {
		id, _ := ctx.Get(middlewares.CtxRequestID)
		ctx.String(http.StatusOK, id.(string))
	})

	// generated
	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Header().Get(middlewares.RequestIDHeader) == "" {
		t.Fatal("no request id header generated")
	}
	if w.Body.String() != w.Header().Get(middlewares.RequestIDHeader) {
		t.Fatalf("context id %q != header %q", w.Body.String(), w.Header().Get(middlewares.RequestIDHeader))
	}

	// echoed
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middlewares.RequestIDHeader, "abc-123")
	w = serve(r, req)
	if got := w.Header().Get(middlewares.RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q, want abc-123", got)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(middlewares.RequestID(), middlewares.RequestLogger(log))
	r.GET("/get_user", func(ctx *gin.Context) { ctx.Status(http.StatusNotFound) })

	serve(r, httptest.NewRequest(http.MethodGet, "/get_user", nil))

	line := buf.String()
	for _, want := range []string{"msg=http_request", "route=/get_user", "status=404", "request_id="} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %q: %s", want, line)
		}
	}
}

func TestRequireJSON(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.RequireJSON())
	r.POST("/create_user", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	r.GET("/get_user", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/create_user", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "text/plain")
	if w := serve(r, req); w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("text/plain: got %d, want 415", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/create_user", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if w := serve(r, req); w.Code != http.StatusOK {
		t.Fatalf("json: got %d, want 200", w.Code)
	}

	if w := serve(r, httptest.NewRequest(http.MethodGet, "/get_user", nil)); w.Code != http.StatusOK {
		t.Fatalf("GET should pass without content type, got %d", w.Code)
	}
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.MaxBodyBytes(4))
	r.POST("/x", func(ctx *gin.Context) {
		if _, err := io.ReadAll(ctx.Request.Body); err != nil {
			ctx.Status(http.StatusRequestEntityTooLarge)
			return
		}
		ctx.Status(http.StatusOK)
	})

	if w := serve(r, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("123456789"))); w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("got %d, want 413", w.Code)
	}
	if w := serve(r, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("123"))); w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.CORSMiddleware([]string{"http://app.test"}))
	r.GET("/get_user", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/get_user", nil)
	req.Header.Set("Origin", "http://app.test")
	w := serve(r, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Fatalf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/get_user", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = serve(r, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/get_user", nil)
	if w := serve(r, req); w.Code != http.StatusNoContent {
		t.Fatalf("preflight got %d, want 204", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.SecurityHeaders())
	r.GET("/get_user", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	r.GET("/docs", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/get_user", nil))
	if w.Header().Get("Content-Security-Policy") != "default-src 'none'" {
		t.Fatalf("csp = %q", w.Header().Get("Content-Security-Policy"))
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("nosniff missing")
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/docs", nil))
	if !strings.Contains(w.Header().Get("Content-Security-Policy"), "unpkg.com") {
		t.Fatalf("docs csp = %q", w.Header().Get("Content-Security-Policy"))
	}
}
