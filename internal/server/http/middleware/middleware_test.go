package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/bitenow/bitenow/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type parserStub struct {
	ParseFn func(token string) (string, error)
}

func (s parserStub) ParseAdminToken(token string) (string, error) {
	return s.ParseFn(token)
}

func TestAdminRequiredAcceptsBearerToken(t *testing.T) {
	router := gin.New()
	router.Use(AdminRequired(parserStub{ParseFn: func(token string) (string, error) {
		if token != "good" {
			return "", pkgAuth.ErrInvalidToken
		}
		return "admin", nil
	}}))

	var subject string
	router.GET("/protected", func(c *gin.Context) {
		subject = c.GetString(AdminSubjectContextKey)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if subject != "admin" {
		t.Errorf("subject = %q", subject)
	}
}

func TestAdminRequiredAcceptsCookie(t *testing.T) {
	router := gin.New()
	router.Use(AdminRequired(parserStub{ParseFn: func(token string) (string, error) {
		if token != "good" {
			return "", pkgAuth.ErrInvalidToken
		}
		return "admin", nil
	}}))
	router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "bitenow_token", Value: "good"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAdminRequiredRejectsMissingOrBadToken(t *testing.T) {
	router := gin.New()
	router.Use(AdminRequired(parserStub{ParseFn: func(string) (string, error) {
		return "", pkgAuth.ErrInvalidToken
	}}))
	router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d", w.Code)
	}
}

func TestDecompressRequest(t *testing.T) {
	router := gin.New()
	router.Use(DecompressRequest())

	var received []byte
	router.POST("/upload", func(c *gin.Context) {
		received, _ = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte(`{"name":"Ama"}`))
	_ = zw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if string(received) != `{"name":"Ama"}` {
		t.Errorf("body = %q", received)
	}
}

func TestDecompressRequestRejectsBrokenPayload(t *testing.T) {
	router := gin.New()
	router.Use(DecompressRequest())
	router.POST("/upload", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("unexpected response: %d %q", w.Code, w.Body.String())
	}
}
