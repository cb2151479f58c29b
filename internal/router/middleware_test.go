package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodie-next/internal/authz"
	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/database"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

type stubAuthenticator struct {
	claims *service.TokenClaims
	err    error
	calls  int
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, token string) (*service.TokenClaims, error) {
	s.calls++
	return s.claims, s.err
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return body
}

func TestOriginAllowed(t *testing.T) {
	if !originAllowed("https://example.com", []string{"*"}) {
		t.Fatalf("wildcard should allow any origin")
	}
	if !originAllowed("https://A.example.com", []string{"https://a.example.com"}) {
		t.Fatalf("allow-list match should be case-insensitive")
	}
	if originAllowed("https://x.example.com", []string{"https://a.example.com"}) {
		t.Fatalf("unmatched origin should be rejected")
	}
	if originAllowed("", []string{"*"}) {
		t.Fatalf("empty origin should not be echoed")
	}
}

func TestBuildCORSConfig(t *testing.T) {
	open := buildCORSConfig(config.CORSConfig{})
	if !open.AllowAllOrigins || open.AllowOriginFunc != nil {
		t.Fatalf("empty config should allow all origins")
	}
	withCredentials := buildCORSConfig(config.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true})
	if withCredentials.AllowAllOrigins || withCredentials.AllowOriginFunc == nil {
		t.Fatalf("credentials should switch to origin echo")
	}
	if !withCredentials.AllowOriginFunc("https://shop.example.com") {
		t.Fatalf("wildcard with credentials should still accept origins")
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://admin.example.com"}}))
	r.POST("/api/orders", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status want 204 got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example.com" {
		t.Fatalf("unexpected allow origin: %q", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	if body := decodeBody(t, w); body["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %v", body["request_id"])
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func TestRecoveryMiddlewareReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), RecoveryMiddleware())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status want 500 got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false || body["message"] != msgInternal {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["requestId"] == nil {
		t.Fatalf("5xx envelope should carry request id")
	}
}

func TestReadinessMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	state := database.NewState(constants.DBDriverMongo)
	r := gin.New()
	r.GET("/api/products", ReadinessMiddleware(state, msgResourceNotReady), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status want 503 got %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != msgResourceNotReady {
		t.Fatalf("unexpected message: %v", body["message"])
	}

	state.MarkReady()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("ready state should pass through, got %d", w.Code)
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	claims := &service.TokenClaims{AdminID: "a1", Email: "chef@example.com", Role: constants.RoleAdmin}

	cases := []struct {
		name       string
		header     string
		query      string
		allowQuery bool
		auth       *stubAuthenticator
		wantCode   int
		wantMsg    string
		wantCalls  int
	}{
		{name: "missing header", auth: &stubAuthenticator{claims: claims}, wantCode: 401, wantMsg: msgNoToken},
		{name: "not bearer", header: "Basic abc", auth: &stubAuthenticator{claims: claims}, wantCode: 401, wantMsg: msgNoToken},
		{name: "empty bearer", header: "Bearer ", auth: &stubAuthenticator{claims: claims}, wantCode: 401, wantMsg: msgNoToken},
		{name: "invalid", header: "Bearer bad", auth: &stubAuthenticator{err: service.ErrTokenInvalid}, wantCode: 401, wantMsg: msgInvalidToken, wantCalls: 1},
		{name: "valid", header: "Bearer good", auth: &stubAuthenticator{claims: claims}, wantCode: 200, wantCalls: 1},
		{name: "query ignored", query: "good", auth: &stubAuthenticator{claims: claims}, wantCode: 401, wantMsg: msgNoToken},
		{name: "query allowed", query: "good", allowQuery: true, auth: &stubAuthenticator{claims: claims}, wantCode: 200, wantCalls: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/api/orders", AdminAuthMiddleware(tc.auth, tc.allowQuery), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"adminId": c.GetString(constants.CtxAdminID)})
			})
			target := "/api/orders"
			if tc.query != "" {
				target += "?token=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status want %d got %d", tc.wantCode, w.Code)
			}
			body := decodeBody(t, w)
			if tc.wantMsg != "" && body["message"] != tc.wantMsg {
				t.Fatalf("message want %q got %v", tc.wantMsg, body["message"])
			}
			if tc.wantCode == 200 && body["adminId"] != "a1" {
				t.Fatalf("claims should be stored in context, got %v", body)
			}
			if tc.auth.calls != tc.wantCalls {
				t.Fatalf("authenticate calls want %d got %d", tc.wantCalls, tc.auth.calls)
			}
		})
	}
}

func TestAdminRBACMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authzService, err := authz.NewService()
	if err != nil {
		t.Fatalf("init authz failed: %v", err)
	}

	run := func(role string) int {
		r := gin.New()
		r.GET("/api/auth/admins", func(c *gin.Context) {
			c.Set(constants.CtxAdminRole, role)
			c.Next()
		}, AdminRBACMiddleware(authzService), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/admins", nil))
		return w.Code
	}

	if code := run(constants.RoleSuperAdmin); code != http.StatusOK {
		t.Fatalf("super admin should list admins, got %d", code)
	}
	if code := run(constants.RoleAdmin); code != http.StatusForbidden {
		t.Fatalf("admin should be denied, got %d", code)
	}
	if code := run(""); code != http.StatusForbidden {
		t.Fatalf("missing role should be denied, got %d", code)
	}
}

func TestUploadLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/upload", UploadLimitMiddleware(8), func(c *gin.Context) {
		_, err := c.GetRawData()
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("0123456789")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized body should hit the limit, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("small")))
	if w.Code != http.StatusOK {
		t.Fatalf("small body should pass, got %d", w.Code)
	}
}

func TestUploadBodyLimit(t *testing.T) {
	multipart := uploadBodyLimit(constants.UploadInputMultipart, constants.MaxImageSize)
	base64 := uploadBodyLimit(constants.UploadInputBase64, constants.MaxImageSize)
	if multipart <= constants.MaxImageSize {
		t.Fatalf("multipart limit should leave room for form overhead")
	}
	if base64 <= multipart {
		t.Fatalf("base64 limit should account for encoding growth")
	}
}
