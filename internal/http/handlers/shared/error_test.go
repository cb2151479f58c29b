package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

func TestToAppErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{service.ErrProductFields, http.StatusBadRequest, "Please fill all required fields"},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{service.ErrForbiddenPath, http.StatusForbidden, "Invalid filename"},
		{service.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
		{service.ErrDatabaseNotReady, http.StatusServiceUnavailable, "Database connection is not ready"},
		{fmt.Errorf("wrap: %w", service.ErrImageNotFound), http.StatusNotFound, "Image not found or already deleted"},
		{service.ErrTokenExpired, http.StatusUnauthorized, "Invalid or expired token"},
		{errors.New("connection reset"), http.StatusInternalServerError, "connection reset"},
	}
	for _, tc := range cases {
		appErr := ToAppError(tc.err)
		if appErr.Code != tc.wantCode || appErr.Message != tc.wantMsg {
			t.Fatalf("%v: got %d %q want %d %q", tc.err, appErr.Code, appErr.Message, tc.wantCode, tc.wantMsg)
		}
	}
}

func TestRespondErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)

	RespondError(c, service.ErrOrderNotFound)

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["success"] != false || body["message"] != "Order not found" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestNormalizePagination(t *testing.T) {
	page, size := NormalizePagination(0, -3)
	if page != 1 || size != 0 {
		t.Fatalf("unexpected defaults: %d %d", page, size)
	}
	if _, size = NormalizePagination(2, 500); size != 100 {
		t.Fatalf("page size should be capped, got %d", size)
	}
}
