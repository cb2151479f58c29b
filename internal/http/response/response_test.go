package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/foodie-next/internal/constants"

	"github.com/gin-gonic/gin"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	return body
}

func TestSuccessFlattensPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, "Order placed successfully", gin.H{"order": gin.H{"_id": "o1"}, "success": false})

	if w.Code != CodeCreated {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true || body["message"] != "Order placed successfully" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if _, ok := body["order"]; !ok {
		t.Fatalf("payload should be flattened: %v", body)
	}
}

func TestOKOmitsEmptyMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, gin.H{"count": 0})
	body := decodeBody(t, w)
	if _, ok := body["message"]; ok {
		t.Fatalf("empty message should be omitted: %v", body)
	}
}

func TestErrorAttachesRequestIDOnServerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.CtxRequestID, "req-1")

	Error(c, CodeInternal, "boom")
	body := decodeBody(t, w)
	if body["success"] != false || body["requestId"] != "req-1" {
		t.Fatalf("unexpected error envelope: %v", body)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Set(constants.CtxRequestID, "req-2")
	NotFound(c, "Order not found")
	body = decodeBody(t, w)
	if w.Code != CodeNotFound || body["message"] != "Order not found" {
		t.Fatalf("unexpected not found envelope: %d %v", w.Code, body)
	}
	if _, ok := body["requestId"]; ok {
		t.Fatalf("client errors should not carry request id")
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("db down")
	err := WrapError(CodeInternal, "failed", cause)
	if !errors.Is(err, cause) || err.Error() != "failed: db down" {
		t.Fatalf("unexpected app error: %v", err)
	}
}
