package response

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	Failure(rec, http.StatusInternalServerError, "upstream down")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"error","message":"upstream down"}` {
		t.Errorf("Unexpected body %s", got)
	}
}

func TestSuccessWithoutMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, "")

	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"success"}` {
		t.Errorf("Unexpected body %s", got)
	}
}
