package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const testFrontend = "http://localhost:4321"

func serveCORS(t *testing.T, method string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	New(&mockDB{}, testFrontend).CORS(inner).ServeHTTP(rec, httptest.NewRequest(method, "/api/estimates", nil))
	return rec, called
}

func TestCORS_AllowsFrontendWithoutCredentials(t *testing.T) {
	rec, called := serveCORS(t, http.MethodPost)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected inner handler to answer 200, got %d called=%v", rec.Code, called)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != testFrontend {
		t.Errorf("expected origin %s, got %q", testFrontend, got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("unexpected methods %q", got)
	}
	if _, ok := rec.Header()["Access-Control-Allow-Credentials"]; ok {
		t.Error("expected no credentials header")
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); got != "Content-Disposition, X-Request-ID" {
		t.Errorf("unexpected exposed headers %q", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	rec, called := serveCORS(t, http.MethodOptions)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OPTIONS, got %d", rec.Code)
	}
	if called {
		t.Error("preflight reached the inner handler")
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("expected max-age 600, got %q", got)
	}
}
