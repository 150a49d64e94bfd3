package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWithRequestIDSetsHeaderAndContext(t *testing.T) {
	var seen string
	handler := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if seen == "" {
		t.Fatalf("RequestIDFromContext() = empty, want id")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("X-Request-ID = %q, want %q", got, seen)
	}
}

func TestWithRecoveryReturns500(t *testing.T) {
	handler := ChainMiddleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}),
		WithLogging,
		WithRecovery,
		WithRequestID,
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestWithCORS(t *testing.T) {
	handler := WithCORS([]string{"https://club.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{name: "allowed", origin: "https://club.example", want: "https://club.example"},
		{name: "denied", origin: "https://other.example", want: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/players", nil)
			req.Header.Set("Origin", test.origin)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != test.want {
				t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, test.want)
			}
		})
	}
}
