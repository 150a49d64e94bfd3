package apiutil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	var dst struct {
		Name string `json:"name"`
	}
	if err := DecodeJSON(req, &dst); err == nil {
		t.Fatalf("DecodeJSON() error = nil, want unknown field error")
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	var dst struct {
		Name string `json:"name"`
	}
	if err := DecodeJSON(req, &dst); err == nil {
		t.Fatalf("DecodeJSON() error = nil, want trailing data error")
	}
}

func TestDecodeOptionalJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	var dst struct {
		Seed *uint64 `json:"seed"`
	}
	if err := DecodeOptionalJSON(req, &dst); err != nil {
		t.Fatalf("DecodeOptionalJSON() error = %v, want nil", err)
	}
	if dst.Seed != nil {
		t.Fatalf("DecodeOptionalJSON() seed = %v, want nil", *dst.Seed)
	}
}

func TestWriteHandlerError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "handler_error", err: HandlerError{Status: http.StatusNotFound, Message: "Player not found"}, wantStatus: http.StatusNotFound, wantBody: "Player not found"},
		{name: "field_error", err: FieldError{Field: "rating", Reason: "is invalid"}, wantStatus: http.StatusBadRequest, wantBody: "rating is invalid"},
		{name: "unknown", err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantBody: "Internal Server Error"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			WriteHandlerError(rec, req, test.err, "failed")
			if rec.Code != test.wantStatus {
				t.Fatalf("WriteHandlerError() status = %d, want %d", rec.Code, test.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), test.wantBody) {
				t.Fatalf("WriteHandlerError() body = %q, want %q", rec.Body.String(), test.wantBody)
			}
		})
	}
}

func TestRenderHTMLComponent(t *testing.T) {
	ok := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>lineup</p>")
		return err
	})
	rec := httptest.NewRecorder()
	if !RenderHTMLComponent(context.Background(), rec, ok, map[string]string{"HX-Trigger": "balanced"}, "log", "err") {
		t.Fatalf("RenderHTMLComponent() = false, want true")
	}
	if rec.Body.String() != "<p>lineup</p>" {
		t.Fatalf("RenderHTMLComponent() body = %q", rec.Body.String())
	}
	if got := rec.Header().Get("HX-Trigger"); got != "balanced" {
		t.Fatalf("RenderHTMLComponent() HX-Trigger = %q, want %q", got, "balanced")
	}

	failing := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("render failed")
	})
	rec = httptest.NewRecorder()
	if RenderHTMLComponent(context.Background(), rec, failing, nil, "log", "Failed to render") {
		t.Fatalf("RenderHTMLComponent() = true, want false")
	}
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "partial") {
		t.Fatalf("RenderHTMLComponent() = %d %q, want clean 500", rec.Code, rec.Body.String())
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/12", nil)
	req.SetPathValue("id", "12")
	got, err := PathID(req, "id")
	if err != nil || got != 12 {
		t.Fatalf("PathID() = %d, %v, want 12, nil", got, err)
	}

	req.SetPathValue("id", "-4")
	if _, err := PathID(req, "id"); err == nil {
		t.Fatalf("PathID(-4) error = nil, want error")
	}
}
