package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formflow/internal/server"
)

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := server.Chain(
		http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			panic("test panic")
		}),
		server.RequestID(),
		server.Recovery(zap.New(core)),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Errorf("expected panic to be logged")
	}
}

func TestMiddlewareStackLogsPanicWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := server.Chain(
		http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			panic("boom")
		}),
		server.Middleware(zap.New(core))...,
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	entries := logs.FilterMessage("panic recovered").All()
	if len(entries) != 1 {
		t.Fatalf("expected one panic log, got %d", len(entries))
	}
	id, _ := entries[0].ContextMap()["request_id"].(string)
	if id == "" || id != rec.Header().Get(server.RequestIDHeader) {
		t.Fatalf("panic log request_id = %q, header = %q", id, rec.Header().Get(server.RequestIDHeader))
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var capturedID string
	handler := server.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capturedID = server.RequestIDFrom(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
		server.RequestID(),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	handler.ServeHTTP(rec, req)

	headerID := rec.Header().Get(server.RequestIDHeader)
	if capturedID == "" || headerID != capturedID {
		t.Errorf("header ID %q != context ID %q", headerID, capturedID)
	}
	// UUID v4 format: 8-4-4-4-12
	if len(capturedID) != 36 {
		t.Errorf("UUID length = %d, want 36", len(capturedID))
	}
}

func TestLoggingMiddlewareRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := server.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
		server.Logging(zap.New(core)),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", http.NoBody))

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["path"] != "/brew" {
		t.Errorf("unexpected fields %v", fields)
	}
}
