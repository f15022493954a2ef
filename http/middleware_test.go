package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"creditrisk/ml"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(tag("first"), tag("second"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "first,second,handler" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestLoggerMiddlewareSetsRequestID(t *testing.T) {
	var seen string
	handler := LoggerMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected uuid request id, got %q", seen)
	}
	if w.Header().Get("X-Request-ID") != seen {
		t.Fatalf("response header should carry the request id")
	}
	if w.Code != http.StatusTeapot {
		t.Fatalf("status should pass through, got %d", w.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("classifier crashed")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestRecoveryMiddlewareKeepsStartedResponse(t *testing.T) {
	handler := RecoveryMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("partial"))
		panic("midway")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status already sent should stand, got %d", w.Code)
	}
	if w.Body.String() != "partial" {
		t.Fatalf("no error body should follow a started response, got %q", w.Body.String())
	}
}

func TestServerChainLogsPanicWithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	handler := serverChain(DefaultServerConfig(), logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("classifier crashed")
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	requestID := w.Header().Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected request id header")
	}

	panics := logs.FilterMessage("panic recovered").All()
	if len(panics) != 1 {
		t.Fatalf("expected one panic log, got %d", len(panics))
	}
	if got := panics[0].ContextMap()["request_id"]; got != requestID {
		t.Fatalf("panic log request_id = %v, want %s", got, requestID)
	}

	access := logs.FilterMessage("request failed").All()
	if len(access) != 1 {
		t.Fatalf("expected one access log line, got %d", len(access))
	}
	if got := access[0].ContextMap()["status"]; got != int64(http.StatusInternalServerError) {
		t.Fatalf("access log status = %v, want 500", got)
	}
}

func TestRequestSizeMiddleware(t *testing.T) {
	mux := newTestMux(t, &fakeModel{label: 1})
	handler := RequestSizeMiddleware(16)(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{"sex":"male","job":1,"housing":"own"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized body, got %d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected nosniff header")
	}
}

func TestServerHandlerServesForm(t *testing.T) {
	assessor, err := ml.NewAssessor(&fakeModel{label: 1})
	if err != nil {
		t.Fatalf("NewAssessor: %v", err)
	}
	handler, err := NewHandler(assessor, nil, nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	server := NewServer(DefaultServerConfig(), handler, zap.NewNop())

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id from middleware chain")
	}
	if server.Addr() != ":8080" {
		t.Fatalf("unexpected addr %s", server.Addr())
	}
}
