// Package testutil provides a fixture backend for exercising the SDK
// services against recorded API responses.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// RecordedRequest captures one request the fixture server received.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// APIServer is an in-process stand-in for the loyalty backend. Tests
// register fixtures per route and assert on the recorded traffic.
type APIServer struct {
	*httptest.Server
	router *chi.Mux

	mu       sync.Mutex
	requests []RecordedRequest
}

func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()
	s := &APIServer{router: chi.NewRouter()}
	s.router.Use(s.record)
	s.Server = httptest.NewServer(s.router)
	t.Cleanup(s.Close)
	return s
}

// Handle registers a fixture that answers with the given status and
// JSON-encoded body.
func (s *APIServer) Handle(method, pattern string, status int, body any) {
	s.HandleFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	})
}

// HandleFunc registers a custom fixture handler.
func (s *APIServer) HandleFunc(method, pattern string, fn http.HandlerFunc) {
	s.router.Method(method, pattern, fn)
}

// Requests returns a copy of everything received so far.
func (s *APIServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or a zero value when
// nothing arrived yet.
func (s *APIServer) LastRequest() RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *APIServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}
