package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// SampleDeckJSON is a small deck in the endpoint's JSON format
const SampleDeckJSON = `{"animals":["ねこ","いぬ",""],"food":["すし","ラーメン"],"empty":[]}`

// DeckServer serves a deck over HTTP for testing
type DeckServer struct {
	*httptest.Server

	mu     sync.Mutex
	body   string
	status int
	hits   int
}

// NewDeckServer starts a server answering every request with body. It is
// closed when the test ends.
func NewDeckServer(t *testing.T, body string) *DeckServer {
	t.Helper()

	s := &DeckServer{body: body, status: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// SetResponse changes what later requests receive
func (s *DeckServer) SetResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// Hits returns the number of requests served
func (s *DeckServer) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

func (s *DeckServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits++
	status, body := s.status, s.body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
