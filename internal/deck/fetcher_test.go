package deck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/kanacards/internal/testutil"
)

func TestFetcherFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"animals":["ねこ",""],"food":["すし"]}`))
	}))
	defer server.Close()

	f := NewFetcher(server.URL, server.Client(), time.Second)
	d, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !reflect.DeepEqual(d.Categories, []string{"animals", "food"}) {
		t.Errorf("Categories = %v", d.Categories)
	}
	if got := d.Lookup("animals"); !reflect.DeepEqual(got, []string{"ねこ"}) {
		t.Errorf("Lookup(animals) = %v", got)
	}
	if f.Endpoint() != server.URL {
		t.Errorf("Endpoint() = %q", f.Endpoint())
	}
}

func TestFetcherErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not found", http.NotFound},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			f := NewFetcher(server.URL, server.Client(), time.Second)
			if _, err := f.Fetch(context.Background()); err == nil {
				t.Error("Fetch() expected an error")
			}
		})
	}
}

func TestFetcherTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	f := NewFetcher(server.URL, server.Client(), 50*time.Millisecond)
	start := time.Now()
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch() expected a timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Fetch() took %v, timeout not applied", elapsed)
	}
}

func TestFetcherCircuitBreakerOpens(t *testing.T) {
	server := testutil.NewDeckServer(t, "bad gateway")
	server.SetResponse(http.StatusBadGateway, "bad gateway")

	f := NewFetcher(server.URL, server.Client(), time.Second)
	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background()); err == nil {
			t.Fatalf("attempt %d: expected error", i+1)
		}
	}

	_, err := f.Fetch(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Fetch() after 3 failures error = %v, want ErrOpenState", err)
	}
	if got := server.Hits(); got != 3 {
		t.Errorf("server hits = %d, want 3", got)
	}
}

func TestFetcherSampleDeck(t *testing.T) {
	server := testutil.NewDeckServer(t, testutil.SampleDeckJSON)

	d, err := NewFetcher(server.URL, nil, 0).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !reflect.DeepEqual(d.Categories, []string{"animals", "food", "empty"}) {
		t.Errorf("Categories = %v", d.Categories)
	}
	if d.Size() != 4 {
		t.Errorf("Size() = %d, want 4", d.Size())
	}
}
