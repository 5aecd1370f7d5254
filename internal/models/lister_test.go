package models

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

const modelsResponse = `{"object":"list","data":[
	{"id":"gpt-4o-mini","object":"model","owned_by":"openai"},
	{"id":"tts-1","object":"model","owned_by":"openai"},
	{"id":"o3-mini","object":"model","owned_by":"openai"},
	{"id":"dall-e-3","object":"model","owned_by":"openai"},
	{"id":"gpt-4o-audio-preview","object":"model","owned_by":"openai"},
	{"id":"text-embedding-3-small","object":"model","owned_by":"openai"},
	{"id":"gpt-4.1","object":"model","owned_by":"openai"}
]}`

func newTestLister(t *testing.T) *Lister {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(modelsResponse))
	}))
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-api-key")
	config.BaseURL = server.URL + "/v1"
	return NewListerWithConfig("test-api-key", config)
}

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}

	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestChatModels_NoAPIKey(t *testing.T) {
	lister := NewLister("")

	_, err := lister.ChatModels(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("Error should mention OPENAI_API_KEY, got: %v", err)
	}
}

func TestChatModels_FakeServer(t *testing.T) {
	lister := newTestLister(t)

	got, err := lister.ChatModels(context.Background())
	if err != nil {
		t.Fatalf("ChatModels() error = %v", err)
	}

	want := []string{"gpt-4.1", "gpt-4o-mini", "o3-mini"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ChatModels() = %v, want %v", got, want)
	}
}

func TestListAvailableModels_MarksCurrent(t *testing.T) {
	lister := newTestLister(t)

	var buf bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &buf, "gpt-4o-mini"); err != nil {
		t.Fatalf("ListAvailableModels() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "* gpt-4o-mini\n") {
		t.Errorf("current model not marked:\n%s", out)
	}
	if !strings.Contains(out, "  o3-mini\n") {
		t.Errorf("o3-mini missing:\n%s", out)
	}
	if strings.Contains(out, "tts-1") {
		t.Errorf("non-chat model listed:\n%s", out)
	}
}

func TestIsChatModel(t *testing.T) {
	tests := map[string]bool{
		"gpt-4o":                 true,
		"chatgpt-4o-latest":      true,
		"o1":                     true,
		"o4-mini":                true,
		"omni-moderation-latest": false,
		"gpt-4o-realtime":        false,
		"whisper-1":              false,
		"babbage-002":            false,
	}

	for id, want := range tests {
		if got := isChatModel(id); got != want {
			t.Errorf("isChatModel(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	lister := NewLister(apiKey)

	var buf bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &buf, ""); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
