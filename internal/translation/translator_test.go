package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestNewTranslator(t *testing.T) {
	translator := NewTranslator("test-api-key")

	if translator == nil {
		t.Fatal("NewTranslator returned nil")
	}

	if translator.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", translator.apiKey)
	}

	if translator.client == nil {
		t.Error("OpenAI client not initialized")
	}

	if !translator.Enabled() {
		t.Error("Translator with a key should be enabled")
	}
}

func TestTranslateWord_NoAPIKey(t *testing.T) {
	translator := NewTranslator("")

	if translator.Enabled() {
		t.Error("Translator without a key should be disabled")
	}

	_, err := translator.TranslateWord(context.Background(), "ねこ")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got: %v", err)
	}
}

// fakeCompletions serves the chat completions endpoint and answers with reply
func fakeCompletions(t *testing.T, reply string, calls *int32) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "ねこ") {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply}},
			},
		})
	}))
}

func TestTranslateWord_FakeServer(t *testing.T) {
	var calls int32
	server := fakeCompletions(t, "  cat\n", &calls)
	defer server.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	translator := NewTranslatorWithConfig("test-key", config)

	for i := 0; i < 2; i++ {
		meaning, err := translator.TranslateWord(context.Background(), "ねこ")
		if err != nil {
			t.Fatalf("TranslateWord failed: %v", err)
		}
		if meaning != "cat" {
			t.Errorf("Expected 'cat', got %q", meaning)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected 1 API call thanks to the cache, got %d", got)
	}
	if cached, ok := translator.Cache().Get("ねこ"); !ok || cached != "cat" {
		t.Errorf("Cache().Get(ねこ) = %q, %v", cached, ok)
	}
}

func TestTranslateWord_EmptyReply(t *testing.T) {
	var calls int32
	server := fakeCompletions(t, "   ", &calls)
	defer server.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	translator := NewTranslatorWithConfig("test-key", config)

	if _, err := translator.TranslateWord(context.Background(), "ねこ"); err == nil {
		t.Error("Expected error for an empty reply")
	}
	if _, ok := translator.Cache().Get("ねこ"); ok {
		t.Error("Empty reply should not be cached")
	}
}

func TestTranslateWord_EmptyWord(t *testing.T) {
	translator := NewTranslator("test-key")

	if _, err := translator.TranslateWord(context.Background(), "  "); err == nil {
		t.Error("Expected error for an empty word")
	}
}

func TestTranslateWord_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	translator := NewTranslator(apiKey)

	meaning, err := translator.TranslateWord(context.Background(), "ねこ")
	if err != nil {
		t.Errorf("TranslateWord failed: %v", err)
	}

	if meaning == "" {
		t.Error("Got empty meaning")
	}

	t.Logf("Meaning of 'ねこ': %s", meaning)
}

func TestTranslationCache(t *testing.T) {
	cache := NewTranslationCache()

	// Test empty cache
	_, found := cache.Get("ねこ")
	if found {
		t.Error("Expected not found in empty cache")
	}

	// Test adding and retrieving
	cache.Add("ねこ", "cat")
	cache.Add("いぬ", "dog")

	translation, found := cache.Get("ねこ")
	if !found {
		t.Error("Expected to find 'ねこ' in cache")
	}
	if translation != "cat" {
		t.Errorf("Expected 'cat', got '%s'", translation)
	}

	// Test overwriting
	cache.Add("ねこ", "cat (animal)")
	translation, found = cache.Get("ねこ")
	if !found || translation != "cat (animal)" {
		t.Errorf("Expected 'cat (animal)', got '%s'", translation)
	}
}

func TestTranslationCache_GetAll(t *testing.T) {
	cache := NewTranslationCache()

	cache.Add("ねこ", "cat")
	cache.Add("いぬ", "dog")
	cache.Add("すし", "sushi")

	all := cache.GetAll()

	expected := map[string]string{
		"ねこ": "cat",
		"いぬ": "dog",
		"すし": "sushi",
	}

	if !reflect.DeepEqual(all, expected) {
		t.Errorf("GetAll() = %v, want %v", all, expected)
	}

	// Test that modifying returned map doesn't affect cache
	all["ねこ"] = "modified"

	translation, _ := cache.Get("ねこ")
	if translation != "cat" {
		t.Error("Cache was modified through returned map")
	}
}

func TestTranslationCache_Concurrent(t *testing.T) {
	cache := NewTranslationCache()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			word := string(rune('あ' + n))
			cache.Add(word, "x")
			cache.Get(word)
			cache.GetAll()
		}(i)
	}
	wg.Wait()

	if len(cache.GetAll()) != 10 {
		t.Errorf("Expected 10 entries, got %d", len(cache.GetAll()))
	}
}

func TestTranslatorSetModel(t *testing.T) {
	var model atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		model.Store(req.Model)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "dog"}},
			},
		})
	}))
	defer server.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	translator := NewTranslatorWithConfig("test-key", config)

	if translator.Model() != DefaultModel {
		t.Errorf("Model() = %q, want %q", translator.Model(), DefaultModel)
	}
	translator.SetModel("")
	if translator.Model() != DefaultModel {
		t.Errorf("empty SetModel changed the model to %q", translator.Model())
	}

	translator.SetModel("gpt-4.1-nano")
	if _, err := translator.TranslateWord(context.Background(), "いぬ"); err != nil {
		t.Fatalf("TranslateWord() error = %v", err)
	}
	if got := model.Load(); got != "gpt-4.1-nano" {
		t.Errorf("request model = %v, want gpt-4.1-nano", got)
	}
}
