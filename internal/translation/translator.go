package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// ErrNoAPIKey is returned when no OpenAI API key is configured
var ErrNoAPIKey = errors.New("OpenAI API key not found")

// DefaultModel is the chat model used for meaning lookups
const DefaultModel = openai.GPT4oMini

// Translator looks up short English meanings of Japanese words
type Translator struct {
	apiKey string
	model  string
	client *openai.Client
	cache  *TranslationCache
}

// NewTranslator creates a new translator instance
func NewTranslator(apiKey string) *Translator {
	return NewTranslatorWithConfig(apiKey, openai.DefaultConfig(apiKey))
}

// NewTranslatorWithConfig creates a translator with a custom client
// configuration, for example a different base URL
func NewTranslatorWithConfig(apiKey string, config openai.ClientConfig) *Translator {
	return &Translator{
		apiKey: apiKey,
		model:  DefaultModel,
		client: openai.NewClientWithConfig(config),
		cache:  NewTranslationCache(),
	}
}

// Enabled reports whether an API key is configured
func (t *Translator) Enabled() bool {
	return t.apiKey != ""
}

// SetModel changes the chat model. An empty name keeps the current one.
func (t *Translator) SetModel(model string) {
	if model != "" {
		t.model = model
	}
}

// Model returns the chat model used for lookups
func (t *Translator) Model() string {
	return t.model
}

// Cache returns the translator's memo of earlier lookups
func (t *Translator) Cache() *TranslationCache {
	return t.cache
}

// TranslateWord returns a short English meaning for a Japanese word.
// Results are memoised per word.
func (t *Translator) TranslateWord(ctx context.Context, word string) (string, error) {
	if t.apiKey == "" {
		return "", ErrNoAPIKey
	}

	word = strings.TrimSpace(word)
	if word == "" {
		return "", fmt.Errorf("empty word")
	}
	if meaning, ok := t.cache.Get(word); ok {
		return meaning, nil
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Give the English meaning of the Japanese word '%s' in at most five words. Respond with only the meaning, nothing else.", word),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	meaning := strings.TrimSpace(resp.Choices[0].Message.Content)
	if meaning == "" {
		return "", fmt.Errorf("no translation returned")
	}

	slog.Debug("Looked up meaning", "word", word, "meaning", meaning)
	t.cache.Add(word, meaning)
	return meaning, nil
}

// TranslationCache stores meanings in memory. It is safe for concurrent use.
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(word, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[word] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(word string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[word]
	return translation, ok
}

// GetAll returns all cached translations
func (tc *TranslationCache) GetAll() map[string]string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make(map[string]string, len(tc.translations))
	for k, v := range tc.translations {
		result[k] = v
	}
	return result
}
