package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Model IDs containing one of these are not chat models
var nonChat = []string{"tts", "audio", "dall-e", "embedding", "whisper", "moderation", "realtime", "transcribe", "image", "search"}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return NewListerWithConfig(apiKey, openai.DefaultConfig(apiKey))
}

// NewListerWithConfig creates a lister with a custom client configuration
func NewListerWithConfig(apiKey string, config openai.ClientConfig) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// ChatModels returns the sorted IDs of the chat models available to the key
func (l *Lister) ChatModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure meaning.openai_key in .kanacards.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var chat []string
	for _, model := range models.Models {
		if isChatModel(model.ID) {
			chat = append(chat, model.ID)
		}
	}
	sort.Strings(chat)
	return chat, nil
}

func isChatModel(id string) bool {
	for _, s := range nonChat {
		if strings.Contains(id, s) {
			return false
		}
	}
	return strings.HasPrefix(id, "gpt-") || strings.HasPrefix(id, "chatgpt-") ||
		(len(id) > 1 && id[0] == 'o' && id[1] >= '0' && id[1] <= '9')
}

// ListAvailableModels writes the chat models to w, marking current
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer, current string) error {
	models, err := l.ChatModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Chat models for meaning lookups:")
	if len(models) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}
	for _, model := range models {
		marker := " "
		if model == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, model)
	}
	return nil
}
