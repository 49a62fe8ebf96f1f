package guard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/promptguard/internal/llm"
)

// Config selects the classifier for one call. Empty fields use the
// defaults of the underlying chat client.
type Config struct {
	Model    string `json:"model,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Merge returns c with empty fields filled from base.
func (c Config) Merge(base Config) Config {
	if c.Model == "" {
		c.Model = base.Model
	}
	if c.Endpoint == "" {
		c.Endpoint = base.Endpoint
	}
	return c
}

// Service adjudicates operations through a guard classifier.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	client llm.ChatClient
}

// NewService creates a Service backed by client.
func NewService(client llm.ChatClient) *Service {
	return &Service{client: client}
}

// Check classifies a single payload. Strings are sent as-is; anything else
// is JSON-encoded first. Only backend failures are returned as errors.
func (s *Service) Check(ctx context.Context, payload any, cfg Config) (Result, error) {
	messages := []llm.Message{
		{Role: llm.RoleUser, Content: Augment(stringify(payload))},
	}
	return s.classify(ctx, messages, cfg, ContentLabels)
}

// CheckConversation classifies an assistant response in the context of the
// user message that prompted it.
func (s *Service) CheckConversation(ctx context.Context, user, assistant string, cfg Config) (Result, error) {
	messages := []llm.Message{
		{Role: llm.RoleUser, Content: Augment(user)},
		{Role: llm.RoleAssistant, Content: assistant},
	}
	return s.classify(ctx, messages, cfg, ConversationLabels)
}

func (s *Service) classify(ctx context.Context, messages []llm.Message, cfg Config, labels Labels) (Result, error) {
	raw, err := s.client.Chat(ctx, messages, llm.ChatOptions{
		Model:    cfg.Model,
		Endpoint: cfg.Endpoint,
	})
	if err != nil {
		return Result{}, fmt.Errorf("classifying content: %w", err)
	}
	return Interpret(raw, labels), nil
}

func stringify(payload any) string {
	if s, ok := payload.(string); ok {
		return s
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprint(payload)
	}
	return string(data)
}
