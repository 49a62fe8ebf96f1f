package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/promptguard/internal/llm"
)

// ChatCall is one request observed by a StubChat.
type ChatCall struct {
	Messages []llm.Message
	Opts     llm.ChatOptions
}

// StubChat is an llm.ChatClient that returns a fixed reply and records
// every call. Reply may be replaced by Respond for input-dependent output.
type StubChat struct {
	Reply   string
	Err     error
	Respond func(messages []llm.Message) (string, error)

	mu    sync.Mutex
	calls []ChatCall
}

func (s *StubChat) Chat(ctx context.Context, messages []llm.Message, opts llm.ChatOptions) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, ChatCall{Messages: messages, Opts: opts})
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Respond != nil {
		return s.Respond(messages)
	}
	return s.Reply, s.Err
}

// Calls returns a copy of the recorded calls.
func (s *StubChat) Calls() []ChatCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatCall(nil), s.calls...)
}
