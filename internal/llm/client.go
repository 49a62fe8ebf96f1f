package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatOptions overrides the client defaults for a single call.
// Empty fields fall back to the configured values.
type ChatOptions struct {
	Model    string
	Endpoint string
}

// ChatClient sends a chat conversation to a model and returns its raw text.
type ChatClient interface {
	// Chat sends messages and returns the trimmed completion text.
	Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error)
}

// Pinger checks whether a backend is reachable.
type Pinger interface {
	Available(ctx context.Context, endpoint string) bool
}

// Client is a ChatClient that can also report backend reachability.
type Client interface {
	ChatClient
	Pinger
}

// ollamaClient implements Client using the Ollama HTTP chat API.
type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient creates a ChatClient that talks to an Ollama-compatible server.
// The client performs exactly one request per call; wrap it with WithRetry
// to add deadlines and retries.
func NewOllamaClient(cfg LLMConfig, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// chatRequest is the JSON body sent to POST /api/chat.
type chatRequest struct {
	Model    string      `json:"model"`
	Messages []Message   `json:"messages"`
	Stream   bool        `json:"stream"`
	Options  chatOptions `json:"options"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse covers both the native Ollama schema and the
// OpenAI-compatible one some proxies return.
type chatResponse struct {
	Model   string       `json:"model"`
	Message *chatMessage `json:"message"`
	Choices []struct {
		Message *chatMessage `json:"message"`
	} `json:"choices"`
}

// contentExtractor pulls completion text out of one schema location.
type contentExtractor func(chatResponse) string

// contentExtractors are tried in order; the first non-empty result wins.
var contentExtractors = []contentExtractor{
	func(r chatResponse) string {
		if r.Message == nil {
			return ""
		}
		return r.Message.Content
	},
	func(r chatResponse) string {
		if len(r.Choices) == 0 || r.Choices[0].Message == nil {
			return ""
		}
		return r.Choices[0].Message.Content
	},
}

func (r chatResponse) text() string {
	for _, extract := range contentExtractors {
		if s := extract(r); s != "" {
			return s
		}
	}
	return ""
}

func (c *ollamaClient) Chat(ctx context.Context, messages []Message, opts ChatOptions) (string, error) {
	start := time.Now()

	model := opts.Model
	if model == "" {
		model = c.cfg.Model
	}
	endpoint := c.endpoint(opts.Endpoint)

	body := chatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Options:  chatOptions{Temperature: 0},
	}

	resp, err := c.doRequest(ctx, endpoint, body)

	event := CallEvent{
		Model:     model,
		Endpoint:  endpoint,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		event.StatusCode = statusErr.StatusCode
	}
	if err != nil {
		err = classify(ctx, err)
		event.ErrorCode = errorCode(err)
	}
	c.observer.OnCallComplete(event)

	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.text()), nil
}

func (c *ollamaClient) endpoint(override string) string {
	url := override
	if url == "" {
		url = c.cfg.Endpoint
	}
	if url == "" {
		url = DefaultEndpoint
	}
	return strings.TrimRight(url, "/")
}

func (c *ollamaClient) doRequest(ctx context.Context, endpoint string, body chatRequest) (*chatResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &resp, nil
}

// Available checks whether the Ollama server at endpoint answers /api/tags.
// An empty endpoint uses the configured one.
func (c *ollamaClient) Available(ctx context.Context, endpoint string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(endpoint)+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// classify maps transport failures onto the package sentinels.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return err
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrOllamaUnavailable, err)
	default:
		return err
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrOllamaUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrBackendStatus):
		return "STATUS"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}
