// Package openai wraps the OpenAI chat-completion API behind the
// completion contract used by the chat usecase.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/drivelane/showroom/internal/domain"
	"github.com/drivelane/showroom/internal/metrics"
)

const providerLabel = "openai"

// Config holds completion client settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Message is one turn of conversational context for the model.
type Message struct {
	Role    string
	Content string
}

// Completer calls the chat-completion endpoint.
type Completer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewCompleter creates a completion client.
func NewCompleter(cfg Config) (*Completer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Completer{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: timeout,
	}, nil
}

// Complete sends the system prompt and conversation to the model and
// returns the assistant reply.
func (c *Completer) Complete(ctx context.Context, system string, msgs []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(msgs)+1),
	}
	if system != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, m := range msgs {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	metrics.CompletionRequestDuration.WithLabelValues(providerLabel, c.model).
		Observe(time.Since(start).Seconds())

	if err != nil {
		status := statusLabel(err)
		metrics.CompletionRequestsTotal.WithLabelValues(providerLabel, c.model, status).Inc()
		return "", parseAPIError(err)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(providerLabel, c.model, "ok").Inc()
	metrics.CompletionTokensTotal.WithLabelValues(providerLabel, c.model, "prompt").
		Add(float64(resp.Usage.PromptTokens))
	metrics.CompletionTokensTotal.WithLabelValues(providerLabel, c.model, "completion").
		Add(float64(resp.Usage.CompletionTokens))

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", domain.ErrCompletionProviderError)
	}
	return resp.Choices[0].Message.Content, nil
}

// Ping issues a minimal request to verify credentials and reachability.
func (c *Completer) Ping(ctx context.Context) error {
	_, err := c.Complete(ctx, "", []Message{{Role: openai.ChatMessageRoleUser, Content: "ping"}})
	return err
}

func statusLabel(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return strconv.Itoa(apiErr.HTTPStatusCode)
	}
	return "error"
}

func parseAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", domain.ErrRateLimited, apiErr.Message)
		default:
			return fmt.Errorf("%w: status %d: %s",
				domain.ErrCompletionProviderError, apiErr.HTTPStatusCode, apiErr.Message)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrCompletionProviderError, err)
}
