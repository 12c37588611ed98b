// Package llm wraps the external model calls behind narrow interfaces so the
// workflow stages never depend on a concrete provider and tests can inject
// scripted fakes.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	errx "github.com/shneydor/jeff-the-langgraph-chef/internal/core/error"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// ChatCompleter is the opaque draft-text collaborator: ordered messages in,
// one completion out. Failures are transient upstream errors the stage
// contract classifies as recoverable.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []*schema.Message) (*schema.Message, error)
}

// NewGeminiClient builds the shared genai client reused by the chat and
// image collaborators.
func NewGeminiClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}
	return client, nil
}

// GeminiChat adapts the eino Gemini chat model to ChatCompleter with a
// bounded per-call timeout. Safe for concurrent use.
type GeminiChat struct {
	cm      *gemini.ChatModel
	timeout time.Duration
}

// NewGeminiChat constructs the chat collaborator from the shared client.
func NewGeminiChat(ctx context.Context, client *genai.Client, cfg model.ChatModelConfig, timeout time.Duration) (*GeminiChat, error) {
	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		MaxTokens:   &cfg.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating chat model")
		return nil, fmt.Errorf("error creating chat model: %w", err)
	}
	return &GeminiChat{cm: cm, timeout: timeout}, nil
}

// Complete invokes the model with a deadline; expiry surfaces as a
// recoverable timeout error.
func (g *GeminiChat) Complete(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.cm.Generate(callCtx, messages)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, errx.Timeout(err, "chat model call timed out")
		}
		return nil, fmt.Errorf("chat model call: %w", err)
	}
	return out, nil
}
