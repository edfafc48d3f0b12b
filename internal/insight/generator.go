package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	insighterrors "github.com/mohammed4122002/workflow-pro-backend/internal/insight/errors"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/contextutil"
)

//go:generate mockgen -source=generator.go -destination=mock/generator_mock.go -package=mock

// ResponseSchema constrains the model output to a named JSON schema.
type ResponseSchema struct {
	Name   string
	Schema json.RawMessage
}

// Generator produces schema-constrained JSON from a prompt pair.
type Generator interface {
	Complete(ctx context.Context, system, user string, schema ResponseSchema) (json.RawMessage, error)
}

// GeneratorConfig points at any OpenAI-compatible chat completions API.
type GeneratorConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

const defaultModel = "gpt-4o-mini"

type openAIGenerator struct {
	cfg    GeneratorConfig
	client *http.Client
}

func NewGenerator(cfg GeneratorConfig) Generator {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &openAIGenerator{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string         `json:"type"`
	JSONSchema jsonSchemaSpec `json:"json_schema"`
}

type jsonSchemaSpec struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *openAIGenerator) Complete(ctx context.Context, system, user string, schema ResponseSchema) (json.RawMessage, error) {
	l := contextutil.GetLogger(ctx, nil)

	if g.cfg.APIKey == "" {
		return nil, insighterrors.ErrModelUnavailable
	}

	payload := chatCompletionRequest{
		Model:       g.cfg.Model,
		Temperature: 0.2,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchemaSpec{
				Name:   schema.Name,
				Strict: true,
				Schema: schema.Schema,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimSuffix(g.cfg.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		l.Error("model request failed", zap.Error(err))
		return nil, insighterrors.ErrUpstreamRequest
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, insighterrors.ErrUpstreamRequest
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		l.Error("model returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return nil, insighterrors.ErrUpstreamRequest
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, insighterrors.ErrUpstreamBadPayload
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, insighterrors.ErrUpstreamEmpty
	}

	content := json.RawMessage(parsed.Choices[0].Message.Content)
	if !json.Valid(content) {
		return nil, insighterrors.ErrUpstreamBadPayload
	}

	return content, nil
}
