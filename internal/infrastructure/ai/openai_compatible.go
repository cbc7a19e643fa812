package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/pkg/config"
)

var _ ports.TextGenerator = (*openAICompatibleGenerator)(nil)

// openAICompatibleGenerator adaptador para APIs con el protocolo chat/completions (OpenAI y DeepSeek).
type openAICompatibleGenerator struct {
	provider string
	model    string
	http     *resty.Client
}

func newOpenAICompatible(cfg config.LLMConfig) *openAICompatibleGenerator {
	return &openAICompatibleGenerator{
		provider: cfg.Provider,
		model:    cfg.Model,
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetHeaders(map[string]string{
				"Authorization": "Bearer " + cfg.APIKey,
				"Content-Type":  "application/json",
			}),
	}
}

// ── Protocolo chat/completions ───────────────────────────────────────────────

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (g *openAICompatibleGenerator) Provider() string { return g.provider }
func (g *openAICompatibleGenerator) Model() string    { return g.model }

func (g *openAICompatibleGenerator) GenerateText(ctx context.Context, req ports.GenerationRequest) ports.GenerationResult {
	if g.model == "" {
		return failure(g, errNoModel)
	}

	var out chatCompletionResponse
	err := handleError(g.http.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{
			Model:       g.model,
			Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		}).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/chat/completions"))
	if err != nil {
		return failure(g, err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return failure(g, errors.New("respuesta vacía del modelo"))
	}

	return ports.GenerationResult{
		Text: strings.TrimSpace(out.Choices[0].Message.Content),
		Usage: ports.TokenUsage{
			InputTokens:  out.Usage.PromptTokens,
			OutputTokens: out.Usage.CompletionTokens,
		},
	}
}
