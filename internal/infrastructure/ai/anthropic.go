package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/pkg/config"
)

var _ ports.TextGenerator = (*anthropicGenerator)(nil)

const anthropicVersion = "2023-06-01"

// anthropicGenerator adaptador para la Messages API de Anthropic (Claude).
type anthropicGenerator struct {
	model string
	http  *resty.Client
}

func newAnthropic(cfg config.LLMConfig) *anthropicGenerator {
	return &anthropicGenerator{
		model: cfg.Model,
		http: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetHeaders(map[string]string{
				"x-api-key":         cfg.APIKey,
				"anthropic-version": anthropicVersion,
				"content-type":      "application/json",
			}),
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float32            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (g *anthropicGenerator) Provider() string { return config.ProviderAnthropic }
func (g *anthropicGenerator) Model() string    { return g.model }

func (g *anthropicGenerator) GenerateText(ctx context.Context, req ports.GenerationRequest) ports.GenerationResult {
	if g.model == "" {
		return failure(g, errNoModel)
	}

	var out anthropicResponse
	err := handleError(g.http.R().
		SetContext(ctx).
		SetBody(anthropicRequest{
			Model:       g.model,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
			Messages:    []anthropicMessage{{Role: "user", Content: req.Prompt}},
		}).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/v1/messages"))
	if err != nil {
		return failure(g, err)
	}

	var sb strings.Builder
	for _, c := range out.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return failure(g, errors.New("Claude devolvió respuesta vacía"))
	}

	return ports.GenerationResult{
		Text: text,
		Usage: ports.TokenUsage{
			InputTokens:  out.Usage.InputTokens,
			OutputTokens: out.Usage.OutputTokens,
		},
	}
}
