package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/pkg/config"
)

var _ ports.TextGenerator = (*geminiGenerator)(nil)

// geminiGenerator adaptador sobre el SDK oficial de Google Gemini.
type geminiGenerator struct {
	apiKey  string
	model   string
	baseURL string
}

func newGemini(cfg config.LLMConfig) *geminiGenerator {
	return &geminiGenerator{apiKey: cfg.APIKey, model: cfg.Model, baseURL: cfg.BaseURL}
}

func (g *geminiGenerator) Provider() string { return config.ProviderGemini }
func (g *geminiGenerator) Model() string    { return g.model }

func (g *geminiGenerator) GenerateText(ctx context.Context, req ports.GenerationRequest) ports.GenerationResult {
	if g.model == "" {
		return failure(g, errNoModel)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return failure(g, fmt.Errorf("crear cliente Gemini: %w", err))
	}

	result, err := client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(req.Prompt)}, genai.RoleUser),
	}, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens),
	})
	if err != nil {
		return failure(g, err)
	}
	if len(result.Candidates) == 0 || strings.TrimSpace(result.Text()) == "" {
		return failure(g, errors.New("Gemini devolvió respuesta vacía"))
	}

	out := ports.GenerationResult{Text: strings.TrimSpace(result.Text())}
	if result.UsageMetadata != nil {
		out.Usage = ports.TokenUsage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out
}
