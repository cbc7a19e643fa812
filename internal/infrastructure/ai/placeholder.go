package ai

import (
	"context"
	"strings"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/pkg/config"
)

var _ ports.TextGenerator = (*placeholderGenerator)(nil)

const placeholderPreviewRunes = 160

// placeholderGenerator variante sin credenciales: devuelve un texto marcado sin llamar a la red.
type placeholderGenerator struct {
	provider string
	model    string
}

func (p *placeholderGenerator) Provider() string { return p.provider }
func (p *placeholderGenerator) Model() string    { return p.model }

func (p *placeholderGenerator) GenerateText(_ context.Context, req ports.GenerationRequest) ports.GenerationResult {
	return ports.GenerationResult{Text: PlaceholderText(req.Prompt), Placeholder: true}
}

// PlaceholderText "[Dummy AI Output] <primeros 160 caracteres del prompt> ...".
func PlaceholderText(prompt string) string {
	r := []rune(prompt)
	if len(r) > placeholderPreviewRunes {
		r = r[:placeholderPreviewRunes]
	}
	short := strings.ReplaceAll(string(r), "\n", " ")
	return "[Dummy AI Output] " + short + " ..."
}

func newPlaceholder(cfg config.LLMConfig) *placeholderGenerator {
	provider := cfg.Provider
	if provider == "" {
		provider = config.ProviderNone
	}
	return &placeholderGenerator{provider: provider, model: cfg.Model}
}
