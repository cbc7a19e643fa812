// Package ai implementa el cliente de lenguaje: una capacidad única (ports.TextGenerator)
// con variantes por proveedor elegidas al construir a partir de config.LLMConfig.
package ai

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
	"github.com/jhoicas/agromarket-api/pkg/config"
)

var _ ports.LanguageClient = (*Client)(nil)

var errNoModel = errors.New("no model configured, set LLM_MODEL")

// Client cliente de lenguaje de alto nivel. Nunca devuelve error: los fallos del proveedor
// se reflejan en el GenerationResult.
type Client struct {
	gen     ports.TextGenerator
	timeout time.Duration
}

// NewClient elige la variante según cfg. Sin credencial se usa el placeholder.
func NewClient(cfg config.LLMConfig) *Client {
	return NewClientWithGenerator(selectGenerator(cfg), cfg.Timeout)
}

// NewClientWithGenerator construye el cliente sobre un generador concreto.
func NewClientWithGenerator(gen ports.TextGenerator, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = config.DefaultLLMTimeout
	}
	return &Client{gen: gen, timeout: timeout}
}

func selectGenerator(cfg config.LLMConfig) ports.TextGenerator {
	if !cfg.HasCredential() {
		return newPlaceholder(cfg)
	}
	switch cfg.Provider {
	case config.ProviderOpenAI, config.ProviderDeepSeek:
		return newOpenAICompatible(cfg)
	case config.ProviderAnthropic:
		return newAnthropic(cfg)
	case config.ProviderGemini:
		return newGemini(cfg)
	default:
		return newPlaceholder(cfg)
	}
}

// Provider proveedor activo ("none" en modo placeholder).
func (c *Client) Provider() string { return c.gen.Provider() }

// Model modelo activo.
func (c *Client) Model() string { return c.gen.Model() }

// GenerateProductDescription copia de marketing de un párrafo en el idioma indicado.
func (c *Client) GenerateProductDescription(ctx context.Context, facts ports.ProductFacts, lang ports.Language) ports.GenerationResult {
	return c.generate(ctx, "description", ports.GenerationRequest{
		Prompt:      descriptionPrompt(facts, lang),
		MaxTokens:   descriptionMaxTokens,
		Temperature: descriptionTemperature,
	})
}

// AnswerQuestion respuesta breve a una pregunta de comprador a partir del contexto del producto.
func (c *Client) AnswerQuestion(ctx context.Context, question, productContext string) ports.GenerationResult {
	return c.generate(ctx, "answer", ports.GenerationRequest{
		Prompt:      answerPrompt(question, productContext),
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
}

func (c *Client) generate(ctx context.Context, operation string, req ports.GenerationRequest) ports.GenerationResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	res := c.gen.GenerateText(ctx, req)
	if res.Placeholder {
		return res
	}

	if res.Failed() {
		log.Warn().
			Str("provider", res.Failure.Provider).
			Str("model", res.Failure.Model).
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Str("cause", res.Failure.Cause).
			Msg("llm call fallida")
		return res
	}

	log.Info().
		Str("provider", c.gen.Provider()).
		Str("model", c.gen.Model()).
		Str("operation", operation).
		Int("inputTokens", res.Usage.InputTokens).
		Int("outputTokens", res.Usage.OutputTokens).
		Dur("duration", time.Since(start)).
		Msg("llm call")
	return res
}

// failure construye el resultado de fallo con proveedor y modelo del generador.
func failure(g ports.TextGenerator, err error) ports.GenerationResult {
	return ports.GenerationResult{Failure: &ports.GenerationFailure{
		Provider: g.Provider(),
		Model:    g.Model(),
		Cause:    err.Error(),
	}}
}
