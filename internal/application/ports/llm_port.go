package ports

import (
	"context"
	"fmt"
	"strings"
)

// GenerationRequest petición de texto a un proveedor de lenguaje.
type GenerationRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// TokenUsage consumo reportado por el proveedor (ceros si no lo reporta).
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
}

// GenerationFailure describe un fallo del proveedor. Nunca se propaga como error.
type GenerationFailure struct {
	Provider string
	Model    string
	Cause    string
}

// GenerationResult resultado de una generación: texto, placeholder o fallo.
type GenerationResult struct {
	Text        string
	Placeholder bool
	Failure     *GenerationFailure
	Usage       TokenUsage
}

// Failed indica si la generación terminó en fallo.
func (r GenerationResult) Failed() bool { return r.Failure != nil }

// String devuelve el texto visible: el del modelo, el placeholder o "[AI Error] ...".
func (r GenerationResult) String() string {
	if r.Failure != nil {
		return fmt.Sprintf("[AI Error] provider=%s, model=%s, error=%s", r.Failure.Provider, r.Failure.Model, r.Failure.Cause)
	}
	return strings.TrimSpace(r.Text)
}

// TextGenerator puerto de salida hacia un proveedor de lenguaje (OpenAI, DeepSeek, Anthropic, Gemini, placeholder).
// GenerateText no devuelve error: los fallos viajan en GenerationResult.Failure.
type TextGenerator interface {
	Provider() string
	Model() string
	GenerateText(ctx context.Context, req GenerationRequest) GenerationResult
}

// Language idioma de la copia de marketing.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
)

// ProductFacts datos del producto que recibe el prompt de descripción.
type ProductFacts struct {
	Name     string
	Category string
	Unit     string
	Stock    int
}

// LanguageClient capacidades de alto nivel que consume el orquestador.
type LanguageClient interface {
	Provider() string
	Model() string
	GenerateProductDescription(ctx context.Context, facts ProductFacts, lang Language) GenerationResult
	AnswerQuestion(ctx context.Context, question, productContext string) GenerationResult
}
