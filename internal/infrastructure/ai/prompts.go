package ai

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
)

// Parámetros de generación por operación.
const (
	descriptionMaxTokens   = 180
	descriptionTemperature = 0.6
	answerMaxTokens        = 200
	answerTemperature      = 0.5
)

func formatPrompt(text string, a ...any) string {
	return fmt.Sprintf(strings.TrimSpace(dedent.Dedent(text)), a...)
}

func descriptionPrompt(f ports.ProductFacts, lang ports.Language) string {
	return formatPrompt(`
		Write a concise e-commerce product description in %s for an agricultural product.
		- Name: %s
		- Category: %s
		- Unit: %s
		- Stock: %d
		Write a single persuasive but factual paragraph without bullet points, 60-100 words.
		Tone: trustworthy and specific; avoid hype. You may mention availability in natural language.`,
		languageName(lang), f.Name, f.Category, f.Unit, f.Stock,
	)
}

func answerPrompt(question, productContext string) string {
	return formatPrompt(`
		You are a concise customer support assistant for an agricultural marketplace.
		If price, stock, or logistics are asked, prefer the numbers in the context.
		Product context:
		%s
		Question: %s
		Answer briefly (1-3 sentences).`,
		productContext, question,
	)
}
