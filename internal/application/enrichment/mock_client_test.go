package enrichment_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
)

// MockLanguageClient cliente de lenguaje simulado con testify/mock.
type MockLanguageClient struct {
	mock.Mock
}

func (m *MockLanguageClient) Provider() string { return "mock" }
func (m *MockLanguageClient) Model() string    { return "mock-1" }

func (m *MockLanguageClient) GenerateProductDescription(ctx context.Context, facts ports.ProductFacts, lang ports.Language) ports.GenerationResult {
	args := m.Called(ctx, facts, lang)
	return args.Get(0).(ports.GenerationResult)
}

func (m *MockLanguageClient) AnswerQuestion(ctx context.Context, question, productContext string) ports.GenerationResult {
	args := m.Called(ctx, question, productContext)
	return args.Get(0).(ports.GenerationResult)
}

func text(s string) ports.GenerationResult { return ports.GenerationResult{Text: s} }

func failed(cause string) ports.GenerationResult {
	return ports.GenerationResult{Failure: &ports.GenerationFailure{Provider: "mock", Model: "mock-1", Cause: cause}}
}

// describing prepara el mock para devolver descripciones fijas en ambos idiomas.
func describing(m *MockLanguageClient, en, zh ports.GenerationResult) *MockLanguageClient {
	m.On("GenerateProductDescription", mock.Anything, mock.Anything, ports.LanguageEnglish).Return(en)
	m.On("GenerateProductDescription", mock.Anything, mock.Anything, ports.LanguageChinese).Return(zh)
	return m
}
