package ports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
)

func TestGenerationResult_String(t *testing.T) {
	ok := ports.GenerationResult{Text: "  Fresh apples.\n"}
	assert.Equal(t, "Fresh apples.", ok.String())
	assert.False(t, ok.Failed())

	failed := ports.GenerationResult{Failure: &ports.GenerationFailure{Provider: "openai", Model: "gpt-4.1-mini", Cause: "timeout"}}
	assert.True(t, failed.Failed())
	assert.Equal(t, "[AI Error] provider=openai, model=gpt-4.1-mini, error=timeout", failed.String())
}
