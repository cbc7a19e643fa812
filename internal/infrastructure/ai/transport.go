package ai

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

// apiError cuerpo de error común de OpenAI, DeepSeek y Anthropic.
type apiError struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// handleError convierte respuestas >399 en error; resty no lo hace por sí solo.
func handleError(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !res.IsError() {
		return nil
	}
	if e, ok := res.Error().(*apiError); ok && e != nil && e.Error != nil && e.Error.Message != "" {
		return fmt.Errorf("HTTP %d: %s", res.StatusCode(), e.Error.Message)
	}
	return fmt.Errorf("HTTP %d: %s", res.StatusCode(), truncate(string(res.Body()), 200))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
