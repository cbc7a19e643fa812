package config

import (
	"strings"
	"time"
)

// Proveedores de lenguaje soportados. ProviderNone activa el modo placeholder.
const (
	ProviderOpenAI    = "openai"
	ProviderDeepSeek  = "deepseek"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderNone      = "none"
)

// DefaultLLMTimeout límite por llamada al proveedor cuando LLM_TIMEOUT_SECONDS no está definido.
const DefaultLLMTimeout = 20 * time.Second

// LLMConfig configuración resuelta del cliente de lenguaje. Es un valor inmutable:
// se resuelve una vez y se pasa por copia.
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// HasCredential indica si hay una clave disponible para llamar al proveedor.
func (c LLMConfig) HasCredential() bool {
	return c.Provider != ProviderNone && c.APIKey != ""
}

// LLMOverrides argumentos explícitos que tienen prioridad sobre el entorno.
type LLMOverrides struct {
	Provider string
	APIKey   string
	Model    string
}

// providerKeyVars orden de la heurística de credenciales cuando no hay LLM_API_KEY.
var providerKeyVars = []struct {
	provider string
	envVar   string
}{
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderDeepSeek, "DEEPSEEK_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderGemini, "GEMINI_API_KEY"},
}

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-4.1-mini",
	ProviderDeepSeek:  "deepseek-chat",
	ProviderAnthropic: "claude-3-5-haiku-20241022",
	ProviderGemini:    "gemini-2.5-flash-lite",
}

var defaultBaseURLs = map[string]string{
	ProviderOpenAI:    "https://api.openai.com/v1",
	ProviderDeepSeek:  "https://api.deepseek.com/v1",
	ProviderAnthropic: "https://api.anthropic.com",
}

// DefaultModel modelo por defecto de un proveedor ("" si no tiene).
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// ResolveLLM resuelve proveedor, clave, modelo, URL base y timeout.
// Precedencia por campo: override explícito, LLM_* del entorno, heurística de credenciales, modo none.
// Nunca falla: sin credencial el resultado es el proveedor none.
func ResolveLLM(lookup func(string) string, o LLMOverrides) LLMConfig {
	get := func(key string) string { return strings.TrimSpace(lookup(key)) }

	provider := strings.ToLower(strings.TrimSpace(o.Provider))
	if provider == "" {
		provider = strings.ToLower(get("LLM_PROVIDER"))
	}
	key := strings.TrimSpace(o.APIKey)
	if key == "" {
		key = get("LLM_API_KEY")
	}
	model := strings.TrimSpace(o.Model)
	if model == "" {
		model = get("LLM_MODEL")
	}

	if key == "" {
		if provider != "" {
			for _, p := range providerKeyVars {
				if p.provider == provider {
					key = get(p.envVar)
					break
				}
			}
		} else {
			for _, p := range providerKeyVars {
				if k := get(p.envVar); k != "" {
					key, provider = k, p.provider
					break
				}
			}
		}
	}

	if provider == "" && key != "" {
		provider = ProviderOpenAI
	}
	if _, known := defaultModels[provider]; !known {
		provider = ProviderNone
	}

	cfg := LLMConfig{
		Provider: provider,
		APIKey:   key,
		Timeout:  secondsOr(get("LLM_TIMEOUT_SECONDS"), DefaultLLMTimeout),
	}
	if provider == ProviderNone {
		cfg.APIKey = ""
		return cfg
	}
	cfg.Model = model
	if cfg.Model == "" {
		cfg.Model = defaultModels[provider]
	}
	cfg.BaseURL = strings.TrimRight(get("LLM_BASE_URL"), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURLs[provider]
	}
	return cfg
}
