package ai

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/jhoicas/agromarket-api/internal/application/ports"
)

var (
	chineseBase, _ = language.Chinese.Base()

	languageAliases = map[string]ports.Language{
		"cn":      ports.LanguageChinese,
		"chinese": ports.LanguageChinese,
		"english": ports.LanguageEnglish,
	}
)

// ParseLanguage normaliza un código de idioma libre ("zh", "zh-CN", "cn", "chinese", "en"...).
// Cualquier valor no reconocido como chino es inglés.
func ParseLanguage(s string) ports.Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := languageAliases[s]; ok {
		return l
	}
	tag, err := language.Parse(s)
	if err != nil {
		return ports.LanguageEnglish
	}
	if base, _ := tag.Base(); base == chineseBase {
		return ports.LanguageChinese
	}
	return ports.LanguageEnglish
}

// languageName nombre en inglés del idioma para el prompt ("English", "Chinese").
func languageName(l ports.Language) string {
	tag := language.English
	if l == ports.LanguageChinese {
		tag = language.Chinese
	}
	return display.English.Languages().Name(tag)
}
