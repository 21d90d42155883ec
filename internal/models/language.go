package models

// Language — язык пользовательского вывода (промпты и отчёты).
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
)

// DefaultLanguage возвращает язык по умолчанию.
func DefaultLanguage() Language {
	return LanguageEnglish
}

// ParseLanguage нормализует строку конфига в Language.
func ParseLanguage(value string) Language {
	switch value {
	case "es", "spanish", "Spanish":
		return LanguageSpanish
	default:
		return LanguageEnglish
	}
}

// Label — человекочитаемое имя языка для промптов и логов.
func (l Language) Label() string {
	if l == LanguageSpanish {
		return "Spanish"
	}
	return "English"
}
