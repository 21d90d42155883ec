package llm

import (
	"regexp"
	"strings"
)

// Известные шаблонные ответы: модель вернула пример из промпта вместо
// содержательного отчёта.
var boilerplateSummaries = map[string]bool{
	"markdown text with the six sections above.":                   true,
	"long markdown text with the 6 sections detailed above.":       true,
	"texto largo en markdown con las 6 secciones detalladas arriba.": true,
	"texto en markdown con las seis secciones detalladas arriba.":  true,
}

var placeholderHighlights = map[string]bool{
	"3-5 high-impact deductions.":                                      true,
	"list of 3-5 quick high-impact deductions (bullet points)":         true,
	"lista de 3-5 deducciones rápidas y de alto impacto (bullet points)": true,
	"...":                                                              true,
	"…":                                                                true,
}

// IsTemplateResponse распознаёт boilerplate-ответ провайдера.
//
// Признаки: известная шаблонная фраза в summary; пустые highlights;
// все highlights — плейсхолдеры; отсутствие якорей "## 1." и "## 6.".
func IsTemplateResponse(summary string, highlights []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(summary))
	if boilerplateSummaries[normalized] {
		return true
	}

	if len(highlights) == 0 {
		return true
	}

	allPlaceholders := true
	for _, h := range highlights {
		if !placeholderHighlights[strings.ToLower(strings.TrimSpace(h))] {
			allPlaceholders = false
			break
		}
	}
	if allPlaceholders {
		return true
	}

	if !strings.Contains(summary, "## 1.") || !strings.Contains(summary, "## 6.") {
		return true
	}

	return false
}

var nextHeadingPattern = regexp.MustCompile(`(?m)^\s*## `)

// SanitizeSummary обрезает summary по концу шестой секции.
//
// Оставляем всё до следующего "## " заголовка после маркера "## 6.";
// мусорные заголовки "## Highlights"/"## Confidence" режут раньше.
func SanitizeSummary(summary string) string {
	idx6 := strings.Index(summary, "## 6.")
	if idx6 == -1 {
		return strings.TrimSpace(summary)
	}

	rest := summary[idx6:]
	cut := len(rest)

	// Следующий заголовок после самого маркера "## 6."
	const markerLen = len("## 6.")
	if m := nextHeadingPattern.FindStringIndex(rest[markerLen:]); m != nil {
		cut = markerLen + m[0]
	}

	for _, junk := range []string{"## Highlights", "## Confidence"} {
		if j := strings.Index(rest, junk); j >= 0 && j < cut {
			cut = j
		}
	}

	return strings.TrimSpace(summary[:idx6+cut])
}
