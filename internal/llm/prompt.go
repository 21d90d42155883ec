package llm

import (
	"strings"

	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

const (
	maxTokensFull    = 1800
	maxTokensCompact = 1100

	analysisTemperature = 0.2
)

// isLowTPMHost — провайдеры с жёстким TPM лимитом, где полный промпт
// не влезает в бюджет маленькой модели.
func isLowTPMHost(baseURL string) bool {
	return strings.Contains(strings.ToLower(baseURL), "groq.com")
}

// isSmallModel — имя модели сигнализирует маленькую модель.
func isSmallModel(model string) bool {
	m := strings.ToLower(model)
	return strings.Contains(m, "8b") || strings.Contains(m, "instant")
}

// fallbackModelFor возвращает запасную модель хоста (если известна).
func fallbackModelFor(baseURL string) string {
	if isLowTPMHost(baseURL) {
		return "llama-3.1-8b-instant"
	}
	return ""
}

// SelectPrompt выбирает вариант промпта и бюджет токенов.
// Компакт выбирается только для low-TPM хоста с маленькой моделью.
func SelectPrompt(baseURL, model string, lang models.Language) (string, int) {
	compact := isLowTPMHost(baseURL) && isSmallModel(model)

	var prompt string
	switch {
	case lang == models.LanguageSpanish && compact:
		prompt = profilerPromptCompactES
	case lang == models.LanguageSpanish:
		prompt = profilerPromptES
	case compact:
		prompt = profilerPromptCompactEN
	default:
		prompt = profilerPromptEN
	}

	if compact {
		return prompt, maxTokensCompact
	}
	return prompt, maxTokensFull
}

// correctionMessage — self-correcting ход после шаблонного или
// невалидного ответа.
func correctionMessage(lang models.Language) string {
	if lang == models.LanguageSpanish {
		return "Tu respuesta no fue válida. Reescribe SOLO un objeto JSON estricto: " +
			`{"summary": markdown con las SEIS secciones "## 1." a "## 6.", ` +
			`"highlights": 3-5 deducciones REALES basadas en la evidencia (sin placeholders), ` +
			`"confidence": 0.0 a 1.0}. Cierra todas las llaves.`
	}
	return "Your reply was not valid. Rewrite ONLY a strictly valid JSON object: " +
		`{"summary": markdown with ALL SIX sections "## 1." through "## 6.", ` +
		`"highlights": 3-5 REAL deductions grounded in the evidence (no placeholders), ` +
		`"confidence": 0.0 to 1.0}. Close every brace.`
}
