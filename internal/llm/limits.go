package llm

import "strings"

// PayloadLimits определяет бюджет evidence-пейлоада для IA-провайдера.
type PayloadLimits struct {
	MaxProfiles        int
	MaxBioChars        int
	MaxLocationChars   int
	MaxTimestamps      int
	MaxTextSamples     int
	MaxTextSampleChars int
	MaxConfirmedURLs   int
	MaxEmails          int
	MaxHandles         int
	MaxReusedHandles   int
	MaxBreachSummary   int
}

// DefaultPayloadLimits возвращает бюджет по умолчанию.
func DefaultPayloadLimits() PayloadLimits {
	return PayloadLimits{
		MaxProfiles:        30,
		MaxBioChars:        420,
		MaxLocationChars:   140,
		MaxTimestamps:      60,
		MaxTextSamples:     16,
		MaxTextSampleChars: 320,
		MaxConfirmedURLs:   60,
		MaxEmails:          20,
		MaxHandles:         40,
		MaxReusedHandles:   20,
		MaxBreachSummary:   10,
	}
}

// Truncate обрезает строку до maxLen рун, завершая одиночным многоточием.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen-1]) + "…"
}
