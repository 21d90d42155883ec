package pipeline

import "strings"

// SanitizeTargetForFilename строит filesystem-безопасный slug для
// экспортёров отчётов (коллабораторы: HTML/PDF/JSON рендеры).
func SanitizeTargetForFilename(value string) string {
	var b strings.Builder
	for _, ch := range strings.TrimSpace(value) {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9',
			ch == '-', ch == '_', ch == '.':
			b.WriteRune(ch)
		case ch == '@', ch == '+':
			b.WriteRune('_')
		default:
			b.WriteRune('-')
		}
	}
	cleaned := strings.Trim(b.String(), "-_")
	if cleaned == "" {
		return "target"
	}
	return cleaned
}

// buildTargetLabel собирает человекочитаемый target из идентификаторов.
func buildTargetLabel(usernames, emails []string) string {
	var parts []string
	if len(usernames) > 0 {
		parts = append(parts, strings.Join(usernames, "/"))
	}
	if len(emails) > 0 {
		parts = append(parts, strings.Join(emails, "/"))
	}
	label := strings.Join(parts, "/")
	if label == "" {
		return "target"
	}
	return label
}
