package pipeline

import (
	"strings"

	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// Ключи метадаты, из которых извлекаются новые идентификаторы.
// Остальные ключи evidence непрозрачны и в worklist не попадают.
var (
	extraEmailKeys    = []string{"other_emails", "emails", "email"}
	extraUsernameKeys = []string{"other_users", "usernames"}
	extraWebsiteKeys  = []string{"other_websites", "websites", "website"}
)

// extractExtras вычисляет новые username/email из метадаты профилей.
// Элементы website-ключей, не являющиеся URL, трактуются как handles.
func extractExtras(profiles []models.SocialProfile) (usernames map[string]bool, emails map[string]bool) {
	usernames = map[string]bool{}
	emails = map[string]bool{}

	collect := func(value any, into func(string)) {
		switch v := value.(type) {
		case string:
			into(v)
		case []string:
			for _, item := range v {
				into(item)
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					into(s)
				}
			}
		}
	}

	addEmail := func(raw string) {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email != "" && strings.Contains(email, "@") {
			emails[email] = true
		}
	}
	addUsername := func(raw string) {
		username := strings.TrimSpace(raw)
		if username != "" {
			usernames[username] = true
		}
	}
	addNonURL := func(raw string) {
		if !strings.HasPrefix(raw, "http") {
			addUsername(raw)
		}
	}

	for i := range profiles {
		meta := profiles[i].Metadata
		if meta == nil {
			continue
		}
		for _, key := range extraEmailKeys {
			collect(meta[key], addEmail)
		}
		for _, key := range extraUsernameKeys {
			collect(meta[key], addUsername)
		}
		for _, key := range extraWebsiteKeys {
			collect(meta[key], addNonURL)
		}
	}
	return usernames, emails
}
