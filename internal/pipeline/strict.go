package pipeline

import (
	"strings"

	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// Strict режим: пост-фильтр, оставляющий только высокодоверенные
// совпадения. Жёстко фильтруются только sherlock-источники — у ручных
// сканеров эвристики существования и так сильные.

// strictSherlockDenylist — сети с известными ложноположительными ответами.
var strictSherlockDenylist = map[string]bool{
	"avizo":  true,
	"fanpop": true,
	"hubski": true,
}

// strictSuspiciousURLParts — фрагменты final_url, указывающие на редирект
// в логин/консент вместо страницы профиля.
var strictSuspiciousURLParts = []string{
	"login",
	"sign_in",
	"consent",
	"privacy",
	"cookie",
	"redirect",
	"return_url=",
	"callbackurl=",
	"search?",
	"search/?",
	"vendor_not_found",
	"nastaveni-souhlasu",
}

// strictKeepProfile решает судьбу профиля для одного username.
func strictKeepProfile(p *models.SocialProfile, username string) bool {
	if !p.Existe {
		return false
	}

	source, _ := p.MetaString("source")
	if source != "sherlock" {
		return true
	}

	if strictSherlockDenylist[p.NetworkName] {
		return false
	}

	finalURL, ok := p.MetaString("final_url")
	if !ok || finalURL == "" {
		finalURL = p.URL
	}
	finalURL = strings.ToLower(finalURL)
	for _, part := range strictSuspiciousURLParts {
		if strings.Contains(finalURL, part) {
			return false
		}
	}

	// Последний рубеж: username должен встречаться в URL, title или
	// meta-description собранного evidence.
	usernameLower := strings.ToLower(username)
	if strings.Contains(finalURL, usernameLower) {
		return true
	}
	if title, ok := p.MetaString("title"); ok && strings.Contains(strings.ToLower(title), usernameLower) {
		return true
	}
	if desc, ok := p.MetaString("meta_description"); ok && strings.Contains(strings.ToLower(desc), usernameLower) {
		return true
	}

	return false
}

// applyStrictFilter оставляет профили, прошедшие проверку хотя бы по
// одному из запрошенных username.
func applyStrictFilter(profiles []models.SocialProfile, usernames []string) []models.SocialProfile {
	out := make([]models.SocialProfile, 0, len(profiles))
	for i := range profiles {
		for _, username := range usernames {
			if strictKeepProfile(&profiles[i], username) {
				out = append(out, profiles[i])
				break
			}
		}
	}
	return out
}

// dedupeProfiles убирает дубликаты по тройке (network, username, url),
// сохраняя первое вхождение.
func dedupeProfiles(profiles []models.SocialProfile) []models.SocialProfile {
	seen := map[models.ProfileKey]bool{}
	out := make([]models.SocialProfile, 0, len(profiles))
	for i := range profiles {
		key := profiles[i].Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, profiles[i])
	}
	return out
}
