package llm

import (
	"sort"
	"strings"

	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// EvidenceStats — производные признаки пейлоада, нужные для clamp
// уверенности после ответа провайдера.
type EvidenceStats struct {
	ProfileCount          int
	HasTextSamples        bool
	HasActivityTimestamps bool
}

// BuildEvidencePayload собирает нормализованный evidence-пейлоад из агрегата.
//
// Несуществующие профили выбрасываются; строки обрезаются по бюджету;
// общее число профилей ограничено лимитом.
func BuildEvidencePayload(person *models.PersonEntity) (map[string]any, EvidenceStats) {
	limits := DefaultPayloadLimits()

	confirmed := person.ConfirmedProfiles()
	if len(confirmed) > limits.MaxProfiles {
		confirmed = confirmed[:limits.MaxProfiles]
	}

	stats := EvidenceStats{ProfileCount: len(confirmed)}

	networkSet := map[string]bool{}
	var confirmedURLs []string
	emailSet := map[string]bool{}
	handleCase := map[string]map[string]bool{} // lower(handle) -> варианты сетей
	var breachSummary []map[string]any

	profilesData := make([]map[string]any, 0, len(confirmed))
	for i := range confirmed {
		p := &confirmed[i]
		meta := p.Metadata

		cleanURL := strings.SplitN(p.URL, "?", 2)[0]
		networkSet[strings.ToLower(p.NetworkName)] = true
		if len(confirmedURLs) < limits.MaxConfirmedURLs {
			confirmedURLs = append(confirmedURLs, cleanURL)
		}

		if strings.Contains(p.Username, "@") {
			emailSet[strings.ToLower(strings.TrimSpace(p.Username))] = true
		} else if handle := strings.TrimSpace(p.Username); handle != "" {
			lower := strings.ToLower(handle)
			if handleCase[lower] == nil {
				handleCase[lower] = map[string]bool{}
			}
			handleCase[lower][strings.ToLower(p.NetworkName)] = true
		}
		collectEmails(meta, emailSet)

		entry := map[string]any{
			"network":  p.NetworkName,
			"username": p.Username,
			"url":      cleanURL,
		}

		bio := p.Bio
		if bio == "" {
			bio, _ = p.MetaString("bio")
		}
		if bio != "" {
			entry["bio"] = Truncate(bio, limits.MaxBioChars)
		}
		if location, ok := p.MetaString("location"); ok && location != "" {
			entry["location"] = Truncate(location, limits.MaxLocationChars)
		}

		if signals := collectSignals(meta); len(signals) > 0 {
			entry["signals"] = signals
		}

		if timestamps := collectTimestamps(meta, limits.MaxTimestamps); len(timestamps) > 0 {
			entry["activity_timestamps"] = timestamps
			stats.HasActivityTimestamps = true
		}
		if samples := collectTextSamples(meta, limits); len(samples) > 0 {
			entry["text_samples"] = samples
			stats.HasTextSamples = true
		}

		if count, titles, ok := breachInfo(p); ok {
			entry["breaches"] = map[string]any{"count": count, "top": titles}
			if len(breachSummary) < limits.MaxBreachSummary {
				breachSummary = append(breachSummary, map[string]any{
					"email": p.Username,
					"count": count,
					"top":   titles,
				})
			}
		}

		profilesData = append(profilesData, entry)
	}

	var handles []string
	var reused []string
	for handle, networks := range handleCase {
		handles = append(handles, handle)
		if len(networks) > 1 {
			reused = append(reused, handle)
		}
	}
	sort.Strings(handles)
	sort.Strings(reused)
	if len(handles) > limits.MaxHandles {
		handles = handles[:limits.MaxHandles]
	}
	if len(reused) > limits.MaxReusedHandles {
		reused = reused[:limits.MaxReusedHandles]
	}

	emails := make([]string, 0, len(emailSet))
	for email := range emailSet {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	if len(emails) > limits.MaxEmails {
		emails = emails[:limits.MaxEmails]
	}

	networks := make([]string, 0, len(networkSet))
	for network := range networkSet {
		networks = append(networks, network)
	}
	sort.Strings(networks)

	payload := map[string]any{
		"target_query":       person.Target,
		"evidence_count":     len(profilesData),
		"confirmed_networks": networks,
		"confirmed_urls":     confirmedURLs,
		"signals": map[string]any{
			"has_text_samples":        stats.HasTextSamples,
			"has_activity_timestamps": stats.HasActivityTimestamps,
			"emails":                  emails,
			"handles":                 handles,
			"reused_handles":          reused,
		},
		"raw_evidence": profilesData,
	}
	if len(breachSummary) > 0 {
		payload["breach_summary"] = breachSummary
	}

	return payload, stats
}

// collectSignals переносит известные ключи метадаты в компактный объект.
func collectSignals(meta map[string]any) map[string]any {
	signals := map[string]any{}

	pick := func(out string, keys ...string) {
		for _, key := range keys {
			if v, ok := meta[key]; ok && v != nil && v != "" {
				signals[out] = v
				return
			}
		}
	}

	pick("name", "name", "display_name")
	pick("company", "company")
	pick("blog", "blog", "website")
	pick("created_at", "created_at", "created_utc")
	pick("followers", "followers")
	pick("following", "following")
	pick("public_repos", "public_repos", "repos")
	pick("languages", "languages", "tech_stack")
	return signals
}

func collectTimestamps(meta map[string]any, limit int) []any {
	var out []any

	appendTS := func(v any) {
		if v != nil && len(out) < limit {
			out = append(out, v)
		}
	}

	// commits: [{message, timestamp}]
	if commits, ok := meta["commits"].([]map[string]any); ok {
		for _, c := range commits {
			appendTS(c["timestamp"])
		}
	} else if commits, ok := meta["commits"].([]any); ok {
		for _, rc := range commits {
			if c, ok := rc.(map[string]any); ok {
				appendTS(c["timestamp"])
			}
		}
	}
	if timestamps, ok := meta["timestamps"].([]any); ok {
		for _, ts := range timestamps {
			appendTS(ts)
		}
	}
	return out
}

func collectTextSamples(meta map[string]any, limits PayloadLimits) []string {
	var out []string

	appendSample := func(text string) {
		text = strings.TrimSpace(text)
		if text != "" && len(out) < limits.MaxTextSamples {
			out = append(out, Truncate(text, limits.MaxTextSampleChars))
		}
	}

	fromComment := func(c map[string]any) {
		if body, ok := c["body"].(string); ok {
			appendSample(body)
		}
	}

	switch comments := meta["comments"].(type) {
	case []map[string]any:
		for _, c := range comments {
			fromComment(c)
		}
	case []any:
		for _, rc := range comments {
			if c, ok := rc.(map[string]any); ok {
				fromComment(c)
			} else if s, ok := rc.(string); ok {
				appendSample(s)
			}
		}
	}
	if texts, ok := meta["texts"].([]any); ok {
		for _, t := range texts {
			if s, ok := t.(string); ok {
				appendSample(s)
			}
		}
	}
	return out
}

func collectEmails(meta map[string]any, into map[string]bool) {
	add := func(v any) {
		if s, ok := v.(string); ok {
			s = strings.ToLower(strings.TrimSpace(s))
			if strings.Contains(s, "@") {
				into[s] = true
			}
		}
	}
	for _, key := range []string{"email", "emails", "other_emails"} {
		switch v := meta[key].(type) {
		case string:
			add(v)
		case []any:
			for _, item := range v {
				add(item)
			}
		case []string:
			for _, item := range v {
				add(item)
			}
		}
	}
}

// breachInfo достаёт сводку брешей из hibp-профиля.
func breachInfo(p *models.SocialProfile) (int, []string, bool) {
	if p.Metadata == nil {
		return 0, nil, false
	}

	const maxTopTitles = 3

	switch breaches := p.Metadata["breaches"].(type) {
	case models.HIBPProfile:
		titles := make([]string, 0, maxTopTitles)
		for _, b := range breaches.Breaches {
			if len(titles) == maxTopTitles {
				break
			}
			titles = append(titles, b.Title)
		}
		return len(breaches.Breaches), titles, true
	case map[string]any:
		raw, ok := breaches["breaches"].([]any)
		if !ok {
			return 0, nil, false
		}
		titles := make([]string, 0, maxTopTitles)
		for _, rb := range raw {
			if len(titles) == maxTopTitles {
				break
			}
			if b, ok := rb.(map[string]any); ok {
				if title, ok := b["Title"].(string); ok {
					titles = append(titles, title)
				} else if title, ok := b["title"].(string); ok {
					titles = append(titles, title)
				}
			}
		}
		return len(raw), titles, true
	}
	return 0, nil, false
}

// BreachEvidence собирает per-email сводку брешей для эвристического отчёта.
func BreachEvidence(person *models.PersonEntity) map[string][]string {
	out := map[string][]string{}
	for i := range person.Profiles {
		p := &person.Profiles[i]
		if p.NetworkName != "hibp" || !p.Existe {
			continue
		}
		if _, _, ok := breachInfo(p); !ok {
			continue
		}
		out[p.Username] = allBreachTitles(p)
	}
	return out
}

func allBreachTitles(p *models.SocialProfile) []string {
	switch breaches := p.Metadata["breaches"].(type) {
	case models.HIBPProfile:
		titles := make([]string, 0, len(breaches.Breaches))
		for _, b := range breaches.Breaches {
			titles = append(titles, b.Title)
		}
		return titles
	case map[string]any:
		raw, _ := breaches["breaches"].([]any)
		titles := make([]string, 0, len(raw))
		for _, rb := range raw {
			if b, ok := rb.(map[string]any); ok {
				if title, ok := b["Title"].(string); ok {
					titles = append(titles, title)
				}
			}
		}
		return titles
	}
	return nil
}
