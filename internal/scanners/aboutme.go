package scanners

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// Пакет-уровневые паттерны для JSON-LD блока about.me.
// Компилируются один раз при запуске программы.
var (
	aboutMeLocationPattern  = regexp.MustCompile(`"address":"(.*?)",`)
	aboutMeJobPattern       = regexp.MustCompile(`"jobTitle":"(.*?)",`)
	aboutMeInterestsPattern = regexp.MustCompile(`(?is)"knowsAbout":\s*\[(.*?)\]`)
	aboutMeSocialsPattern   = regexp.MustCompile(`(?is)"sameAs":\s*\[(.*?)\]`)
	quotedStringPattern     = regexp.MustCompile(`"(.*?)"`)
)

// AboutMeScanner проверяет страницу about.me и дополнительно эмитит
// производные профили по каждой внешней социальной ссылке (sameAs),
// которые попадают в транзитивное обнаружение.
type AboutMeScanner struct {
	settings *config.Settings
	baseURL  string
}

func NewAboutMeScanner(settings *config.Settings) *AboutMeScanner {
	return &AboutMeScanner{settings: settings, baseURL: "https://about.me"}
}

func (s *AboutMeScanner) Name() string { return "aboutme" }

func (s *AboutMeScanner) Scan(ctx context.Context, username string) ([]models.SocialProfile, error) {
	client := httpclient.Build(s.settings, nil)

	resp, err := client.Get(ctx, fmt.Sprintf("%s/%s", s.baseURL, username))
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"status_code": resp.StatusCode,
		"final_url":   resp.FinalURL,
	}
	exists := resp.StatusCode == 200

	var socialLinks []string
	if exists {
		html := resp.Text()
		doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(html))
		if docErr == nil {
			// Реальность профиля подтверждает title вида "Имя - Город | about.me".
			title := strings.TrimSpace(doc.Find("title").First().Text())
			if title == "" {
				exists = false
			} else {
				who := strings.Trim(strings.ReplaceAll(title, "| about.me", ""), " ·-")
				parts := strings.SplitN(who, " - ", 2)
				name := strings.TrimSpace(parts[0])
				if name != "" {
					metadata["name"] = name
				}

				if bio, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok && bio != "" {
					metadata["bio"] = bio
				}
				if desc := strings.TrimSpace(doc.Find("section.bio p").First().Text()); desc != "" {
					metadata["description"] = desc
				}
				if avatar, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && avatar != "" {
					metadata["avatar_url"] = avatar
				}

				location := ""
				if m := aboutMeLocationPattern.FindStringSubmatch(html); m != nil {
					location = m[1]
				} else if len(parts) > 1 {
					location = strings.TrimSpace(parts[1])
				}
				if location != "" {
					metadata["location"] = location
				}

				if m := aboutMeJobPattern.FindStringSubmatch(html); m != nil && m[1] != "" {
					metadata["job_title"] = m[1]
				}
				if m := aboutMeInterestsPattern.FindStringSubmatch(html); m != nil {
					if interests := extractQuotedStrings(m[1]); len(interests) > 0 {
						metadata["interests"] = interests
					}
				}
				if m := aboutMeSocialsPattern.FindStringSubmatch(html); m != nil {
					socialLinks = extractQuotedStrings(m[1])
					metadata["social_links"] = socialLinks
				}
			}
		}
	}

	profiles := []models.SocialProfile{{
		URL:         resp.FinalURL,
		Username:    username,
		NetworkName: s.Name(),
		Existe:      exists,
		Metadata:    metadata,
	}}
	if bio, ok := metadata["bio"].(string); ok {
		profiles[0].Bio = bio
	}
	if avatar, ok := metadata["avatar_url"].(string); ok {
		profiles[0].ImagenURL = avatar
	}

	// Каждая внешняя ссылка становится отдельным профилем для таблицы
	// результатов и для извлечения новых идентификаторов.
	for _, link := range socialLinks {
		if link == "" {
			continue
		}
		segments := strings.Split(strings.TrimRight(link, "/"), "/")
		profiles = append(profiles, models.SocialProfile{
			URL:         link,
			Username:    segments[len(segments)-1],
			NetworkName: "aboutme_social_link",
			Existe:      true,
			Metadata: map[string]any{
				"source":        "aboutme",
				"from_username": username,
			},
		})
	}

	return profiles, nil
}

func extractQuotedStrings(raw string) []string {
	matches := quotedStringPattern.FindAllStringSubmatch(raw, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[1] != "" {
			out = append(out, m[1])
		}
	}
	return out
}
