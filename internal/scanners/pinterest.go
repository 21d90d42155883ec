package scanners

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// PinterestScanner проверяет профиль Pinterest.
// Pinterest применяет анти-бот; проверка best-effort: существование
// подтверждает блок имени профиля (data-test-id="profile-name").
type PinterestScanner struct {
	settings *config.Settings
	baseURL  string
}

func NewPinterestScanner(settings *config.Settings) *PinterestScanner {
	return &PinterestScanner{settings: settings, baseURL: "https://www.pinterest.com"}
}

func (s *PinterestScanner) Name() string { return "pinterest" }

func (s *PinterestScanner) Scan(ctx context.Context, username string) ([]models.SocialProfile, error) {
	client := httpclient.Build(s.settings, nil)

	resp, err := client.Get(ctx, fmt.Sprintf("%s/%s/", s.baseURL, username))
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"status_code": resp.StatusCode,
		"final_url":   resp.FinalURL,
	}

	exists := resp.StatusCode == 200
	if exists {
		exists = false
		if doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(resp.Text())); docErr == nil {
			name := strings.TrimSpace(doc.Find(`div[data-test-id="profile-name"] div`).First().Text())
			if name != "" {
				exists = true
				metadata["name"] = name

				if desc := strings.TrimSpace(doc.Find(`span[data-test-id="main-user-description-text"]`).First().Text()); desc != "" {
					metadata["description"] = desc
				}
				if avatar, ok := doc.Find(fmt.Sprintf(`img[alt=%q]`, name)).First().Attr("src"); ok && avatar != "" {
					metadata["avatar_url"] = avatar
				}
				// Внешний сайт профиля — кандидат в новые идентификаторы.
				if website := strings.TrimSpace(doc.Find(`div[data-test-id="website-icon-and-url"] span`).First().Text()); website != "" {
					metadata["other_websites"] = website
				}
			}
		}
	}

	return one(models.SocialProfile{
		URL:         resp.FinalURL,
		Username:    username,
		NetworkName: s.Name(),
		Existe:      exists,
		Metadata:    metadata,
	}), nil
}
