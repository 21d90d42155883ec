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

// TwitchScanner проверяет канал Twitch.
// Twitch отдаёт 200 и для пустых страниц; существование подтверждает
// og:title с именем канала (не дефолтный "Twitch").
type TwitchScanner struct {
	settings *config.Settings
	baseURL  string
}

func NewTwitchScanner(settings *config.Settings) *TwitchScanner {
	return &TwitchScanner{settings: settings, baseURL: "https://www.twitch.tv"}
}

func (s *TwitchScanner) Name() string { return "twitch" }

func (s *TwitchScanner) Scan(ctx context.Context, username string) ([]models.SocialProfile, error) {
	client := httpclient.Build(s.settings, nil)

	resp, err := client.Get(ctx, fmt.Sprintf("%s/%s", s.baseURL, username))
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"status_code": resp.StatusCode,
		"final_url":   resp.FinalURL,
	}

	exists := false
	profile := models.SocialProfile{
		URL:         resp.FinalURL,
		Username:    username,
		NetworkName: s.Name(),
		Metadata:    metadata,
	}

	if resp.StatusCode == 200 {
		doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(resp.Text()))
		if docErr == nil {
			ogTitle, _ := doc.Find(`meta[property="og:title"]`).First().Attr("content")
			if ogTitle != "" && ogTitle != "Twitch" {
				exists = true
				metadata["name"] = strings.TrimSpace(strings.TrimSuffix(ogTitle, "- Twitch"))
				if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && desc != "" {
					metadata["description"] = desc
					profile.Bio = desc
				}
				if avatar, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && avatar != "" {
					metadata["avatar_url"] = avatar
					profile.ImagenURL = avatar
				}
			}
		}
	}

	profile.Existe = exists
	return one(profile), nil
}
