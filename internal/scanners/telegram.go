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

// TelegramScanner проверяет публичный username через t.me.
// Для несуществующих аккаунтов Telegram отдаёт 200 с og:title
// "Telegram: Contact @<username>", это и есть негативный маркер.
type TelegramScanner struct {
	settings *config.Settings
	baseURL  string
}

func NewTelegramScanner(settings *config.Settings) *TelegramScanner {
	return &TelegramScanner{settings: settings, baseURL: "https://t.me"}
}

func (s *TelegramScanner) Name() string { return "telegram" }

func (s *TelegramScanner) Scan(ctx context.Context, username string) ([]models.SocialProfile, error) {
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
			if !strings.HasPrefix(ogTitle, "Telegram: Contact @") {
				exists = true
				if name := strings.TrimSpace(doc.Find("div.tgme_page_title span").First().Text()); name != "" {
					metadata["name"] = name
				}
				if avatar, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && avatar != "" {
					metadata["avatar_url"] = avatar
					profile.ImagenURL = avatar
				}
				if desc, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok && desc != "" {
					metadata["bio"] = desc
				}
			}
		}
	}

	profile.Existe = exists
	return one(profile), nil
}
