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

// SoundCloudScanner проверяет профиль SoundCloud (status + og-метадата).
type SoundCloudScanner struct {
	settings *config.Settings
	baseURL  string
}

func NewSoundCloudScanner(settings *config.Settings) *SoundCloudScanner {
	return &SoundCloudScanner{settings: settings, baseURL: "https://soundcloud.com"}
}

func (s *SoundCloudScanner) Name() string { return "soundcloud" }

func (s *SoundCloudScanner) Scan(ctx context.Context, username string) ([]models.SocialProfile, error) {
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
	profile := models.SocialProfile{
		URL:         resp.FinalURL,
		Username:    username,
		NetworkName: s.Name(),
		Metadata:    metadata,
	}

	if exists {
		if doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(resp.Text())); docErr == nil {
			if title, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && title != "" {
				metadata["name"] = strings.TrimSpace(title)
			}
			if avatar, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && avatar != "" {
				metadata["avatar_url"] = avatar
				profile.ImagenURL = avatar
			}
		}
	}

	profile.Existe = exists
	return one(profile), nil
}
