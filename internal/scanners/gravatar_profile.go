package scanners

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// GravatarProfileScanner запрашивает публичный JSON-профиль Gravatar
// (`/<md5>.json`): displayName, aboutMe, внешние ссылки, thumbnail.
type GravatarProfileScanner struct {
	settings *config.Settings
	baseURL  string
}

func NewGravatarProfileScanner(settings *config.Settings) *GravatarProfileScanner {
	return &GravatarProfileScanner{settings: settings, baseURL: "https://en.gravatar.com"}
}

func (s *GravatarProfileScanner) Name() string { return "gravatar_profile" }

func (s *GravatarProfileScanner) Scan(ctx context.Context, value string) ([]models.SocialProfile, error) {
	email := normalizeEmail(value)
	hash := emailMD5(email)

	client := httpclient.Build(s.settings, nil)

	resp, err := client.Get(ctx, fmt.Sprintf("%s/%s.json", s.baseURL, hash))
	if err != nil {
		return nil, err
	}

	exists := resp.StatusCode == 200
	metadata := map[string]any{
		"status_code":      resp.StatusCode,
		"final_url":        resp.FinalURL,
		"email_md5":        hash,
		"normalized_email": email,
	}

	profile := models.SocialProfile{
		URL:         resp.FinalURL,
		Username:    email,
		NetworkName: s.Name(),
		Existe:      exists,
		Metadata:    metadata,
	}

	if exists {
		var payload struct {
			Entry []map[string]any `json:"entry"`
		}
		if err := json.Unmarshal(resp.Body, &payload); err != nil {
			metadata["parse_error"] = err.Error()
		} else if len(payload.Entry) > 0 {
			entry := payload.Entry[0]
			if about, ok := entry["aboutMe"].(string); ok {
				profile.Bio = about
			}
			if thumb, ok := entry["thumbnailUrl"].(string); ok {
				profile.ImagenURL = thumb
			}
			if display, ok := entry["displayName"].(string); ok {
				metadata["display_name"] = display
			}
			if preferred, ok := entry["preferredUsername"].(string); ok {
				metadata["preferred_username"] = preferred
			}
			if urls, ok := entry["urls"].([]any); ok && len(urls) > 0 {
				metadata["urls"] = urls
			}
		}
	}

	return one(profile), nil
}
