package scanners

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailMD5 — публичный хеш, который Gravatar требует для адресации аватара.
func emailMD5(email string) string {
	sum := md5.Sum([]byte(email))
	return hex.EncodeToString(sum[:])
}

// GravatarScanner проверяет наличие аватара Gravatar для email.
// Параметр d=404 заставляет сервис отвечать 404 при отсутствии аватара,
// что превращает проверку в чистый status-check.
type GravatarScanner struct {
	settings *config.Settings
	baseURL  string
}

func NewGravatarScanner(settings *config.Settings) *GravatarScanner {
	return &GravatarScanner{settings: settings, baseURL: "https://www.gravatar.com"}
}

func (s *GravatarScanner) Name() string { return "gravatar" }

func (s *GravatarScanner) Scan(ctx context.Context, value string) ([]models.SocialProfile, error) {
	email := normalizeEmail(value)
	hash := emailMD5(email)

	client := httpclient.Build(s.settings, nil)
	avatarURL := fmt.Sprintf("%s/avatar/%s?s=200&d=404", s.baseURL, hash)

	resp, err := client.Get(ctx, avatarURL)
	if err != nil {
		return nil, err
	}

	exists := resp.StatusCode == 200
	profile := models.SocialProfile{
		URL:         resp.FinalURL,
		Username:    email,
		NetworkName: s.Name(),
		Existe:      exists,
		Metadata: map[string]any{
			"status_code":      resp.StatusCode,
			"final_url":        resp.FinalURL,
			"email_md5":        hash,
			"normalized_email": email,
		},
	}
	if exists {
		profile.ImagenURL = resp.FinalURL
	}

	return one(profile), nil
}
