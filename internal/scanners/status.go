package scanners

import (
	"context"
	"fmt"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// statusScanner — минимальный сканер «существует, если страница отдала 200».
// Подходит для источников, где профиль по детерминированному URL либо есть,
// либо отвечает 404; метадата ограничивается status_code/final_url.
type statusScanner struct {
	settings    *config.Settings
	name        string
	urlTemplate string
}

func (s *statusScanner) Name() string { return s.name }

func (s *statusScanner) Scan(ctx context.Context, username string) ([]models.SocialProfile, error) {
	client := httpclient.Build(s.settings, nil)

	url := fmt.Sprintf(s.urlTemplate, username)
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	return one(models.SocialProfile{
		URL:         resp.FinalURL,
		Username:    username,
		NetworkName: s.name,
		Existe:      resp.StatusCode == 200,
		Metadata: map[string]any{
			"status_code": resp.StatusCode,
			"final_url":   resp.FinalURL,
		},
	}), nil
}

// NewKaggleScanner проверяет https://www.kaggle.com/<username>.
func NewKaggleScanner(settings *config.Settings) Scanner {
	return &statusScanner{settings: settings, name: "kaggle", urlTemplate: "https://www.kaggle.com/%s"}
}

// NewDevToScanner проверяет https://dev.to/<username>.
func NewDevToScanner(settings *config.Settings) Scanner {
	return &statusScanner{settings: settings, name: "devto", urlTemplate: "https://dev.to/%s"}
}

// NewNpmScanner проверяет страницу npm аккаунта.
func NewNpmScanner(settings *config.Settings) Scanner {
	return &statusScanner{settings: settings, name: "npm", urlTemplate: "https://www.npmjs.com/~%s"}
}

// NewProductHuntScanner проверяет https://www.producthunt.com/@<username>.
func NewProductHuntScanner(settings *config.Settings) Scanner {
	return &statusScanner{settings: settings, name: "producthunt", urlTemplate: "https://www.producthunt.com/@%s"}
}

// NewDribbbleScanner проверяет https://dribbble.com/<username>.
func NewDribbbleScanner(settings *config.Settings) Scanner {
	return &statusScanner{settings: settings, name: "dribbble", urlTemplate: "https://dribbble.com/%s"}
}

// NewBehanceScanner проверяет https://www.behance.net/<username>.
func NewBehanceScanner(settings *config.Settings) Scanner {
	return &statusScanner{settings: settings, name: "behance", urlTemplate: "https://www.behance.net/%s"}
}

// NewKeybaseScanner проверяет https://keybase.io/<username>.
func NewKeybaseScanner(settings *config.Settings) Scanner {
	return &statusScanner{settings: settings, name: "keybase", urlTemplate: "https://keybase.io/%s"}
}

// NewGitHubGistScanner проверяет https://gist.github.com/<username>.
func NewGitHubGistScanner(settings *config.Settings) Scanner {
	return &statusScanner{settings: settings, name: "githubgist", urlTemplate: "https://gist.github.com/%s"}
}

// NewXScanner проверяет https://x.com/<username>.
// X активно прячется за анти-ботом; это best-effort проверка.
func NewXScanner(settings *config.Settings) Scanner {
	return &statusScanner{settings: settings, name: "x", urlTemplate: "https://x.com/%s"}
}
