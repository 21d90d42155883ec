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

// GitLabScanner проверяет профиль GitLab и достаёт имя из <title>.
type GitLabScanner struct {
	settings *config.Settings
	baseURL  string
}

func NewGitLabScanner(settings *config.Settings) *GitLabScanner {
	return &GitLabScanner{settings: settings, baseURL: "https://gitlab.com"}
}

func (s *GitLabScanner) Name() string { return "gitlab" }

func (s *GitLabScanner) Scan(ctx context.Context, username string) ([]models.SocialProfile, error) {
	client := httpclient.Build(s.settings, nil)

	resp, err := client.Get(ctx, fmt.Sprintf("%s/%s", s.baseURL, username))
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"status_code": resp.StatusCode,
		"final_url":   resp.FinalURL,
	}
	if server := resp.Header.Get("Server"); server != "" {
		metadata["server"] = server
	}

	exists := resp.StatusCode == 200
	if exists {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Text())); err == nil {
			title := doc.Find("title").First().Text()
			if name := strings.Trim(strings.ReplaceAll(title, "· GitLab", ""), " ·-\n\t"); name != "" {
				metadata["name"] = name
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
