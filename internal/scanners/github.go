package scanners

import (
	"context"
	"fmt"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// GitHubScanner проверяет существование username на GitHub через API
// и обогащает профиль метадатой (bio/location/commits).
type GitHubScanner struct {
	settings *config.Settings
	baseURL  string
	apiBase  string
}

func NewGitHubScanner(settings *config.Settings) *GitHubScanner {
	return &GitHubScanner{
		settings: settings,
		baseURL:  "https://github.com",
		apiBase:  "https://api.github.com",
	}
}

func (s *GitHubScanner) Name() string { return "github" }

func (s *GitHubScanner) Scan(ctx context.Context, username string) ([]models.SocialProfile, error) {
	publicURL := fmt.Sprintf("%s/%s", s.baseURL, username)

	api, status, err := fetchGitHubDeep(ctx, s.apiBase, username, s.settings)
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"source":      "github_api",
		"status_code": status,
	}
	for k, v := range api {
		metadata[k] = v
	}

	profile := models.SocialProfile{
		URL:         publicURL,
		Username:    username,
		NetworkName: s.Name(),
		Existe:      api != nil,
		Metadata:    metadata,
	}
	if bio, ok := metadata["bio"].(string); ok {
		profile.Bio = bio
	}
	if avatar, ok := metadata["avatar_url"].(string); ok {
		profile.ImagenURL = avatar
	}

	return one(profile), nil
}
