package scanners

import (
	"context"
	"fmt"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// RedditScanner использует JSON эндпоинты about/comments для лёгкой метадаты.
type RedditScanner struct {
	settings *config.Settings
	baseURL  string
}

func NewRedditScanner(settings *config.Settings) *RedditScanner {
	return &RedditScanner{settings: settings, baseURL: "https://www.reddit.com"}
}

func (s *RedditScanner) Name() string { return "reddit" }

func (s *RedditScanner) Scan(ctx context.Context, username string) ([]models.SocialProfile, error) {
	publicURL := fmt.Sprintf("%s/user/%s/", s.baseURL, username)

	about, status, err := fetchRedditAbout(ctx, s.baseURL, username, s.settings)
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"source":      "reddit_about_json",
		"status_code": status,
	}
	for k, v := range about {
		if v != nil {
			metadata[k] = v
		}
	}

	exists := about != nil
	if exists {
		comments, subreddits := fetchRedditRecentComments(ctx, s.baseURL, username, s.settings)
		if len(comments) > 0 {
			metadata["comments"] = comments
		}
		if len(subreddits) > 0 {
			metadata["subreddits"] = subreddits
		}
	}

	profile := models.SocialProfile{
		URL:         publicURL,
		Username:    username,
		NetworkName: s.Name(),
		Existe:      exists,
		Metadata:    metadata,
	}
	if bio, ok := metadata["public_description"].(string); ok {
		profile.Bio = bio
	}
	if icon, ok := metadata["icon_img"].(string); ok && icon != "" {
		profile.ImagenURL = icon
	}

	return one(profile), nil
}
