package scanners

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
)

// maxRecentCommits ограничивает количество commit-сообщений в evidence.
const maxRecentCommits = 20

var githubHeaders = map[string]string{
	// GitHub требует UA; Accept — стабильная версия JSON API.
	"Accept": "application/vnd.github+json",
}

// fetchGitHubUser запрашивает публичный профиль через официальный API.
// Возвращает nil без ошибки (плюс статус), если пользователя нет (404)
// или статус не 200.
func fetchGitHubUser(ctx context.Context, apiBase, username string, settings *config.Settings) (map[string]any, int, error) {
	client := httpclient.Build(settings, githubHeaders)

	resp, err := client.Get(ctx, fmt.Sprintf("%s/users/%s", apiBase, username))
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != 200 {
		return nil, resp.StatusCode, nil
	}

	var data map[string]any
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("github user payload: %w", err)
	}

	out := map[string]any{"api": "github"}
	for _, key := range []string{
		"login", "name", "bio", "company", "location", "blog", "email",
		"twitter_username", "avatar_url", "html_url", "public_repos",
		"followers", "following", "created_at", "updated_at",
	} {
		if v, ok := data[key]; ok && v != nil {
			out[key] = v
		}
	}
	return out, resp.StatusCode, nil
}

// fetchGitHubRecentCommits собирает commit-сообщения из публичных PushEvent.
// Best-effort: любая проблема — пустой срез.
func fetchGitHubRecentCommits(ctx context.Context, apiBase, username string, settings *config.Settings) []map[string]any {
	client := httpclient.Build(settings, githubHeaders)

	resp, err := client.Get(ctx, fmt.Sprintf("%s/users/%s/events/public", apiBase, username))
	if err != nil || resp.StatusCode != 200 {
		return nil
	}

	var events []map[string]any
	if err := json.Unmarshal(resp.Body, &events); err != nil {
		return nil
	}

	var commits []map[string]any
	for _, ev := range events {
		if ev["type"] != "PushEvent" {
			continue
		}
		createdAt := ev["created_at"]
		payload, ok := ev["payload"].(map[string]any)
		if !ok {
			continue
		}
		rawCommits, ok := payload["commits"].([]any)
		if !ok {
			continue
		}
		for _, rc := range rawCommits {
			c, ok := rc.(map[string]any)
			if !ok {
				continue
			}
			msg, ok := c["message"].(string)
			if !ok || strings.TrimSpace(msg) == "" {
				continue
			}
			commits = append(commits, map[string]any{
				"message":   strings.TrimSpace(msg),
				"timestamp": createdAt,
			})
			if len(commits) >= maxRecentCommits {
				return commits
			}
		}
	}
	return commits
}

// fetchGitHubDeep комбинирует базовый профиль и недавнюю активность.
func fetchGitHubDeep(ctx context.Context, apiBase, username string, settings *config.Settings) (map[string]any, int, error) {
	base, status, err := fetchGitHubUser(ctx, apiBase, username, settings)
	if err != nil || base == nil {
		return base, status, err
	}

	commits := fetchGitHubRecentCommits(ctx, apiBase, username, settings)
	if commits != nil {
		base["commits"] = commits
	}
	return base, status, nil
}
