package scanners

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
)

const maxRedditComments = 10

var redditHeaders = map[string]string{
	"Accept": "application/json",
	// Reddit блокирует «странные» UA; форсируем совместимый.
	"User-Agent": "Mozilla/5.0 (compatible; identrecon/1.0)",
}

// fetchRedditAbout запрашивает about.json пользователя.
func fetchRedditAbout(ctx context.Context, base, username string, settings *config.Settings) (map[string]any, int, error) {
	client := httpclient.Build(settings, redditHeaders)

	resp, err := client.Get(ctx, fmt.Sprintf("%s/user/%s/about.json", base, username))
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != 200 {
		return nil, resp.StatusCode, nil
	}

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reddit about payload: %w", err)
	}
	if envelope.Data == nil {
		return nil, resp.StatusCode, nil
	}

	payload := envelope.Data
	subreddit, _ := payload["subreddit"].(map[string]any)

	out := map[string]any{
		"api":         "reddit",
		"name":        payload["name"],
		"id":          payload["id"],
		"created_utc": payload["created_utc"],
	}
	if createdUTC, ok := payload["created_utc"].(float64); ok {
		out["created_at"] = time.Unix(int64(createdUTC), 0).UTC().Format(time.RFC3339)
	}
	if subreddit != nil {
		out["public_description"] = subreddit["public_description"]
		out["title"] = subreddit["title"]
		out["icon_img"] = subreddit["icon_img"]
		out["over_18"] = subreddit["over_18"]
		out["subscribers"] = subreddit["subscribers"]
	}
	return out, resp.StatusCode, nil
}

// fetchRedditRecentComments собирает недавние комментарии (текст + subreddit).
// Best-effort: Reddit может отвечать 429/403, тогда просто без комментариев.
func fetchRedditRecentComments(ctx context.Context, base, username string, settings *config.Settings) ([]map[string]any, []string) {
	client := httpclient.Build(settings, redditHeaders)

	url := fmt.Sprintf("%s/user/%s/comments.json?limit=%d", base, username, maxRedditComments)
	resp, err := client.Get(ctx, url)
	if err != nil || resp.StatusCode != 200 {
		return nil, nil
	}

	var envelope struct {
		Data struct {
			Children []struct {
				Data map[string]any `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, nil
	}

	var comments []map[string]any
	subredditSet := map[string]bool{}
	for _, child := range envelope.Data.Children {
		data := child.Data
		if data == nil {
			continue
		}
		body, _ := data["body"].(string)
		if body == "" {
			continue
		}
		comment := map[string]any{
			"body":        body,
			"subreddit":   data["subreddit"],
			"created_utc": data["created_utc"],
			"permalink":   data["permalink"],
		}
		comments = append(comments, comment)
		if sub, ok := data["subreddit"].(string); ok && sub != "" {
			subredditSet[sub] = true
		}
	}

	subreddits := make([]string, 0, len(subredditSet))
	for sub := range subredditSet {
		subreddits = append(subreddits, sub)
	}
	sort.Strings(subreddits)
	return comments, subreddits
}
