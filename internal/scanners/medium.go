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

// MediumScanner проверяет профиль Medium.
// Medium отвечает 200 и на несуществующие хендлы, поэтому существование
// определяется по og:title (у пустых страниц он просто "Medium").
type MediumScanner struct {
	settings *config.Settings
	baseURL  string
}

func NewMediumScanner(settings *config.Settings) *MediumScanner {
	return &MediumScanner{settings: settings, baseURL: "https://medium.com"}
}

func (s *MediumScanner) Name() string { return "medium" }

func (s *MediumScanner) Scan(ctx context.Context, username string) ([]models.SocialProfile, error) {
	client := httpclient.Build(s.settings, nil)

	resp, err := client.Get(ctx, fmt.Sprintf("%s/@%s", s.baseURL, username))
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
			if ogTitle != "" && ogTitle != "Medium" {
				exists = true
				metadata["name"] = strings.TrimSpace(strings.ReplaceAll(ogTitle, "– Medium", ""))

				if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && desc != "" {
					metadata["description"] = desc
					profile.Bio = desc
				}
				if avatar, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && avatar != "" {
					metadata["avatar_url"] = avatar
					profile.ImagenURL = avatar
				}

				// Заголовки/подзаголовки недавних постов — текстовые сэмплы для IA.
				var titles, contents []string
				doc.Find("h2").Each(func(_ int, sel *goquery.Selection) {
					if t := strings.TrimSpace(sel.Text()); t != "" {
						titles = append(titles, t)
					}
				})
				doc.Find("h3").Each(func(_ int, sel *goquery.Selection) {
					if c := strings.TrimSpace(sel.Text()); c != "" {
						contents = append(contents, c)
					}
				})
				var posts []map[string]any
				for i := 0; i < len(titles) && i < len(contents); i++ {
					posts = append(posts, map[string]any{"title": titles[i], "content": contents[i]})
				}
				if len(posts) > 0 {
					metadata["recent_posts"] = posts
				}
			}
		}
	}

	profile.Existe = exists
	return one(profile), nil
}
