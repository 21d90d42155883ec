package httpclient

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractHTMLMetadata достаёт лёгкую метадату из HTML страницы.
//
// Возвращает опциональные ключи:
//   - title
//   - meta_description
//   - og_image (og:image, разрешённый относительно baseURL)
func ExtractHTMLMetadata(html string, baseURL string) map[string]any {
	if strings.TrimSpace(html) == "" {
		return map[string]any{}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return map[string]any{}
	}

	out := map[string]any{}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		out["title"] = title
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			out["meta_description"] = desc
		}
	}

	if og, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			out["og_image"] = resolveAgainst(baseURL, og)
		}
	}

	return out
}

func resolveAgainst(baseURL, ref string) string {
	if baseURL == "" {
		return ref
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
