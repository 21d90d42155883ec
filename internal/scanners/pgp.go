package scanners

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// Ключевые сервера отвечают 200 и при пустой выдаче, поэтому существование
// определяется контентной эвристикой ("No results" и родственные маркеры).
var pgpNotFoundMarkers = []string{"No results", "No keys found", "No matching keys"}

// pgpScanner — общий сканер ключевых серверов PGP по email.
type pgpScanner struct {
	settings    *config.Settings
	name        string
	urlTemplate string
}

func (s *pgpScanner) Name() string { return s.name }

func (s *pgpScanner) Scan(ctx context.Context, value string) ([]models.SocialProfile, error) {
	email := strings.ToLower(strings.TrimSpace(value))

	client := httpclient.Build(s.settings, nil)
	resp, err := client.Get(ctx, fmt.Sprintf(s.urlTemplate, url.QueryEscape(email)))
	if err != nil {
		return nil, err
	}

	text := resp.Text()
	found := resp.StatusCode == 200
	if found {
		for _, marker := range pgpNotFoundMarkers {
			if strings.Contains(text, marker) {
				found = false
				break
			}
		}
	}

	return one(models.SocialProfile{
		URL:         resp.FinalURL,
		Username:    email,
		NetworkName: s.name,
		Existe:      found,
		Metadata: map[string]any{
			"status_code": resp.StatusCode,
			"final_url":   resp.FinalURL,
			"heuristic":   "content",
		},
	}), nil
}

// NewOpenPGPKeysScanner ищет email на keys.openpgp.org.
func NewOpenPGPKeysScanner(settings *config.Settings) Scanner {
	return &pgpScanner{
		settings:    settings,
		name:        "openpgp_keys",
		urlTemplate: "https://keys.openpgp.org/search?q=%s",
	}
}

// NewUbuntuKeyserverScanner ищет email на keyserver.ubuntu.com (HKP index).
func NewUbuntuKeyserverScanner(settings *config.Settings) Scanner {
	return &pgpScanner{
		settings:    settings,
		name:        "ubuntu_keyserver",
		urlTemplate: "https://keyserver.ubuntu.com/pks/lookup?op=index&search=%s",
	}
}
