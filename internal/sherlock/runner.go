package sherlock

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// ProgressFunc вызывается после каждой проверенной пары (username, site).
type ProgressFunc func(done, total int, site string)

// Run прогоняет usernames по манифесту ограниченным пулом.
// Каждая пара username×site — один GET; ошибки локализуются в профиле.
func Run(
	ctx context.Context,
	usernames []string,
	manifest *Manifest,
	settings *config.Settings,
	maxConcurrency int,
	noNSFW bool,
	progress ProgressFunc,
) []models.SocialProfile {
	sites := manifest.FilteredSites(noNSFW)
	total := len(sites) * len(usernames)
	if total == 0 {
		return nil
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	log.Debug().Int("sites", len(sites)).Int("usernames", len(usernames)).Msg("sherlock sweep")

	sem := semaphore.NewWeighted(int64(maxConcurrency))
	results := make([]models.SocialProfile, total)
	var done int64

	var wg sync.WaitGroup
	i := 0
	for _, username := range usernames {
		for _, site := range sites {
			idx := i
			i++
			username, site := username, site

			if err := sem.Acquire(ctx, 1); err != nil {
				results[idx] = errorProfile(site, username, err.Error())
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release(1)
				results[idx] = checkSite(ctx, site, username, settings)
				if progress != nil {
					progress(int(atomic.AddInt64(&done, 1)), total, site.Name)
				}
			}()
		}
	}
	wg.Wait()

	return results
}

func errorProfile(site Site, username, message string) models.SocialProfile {
	return models.SocialProfile{
		URL:         ExpandURL(site.URL, username),
		Username:    username,
		NetworkName: strings.ToLower(site.Name),
		Metadata: map[string]any{
			"source": "sherlock",
			"error":  message,
		},
	}
}

// ExpandURL подставляет username в шаблон манифеста ({} плейсхолдер).
func ExpandURL(template, username string) string {
	return strings.ReplaceAll(template, "{}", username)
}

func checkSite(ctx context.Context, site Site, username string, settings *config.Settings) models.SocialProfile {
	publicURL := ExpandURL(site.URL, username)
	probeURL := publicURL
	if site.URLProbe != "" {
		probeURL = ExpandURL(site.URLProbe, username)
	}

	profile := models.SocialProfile{
		URL:         publicURL,
		Username:    username,
		NetworkName: strings.ToLower(site.Name),
		Metadata:    map[string]any{"source": "sherlock"},
	}

	client := httpclient.Build(settings, nil)
	resp, err := client.Get(ctx, probeURL)
	if err != nil {
		profile.Metadata["error"] = err.Error()
		return profile
	}

	profile.Metadata["status_code"] = resp.StatusCode
	profile.Metadata["final_url"] = resp.FinalURL
	profile.Existe = decide(site, resp)
	return profile
}

// decide применяет errorType манифеста.
func decide(site Site, resp *httpclient.Response) bool {
	switch site.ErrorType {
	case "message":
		if resp.StatusCode != 200 {
			return false
		}
		body := resp.Text()
		for _, marker := range site.ErrorMsg {
			if marker != "" && strings.Contains(body, marker) {
				return false
			}
		}
		return true
	case "status_code":
		for _, code := range site.ErrorCode {
			if resp.StatusCode == code {
				return false
			}
		}
		return resp.StatusCode == 200
	default:
		// response_url и неизвестные типы: доверяем только чистому 200.
		return resp.StatusCode == 200
	}
}
