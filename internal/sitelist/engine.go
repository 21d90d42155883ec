package sitelist

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

const nsfwCategory = "nsfw"

// ExpandTemplate подставляет идентификатор в uri_check/data шаблон.
// Каталоги используют либо "{account}", либо голый "{}" плейсхолдер.
func ExpandTemplate(template, value string) string {
	if strings.Contains(template, "{account}") {
		return strings.ReplaceAll(template, "{account}", value)
	}
	return strings.ReplaceAll(template, "{}", value)
}

// siteAllowed применяет NSFW и whitelist-фильтры категорий.
func siteAllowed(cat string, categories map[string]bool, noNSFW bool) bool {
	if noNSFW && strings.EqualFold(cat, nsfwCategory) {
		return false
	}
	if len(categories) > 0 && !categories[strings.ToLower(cat)] {
		return false
	}
	return true
}

// decideExistence — контракт движка: статус равен e_code И тело содержит
// e_string; совпавшие m_code/m_string — жёсткий негатив.
func decideExistence(status int, body string, eCode int, eString, mString string, mCode int) bool {
	if mCode != 0 && status == mCode {
		return false
	}
	if mString != "" && strings.Contains(body, mString) {
		return false
	}
	return status == eCode && strings.Contains(body, eString)
}

type task struct {
	value string
	run   func(ctx context.Context, value string) models.SocialProfile
}

// runBounded исполняет задачи пулом из maxConcurrency одновременных запросов.
func runBounded(ctx context.Context, tasks []task, maxConcurrency int) []models.SocialProfile {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	sem := semaphore.NewWeighted(int64(maxConcurrency))
	results := make([]models.SocialProfile, len(tasks))

	var wg sync.WaitGroup
	for i, t := range tasks {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Контекст отменён: оставшиеся задачи помечаем как ошибочные.
			results[i] = models.SocialProfile{
				Username: t.value,
				Metadata: map[string]any{"error": err.Error()},
			}
			continue
		}
		wg.Add(1)
		go func(i int, t task) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = t.run(ctx, t.value)
		}(i, t)
	}
	wg.Wait()

	return results
}

// RunUsernameSites прогоняет всех username по каталогу сайтов.
func RunUsernameSites(
	ctx context.Context,
	usernames []string,
	sites []UsernameSite,
	settings *config.Settings,
	maxConcurrency int,
	categories map[string]bool,
	noNSFW bool,
) []models.SocialProfile {
	var tasks []task
	for _, site := range sites {
		if !siteAllowed(site.Cat, categories, noNSFW) {
			continue
		}
		site := site
		for _, username := range usernames {
			tasks = append(tasks, task{
				value: username,
				run: func(ctx context.Context, value string) models.SocialProfile {
					return checkUsernameSite(ctx, site, value, settings)
				},
			})
		}
	}

	log.Debug().Int("tasks", len(tasks)).Msg("site-list username sweep")
	return runBounded(ctx, tasks, maxConcurrency)
}

// RunEmailSites прогоняет все email по каталогу сайтов.
func RunEmailSites(
	ctx context.Context,
	emails []string,
	sites []EmailSite,
	settings *config.Settings,
	maxConcurrency int,
	categories map[string]bool,
	noNSFW bool,
) []models.SocialProfile {
	var tasks []task
	for _, site := range sites {
		if !siteAllowed(site.Cat, categories, noNSFW) {
			continue
		}
		site := site
		for _, email := range emails {
			tasks = append(tasks, task{
				value: email,
				run: func(ctx context.Context, value string) models.SocialProfile {
					return checkEmailSite(ctx, site, value, settings)
				},
			})
		}
	}

	log.Debug().Int("tasks", len(tasks)).Msg("site-list email sweep")
	return runBounded(ctx, tasks, maxConcurrency)
}

func checkUsernameSite(ctx context.Context, site UsernameSite, username string, settings *config.Settings) models.SocialProfile {
	url := ExpandTemplate(site.URICheck, username)

	profile := models.SocialProfile{
		URL:         url,
		Username:    username,
		NetworkName: strings.ToLower(site.Name),
		Metadata:    map[string]any{"source": "site_list"},
	}
	if site.Cat != "" {
		profile.Metadata["category"] = site.Cat
	}

	client := httpclient.Build(settings, nil)
	resp, err := client.Get(ctx, url)
	if err != nil {
		profile.Metadata["error"] = err.Error()
		return profile
	}

	profile.Metadata["status_code"] = resp.StatusCode
	profile.Metadata["final_url"] = resp.FinalURL
	profile.Existe = decideExistence(resp.StatusCode, resp.Text(), site.ECode, site.EString, site.MString, site.MCode)
	return profile
}

func checkEmailSite(ctx context.Context, site EmailSite, email string, settings *config.Settings) models.SocialProfile {
	value := ApplyInputOperation(email, site.InputOperation)
	url := ExpandTemplate(site.URICheck, value)

	profile := models.SocialProfile{
		URL:         url,
		Username:    email,
		NetworkName: strings.ToLower(site.Name),
		Metadata:    map[string]any{"source": "site_list"},
	}
	if site.Cat != "" {
		profile.Metadata["category"] = site.Cat
	}

	client := httpclient.Build(settings, site.Headers)

	var resp *httpclient.Response
	var err error
	if strings.EqualFold(site.Method, "POST") {
		body := []byte(ExpandTemplate(site.Data, value))
		resp, err = client.Post(ctx, url, body, nil)
	} else {
		resp, err = client.Get(ctx, url)
	}
	if err != nil {
		profile.Metadata["error"] = err.Error()
		return profile
	}

	profile.Metadata["status_code"] = resp.StatusCode
	profile.Metadata["final_url"] = resp.FinalURL
	profile.Existe = decideExistence(resp.StatusCode, resp.Text(), site.ECode, site.EString, site.MString, site.MCode)
	return profile
}
