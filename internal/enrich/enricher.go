// Package enrich — generic-обогащение подтверждённых профилей из HTML.
//
// Используется как fallback: сканер подтвердил существование (200),
// но не достал bio/аватар. Берём <title>, meta description и og:image
// с публичной страницы; любые сбои проглатываются молча.
package enrich

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// FromHTML дополняет профили in-place. Каждый профиль принадлежит ровно
// одной горутине на время вызова, поэтому записи не конфликтуют.
func FromHTML(ctx context.Context, profiles []models.SocialProfile, settings *config.Settings, maxConcurrency int) {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	sem := semaphore.NewWeighted(int64(maxConcurrency))
	client := httpclient.Build(settings, nil)

	var wg sync.WaitGroup
	for i := range profiles {
		p := &profiles[i]
		if !shouldEnrich(p) {
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			enrichOne(ctx, client, p)
		}()
	}
	wg.Wait()
}

func shouldEnrich(p *models.SocialProfile) bool {
	if !p.Existe {
		return false
	}
	// Если bio или аватар уже есть, не настаиваем.
	if p.Bio != "" || p.ImagenURL != "" {
		return false
	}
	return strings.HasPrefix(p.URL, "http://") || strings.HasPrefix(p.URL, "https://")
}

func enrichOne(ctx context.Context, client *httpclient.Client, p *models.SocialProfile) {
	resp, err := client.Get(ctx, p.URL)
	if err != nil {
		return
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return
	}

	meta := httpclient.ExtractHTMLMetadata(resp.Text(), resp.FinalURL)
	if len(meta) == 0 {
		return
	}

	// Вся извлечённая метадата уходит в evidence безусловно.
	p.MergeMeta(meta)

	if p.Bio == "" {
		if desc, ok := meta["meta_description"].(string); ok && strings.TrimSpace(desc) != "" {
			p.SetBio(desc)
		}
	}
	if p.ImagenURL == "" {
		if og, ok := meta["og_image"].(string); ok && strings.TrimSpace(og) != "" {
			p.ImagenURL = strings.TrimSpace(og)
		}
	}
}
