package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/BetterCallFirewall/Identrecon/internal/breach"
	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/enrich"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
	"github.com/BetterCallFirewall/Identrecon/internal/scanners"
	"github.com/BetterCallFirewall/Identrecon/internal/sherlock"
	"github.com/BetterCallFirewall/Identrecon/internal/sitelist"
)

// legacyPlaceholderHost — исторический плейсхолдер в URL некоторых
// сканеров; переписывается на актуальный хост.
const (
	legacyPlaceholderHost = "example.invalid/x/"
	legacyReplacementHost = "x.com/"
)

// enricherConcurrencyCap — верхняя граница пула HTML-обогащения.
const enricherConcurrencyCap = 20

// Orchestrator владеет реестрами сканеров и настройками.
// Множества идентификаторов и список профилей — single-writer:
// результаты горутин сливаются на треде оркестратора.
type Orchestrator struct {
	settings         *config.Settings
	usernameScanners []scanners.Scanner
	emailScanners    []scanners.Scanner
}

// New собирает оркестратор с полными реестрами сканеров.
// Breach-check подключается как ещё один email-сканер.
func New(settings *config.Settings) *Orchestrator {
	emailScanners := scanners.EmailScanners(settings)
	emailScanners = append(emailScanners, &breachScanner{checker: breach.NewChecker(settings)})

	return &Orchestrator{
		settings:         settings,
		usernameScanners: scanners.UsernameScanners(settings),
		emailScanners:    emailScanners,
	}
}

// breachScanner адаптирует breach.Checker к контракту сканера.
type breachScanner struct {
	checker *breach.Checker
}

func (s *breachScanner) Name() string { return "hibp" }

func (s *breachScanner) Scan(ctx context.Context, email string) ([]models.SocialProfile, error) {
	return s.checker.CheckEmails(ctx, []string{email}), nil
}

// scanJob — одна пара (сканер, значение) внутри итерации worklist.
type scanJob struct {
	scanner     scanners.Scanner
	value       string
	derivedFrom string
}

// safeScan изолирует сбой одного сканера: ошибка превращается в
// несуществующий профиль с metadata{error, scanner}.
func safeScan(ctx context.Context, job scanJob) []models.SocialProfile {
	network := job.scanner.Name()

	collected, err := job.scanner.Scan(ctx, job.value)
	if err != nil {
		scannerLabel := fmt.Sprintf("%T", job.scanner)
		if i := strings.LastIndex(scannerLabel, "."); i >= 0 {
			scannerLabel = scannerLabel[i+1:]
		}
		log.Debug().Err(err).Str("scanner", scannerLabel).Str("value", job.value).Msg("scanner failed")

		metadata := map[string]any{
			"error":   err.Error(),
			"scanner": scannerLabel,
		}
		if job.derivedFrom != "" {
			metadata["derived_from"] = job.derivedFrom
		}
		return []models.SocialProfile{{
			URL:         fmt.Sprintf("https://%s.com/%s", network, job.value),
			Username:    job.value,
			NetworkName: network,
			Existe:      false,
			Metadata:    metadata,
		}}
	}

	for i := range collected {
		if job.derivedFrom != "" {
			collected[i].MergeMeta(map[string]any{"derived_from": job.derivedFrom})
		}
		if strings.Contains(collected[i].URL, legacyPlaceholderHost) {
			collected[i].URL = strings.ReplaceAll(collected[i].URL, legacyPlaceholderHost, legacyReplacementHost)
		}
	}
	return collected
}

// runJobs выполняет пачку заданий конкурентно и сливает результаты.
func runJobs(ctx context.Context, jobs []scanJob) []models.SocialProfile {
	var mu sync.Mutex
	var collected []models.SocialProfile

	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			result := safeScan(ctx, job)
			mu.Lock()
			collected = append(collected, result...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return collected
}

// Hunt выполняет полный прогон пайплайна для запроса.
// Оркестратор не имеет ошибочного выхода при обычной работе: всегда
// возвращает агрегат, проблемы источников локализованы в профилях.
func (o *Orchestrator) Hunt(ctx context.Context, request HuntRequest, hooks *Hooks) *PipelineResult {
	var warnings []string
	warn := func(message string) {
		warnings = append(warnings, message)
		hooks.warn(message)
		log.Warn().Msg(message)
	}

	allUsernames := map[string]bool{}
	allEmails := map[string]bool{}
	for _, u := range request.Usernames {
		if u = strings.TrimSpace(u); u != "" {
			allUsernames[u] = true
		}
	}
	for _, e := range request.Emails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			allEmails[e] = true
		}
	}

	scannedUsernames := map[string]bool{}
	scannedEmails := map[string]bool{}
	var profiles []models.SocialProfile

	// Worklist: множества только растут, поэтому итерация конечна.
	for {
		newUsernames := setDiff(allUsernames, scannedUsernames)
		newEmails := setDiff(allEmails, scannedEmails)
		if len(newUsernames) == 0 && len(newEmails) == 0 {
			break
		}

		var jobs []scanJob
		for _, username := range newUsernames {
			for _, s := range o.usernameScanners {
				jobs = append(jobs, scanJob{scanner: s, value: username})
			}
		}
		for _, email := range newEmails {
			for _, s := range o.emailScanners {
				jobs = append(jobs, scanJob{scanner: s, value: email})
			}
		}
		if request.ScanLocalpart {
			for _, email := range newEmails {
				localpart := strings.SplitN(email, "@", 2)[0]
				allUsernames[localpart] = true
				if scannedUsernames[localpart] {
					continue
				}
				for _, s := range o.usernameScanners {
					jobs = append(jobs, scanJob{scanner: s, value: localpart, derivedFrom: "email_localpart"})
				}
				scannedUsernames[localpart] = true
			}
		}

		log.Debug().Int("jobs", len(jobs)).Msg("worklist iteration")
		profiles = append(profiles, runJobs(ctx, jobs)...)

		for _, u := range newUsernames {
			scannedUsernames[u] = true
		}
		for _, e := range newEmails {
			scannedEmails[e] = true
		}

		extraUsernames, extraEmails := extractExtras(profiles)
		mergeSet(allUsernames, extraUsernames)
		mergeSet(allEmails, extraEmails)
	}

	usernames := sortedKeys(allUsernames)
	emails := sortedKeys(allEmails)

	maxConcurrency := request.SiteLists.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = o.settings.SitesMaxConcurrency
	}
	noNSFW := o.settings.SitesNoNSFW
	if request.SiteLists.NoNSFW != nil {
		noNSFW = *request.SiteLists.NoNSFW
	}

	if request.SiteLists.Enabled {
		profiles = append(profiles, o.runSiteLists(ctx, request, usernames, emails, maxConcurrency, noNSFW, warn)...)
	}

	if request.UseSherlock && len(usernames) > 0 {
		profiles = append(profiles, o.runSherlock(ctx, request, usernames, maxConcurrency, noNSFW, hooks, warn)...)
	}

	profiles = dedupeProfiles(profiles)

	if request.Strict && len(request.Usernames) > 0 {
		profiles = applyStrictFilter(profiles, usernames)
	}

	enrichConcurrency := maxConcurrency
	if enrichConcurrency > enricherConcurrencyCap {
		enrichConcurrency = enricherConcurrencyCap
	}
	enrich.FromHTML(ctx, profiles, o.settings, enrichConcurrency)

	// Обогащение могло добавить новые идентификаторы в evidence.
	extraUsernames, extraEmails := extractExtras(profiles)
	mergeSet(allUsernames, extraUsernames)
	mergeSet(allEmails, extraEmails)
	usernames = sortedKeys(allUsernames)
	emails = sortedKeys(allEmails)

	person := &models.PersonEntity{
		Target:   buildTargetLabel(usernames, emails),
		Profiles: profiles,
	}

	return &PipelineResult{
		Person:    person,
		Usernames: usernames,
		Emails:    emails,
		Warnings:  warnings,
	}
}

func (o *Orchestrator) runSiteLists(
	ctx context.Context,
	request HuntRequest,
	usernames, emails []string,
	maxConcurrency int,
	noNSFW bool,
	warn func(string),
) []models.SocialProfile {
	var out []models.SocialProfile

	if len(usernames) > 0 {
		path := request.SiteLists.UsernamePath
		if path == "" {
			path = o.settings.UsernameSitesPath
		}
		if resolved, ok := sitelist.ResolveListPath(path); ok {
			file, err := sitelist.LoadUsernameSites(resolved)
			if err != nil {
				warn(fmt.Sprintf("Site-lists for usernames unusable: %v", err))
			} else {
				out = append(out, sitelist.RunUsernameSites(
					ctx, usernames, file.Sites, o.settings,
					maxConcurrency, request.SiteLists.Categories, noNSFW,
				)...)
			}
		} else {
			warn("Site-lists for usernames not configured (missing path).")
		}
	}

	if len(emails) > 0 {
		path := request.SiteLists.EmailPath
		if path == "" {
			path = o.settings.EmailSitesPath
		}
		if resolved, ok := sitelist.ResolveListPath(path); ok {
			file, err := sitelist.LoadEmailSites(resolved)
			if err != nil {
				warn(fmt.Sprintf("Site-lists for emails unusable: %v", err))
			} else {
				out = append(out, sitelist.RunEmailSites(
					ctx, emails, file.Sites, o.settings,
					maxConcurrency, request.SiteLists.Categories, noNSFW,
				)...)
			}
		} else {
			warn("Site-lists for emails not configured (missing path).")
		}
	}

	return out
}

func (o *Orchestrator) runSherlock(
	ctx context.Context,
	request HuntRequest,
	usernames []string,
	maxConcurrency int,
	noNSFW bool,
	hooks *Hooks,
	warn func(string),
) []models.SocialProfile {
	manifest, err := sherlock.LoadManifest(request.SherlockManifestPath)
	if err != nil {
		warn(fmt.Sprintf("Sherlock manifest unusable: %v", err))
		return nil
	}

	total := len(manifest.FilteredSites(noNSFW)) * len(usernames)
	if total == 0 {
		return nil
	}
	hooks.sherlockStart(total)

	return sherlock.Run(ctx, usernames, manifest, o.settings, maxConcurrency, noNSFW,
		func(done, totalSites int, site string) {
			hooks.sherlockProgress(done, totalSites, site)
		})
}

func setDiff(all, scanned map[string]bool) []string {
	var out []string
	for key := range all {
		if !scanned[key] {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func mergeSet(into map[string]bool, from map[string]bool) {
	for key := range from {
		into[key] = true
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
