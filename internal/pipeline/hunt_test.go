package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
	"github.com/BetterCallFirewall/Identrecon/internal/scanners"
)

// stubScanner — управляемый сканер для тестов worklist.
type stubScanner struct {
	name string
	// results: value -> профили; отсутствие ключа — existe=false.
	results map[string][]models.SocialProfile
	err     error

	mu      sync.Mutex
	scanned []string
}

func (s *stubScanner) Name() string { return s.name }

func (s *stubScanner) Scan(ctx context.Context, value string) ([]models.SocialProfile, error) {
	s.mu.Lock()
	s.scanned = append(s.scanned, value)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	if result, ok := s.results[value]; ok {
		return result, nil
	}
	return []models.SocialProfile{{
		URL:         fmt.Sprintf("https://%s.example/%s", s.name, value),
		Username:    value,
		NetworkName: s.name,
		Existe:      false,
		Metadata:    map[string]any{"status_code": 404},
	}}, nil
}

func (s *stubScanner) scannedValues() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.scanned...)
}

func testOrchestrator(usernameScanners, emailScanners []scanners.Scanner) *Orchestrator {
	return &Orchestrator{
		settings:         config.Default(),
		usernameScanners: usernameScanners,
		emailScanners:    emailScanners,
	}
}

func existingProfile(network, username string, meta map[string]any) models.SocialProfile {
	if meta == nil {
		meta = map[string]any{}
	}
	meta["status_code"] = 200
	return models.SocialProfile{
		URL:         fmt.Sprintf("https://%s.example/%s", network, username),
		Username:    username,
		NetworkName: network,
		Existe:      true,
		Metadata:    meta,
	}
}

func TestHunt_EmptyRequest(t *testing.T) {
	o := testOrchestrator(nil, nil)

	result := o.Hunt(context.Background(), HuntRequest{}, nil)

	require.NotNil(t, result)
	assert.Empty(t, result.Person.Profiles)
	assert.Equal(t, "target", result.Person.Target)
	assert.Empty(t, result.Usernames)
	assert.Empty(t, result.Emails)
}

func TestHunt_SingleUsername(t *testing.T) {
	github := &stubScanner{
		name: "github",
		results: map[string][]models.SocialProfile{
			"octocat": {existingProfile("github", "octocat", map[string]any{"bio": "B"})},
		},
	}

	o := testOrchestrator([]scanners.Scanner{github}, nil)
	result := o.Hunt(context.Background(), HuntRequest{Usernames: []string{"octocat"}}, nil)

	require.Len(t, result.Person.Profiles, 1)
	p := result.Person.Profiles[0]
	assert.Equal(t, "github", p.NetworkName)
	assert.True(t, p.Existe)
	assert.Equal(t, []string{"octocat"}, result.Usernames)
	assert.Equal(t, "octocat", result.Person.Target)
}

func TestHunt_TransitiveDiscovery(t *testing.T) {
	// github находит новый username в метадате; второй сканер должен
	// просканировать его на следующей итерации worklist.
	github := &stubScanner{
		name: "github",
		results: map[string][]models.SocialProfile{
			"jane": {existingProfile("github", "jane", map[string]any{
				"other_users": []any{"jdoe"},
			})},
		},
	}
	reddit := &stubScanner{name: "reddit"}

	o := testOrchestrator([]scanners.Scanner{github, reddit}, nil)
	result := o.Hunt(context.Background(), HuntRequest{Usernames: []string{"jane"}}, nil)

	assert.ElementsMatch(t, []string{"jane", "jdoe"}, github.scannedValues())
	assert.ElementsMatch(t, []string{"jane", "jdoe"}, reddit.scannedValues())
	assert.Equal(t, []string{"jane", "jdoe"}, result.Usernames)

	// Closure: идентификаторы из финальных профилей ⊆ отчётных множеств.
	extraU, extraE := extractExtras(result.Person.Profiles)
	for username := range extraU {
		assert.Contains(t, result.Usernames, username)
	}
	for email := range extraE {
		assert.Contains(t, result.Emails, email)
	}
}

func TestHunt_EmailLocalpart(t *testing.T) {
	gravatar := &stubScanner{name: "gravatar"}
	github := &stubScanner{name: "github"}

	o := testOrchestrator([]scanners.Scanner{github}, []scanners.Scanner{gravatar})
	result := o.Hunt(context.Background(), HuntRequest{
		Emails:        []string{" A@B.com "},
		ScanLocalpart: true,
	}, nil)

	// Email нормализован, localpart «a» просканирован username-сканерами.
	assert.Equal(t, []string{"a@b.com"}, result.Emails)
	assert.Contains(t, result.Usernames, "a")
	assert.ElementsMatch(t, []string{"a@b.com"}, gravatar.scannedValues())
	assert.ElementsMatch(t, []string{"a"}, github.scannedValues())

	// derived_from проставлен на профилях localpart-скана.
	var sawDerived bool
	for _, p := range result.Person.Profiles {
		if p.NetworkName == "github" {
			assert.Equal(t, "email_localpart", p.Metadata["derived_from"])
			sawDerived = true
		}
	}
	assert.True(t, sawDerived)
}

func TestHunt_ScannerFailureIsIsolated(t *testing.T) {
	broken := &stubScanner{name: "medium", err: errors.New("boom")}
	healthy := &stubScanner{
		name: "github",
		results: map[string][]models.SocialProfile{
			"jane": {existingProfile("github", "jane", nil)},
		},
	}

	o := testOrchestrator([]scanners.Scanner{broken, healthy}, nil)
	result := o.Hunt(context.Background(), HuntRequest{Usernames: []string{"jane"}}, nil)

	require.Len(t, result.Person.Profiles, 2)

	var fallback *models.SocialProfile
	for i := range result.Person.Profiles {
		if result.Person.Profiles[i].NetworkName == "medium" {
			fallback = &result.Person.Profiles[i]
		}
	}
	require.NotNil(t, fallback, "broken scanner must yield a fallback profile")
	assert.False(t, fallback.Existe)
	assert.Equal(t, "boom", fallback.Metadata["error"])
	assert.Equal(t, "stubScanner", fallback.Metadata["scanner"])
	assert.Equal(t, "https://medium.com/jane", fallback.URL)
}

func TestHunt_DeduplicatesProfiles(t *testing.T) {
	duplicate := existingProfile("github", "jane", nil)
	// Два сканера возвращают одинаковую тройку (network, username, url).
	s1 := &stubScanner{name: "github", results: map[string][]models.SocialProfile{"jane": {duplicate}}}
	s2 := &stubScanner{name: "mirror", results: map[string][]models.SocialProfile{"jane": {duplicate}}}

	o := testOrchestrator([]scanners.Scanner{s1, s2}, nil)
	result := o.Hunt(context.Background(), HuntRequest{Usernames: []string{"jane"}}, nil)

	seen := map[models.ProfileKey]int{}
	for _, p := range result.Person.Profiles {
		seen[p.Key()]++
	}
	for key, count := range seen {
		assert.Equal(t, 1, count, "duplicate triple %v", key)
	}
}

func TestHunt_ErrorCompletenessInvariant(t *testing.T) {
	broken := &stubScanner{name: "kaggle", err: errors.New("dial tcp: timeout")}
	notFound := &stubScanner{name: "npm"}

	o := testOrchestrator([]scanners.Scanner{broken, notFound}, nil)
	result := o.Hunt(context.Background(), HuntRequest{Usernames: []string{"jane"}}, nil)

	for _, p := range result.Person.Profiles {
		if p.Existe {
			continue
		}
		_, hasStatus := p.Metadata["status_code"]
		_, hasError := p.Metadata["error"]
		assert.True(t, hasStatus || hasError, "profile %s/%s lacks status_code and error", p.NetworkName, p.Username)
	}
}

func TestHunt_LegacyPlaceholderHostRewritten(t *testing.T) {
	x := &stubScanner{
		name: "x",
		results: map[string][]models.SocialProfile{
			"jane": {{
				URL:         "https://example.invalid/x/jane",
				Username:    "jane",
				NetworkName: "x",
				Existe:      true,
				Metadata:    map[string]any{"status_code": 200},
			}},
		},
	}

	o := testOrchestrator([]scanners.Scanner{x}, nil)
	result := o.Hunt(context.Background(), HuntRequest{Usernames: []string{"jane"}}, nil)

	require.Len(t, result.Person.Profiles, 1)
	assert.Equal(t, "https://x.com/jane", result.Person.Profiles[0].URL)
}

func TestHunt_SiteListsMissingPathWarns(t *testing.T) {
	github := &stubScanner{
		name: "github",
		results: map[string][]models.SocialProfile{
			"jane": {existingProfile("github", "jane", nil)},
		},
	}

	var hookWarnings []string
	hooks := &Hooks{Warning: func(m string) { hookWarnings = append(hookWarnings, m) }}

	o := testOrchestrator([]scanners.Scanner{github}, nil)
	result := o.Hunt(context.Background(), HuntRequest{
		Usernames: []string{"jane"},
		SiteLists: SiteListOptions{Enabled: true, UsernamePath: "/definitely/missing.json"},
	}, hooks)

	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "not configured")
	assert.Equal(t, result.Warnings, hookWarnings)
}
