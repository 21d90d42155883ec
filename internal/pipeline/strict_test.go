package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

func sherlockProfile(network, username, finalURL string, extra map[string]any) models.SocialProfile {
	meta := map[string]any{
		"source":      "sherlock",
		"status_code": 200,
		"final_url":   finalURL,
	}
	for k, v := range extra {
		meta[k] = v
	}
	return models.SocialProfile{
		URL:         finalURL,
		Username:    username,
		NetworkName: network,
		Existe:      true,
		Metadata:    meta,
	}
}

func TestStrictKeepProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile models.SocialProfile
		want    bool
	}{
		{
			name: "non-existent always dropped",
			profile: models.SocialProfile{
				Username: "jane", NetworkName: "github", Existe: false,
				Metadata: map[string]any{"status_code": 404},
			},
			want: false,
		},
		{
			name: "non-sherlock source kept",
			profile: models.SocialProfile{
				URL: "https://github.com/jane", Username: "jane", NetworkName: "github",
				Existe: true, Metadata: map[string]any{"source": "github_api"},
			},
			want: true,
		},
		{
			name:    "denylisted sherlock network dropped",
			profile: sherlockProfile("fanpop", "jane", "https://fanpop.example/jane", nil),
			want:    false,
		},
		{
			name:    "login redirect dropped",
			profile: sherlockProfile("somesite", "jane", "https://somesite.example/login?next=profile", nil),
			want:    false,
		},
		{
			name:    "consent page dropped",
			profile: sherlockProfile("somesite", "jane", "https://somesite.example/consent", nil),
			want:    false,
		},
		{
			name:    "username in final url kept",
			profile: sherlockProfile("somesite", "jane", "https://somesite.example/users/JANE", nil),
			want:    true,
		},
		{
			name: "username in page title kept",
			profile: sherlockProfile("somesite", "jane", "https://somesite.example/p/123",
				map[string]any{"title": "Jane's profile"}),
			want: true,
		},
		{
			name: "username in meta description kept",
			profile: sherlockProfile("somesite", "jane", "https://somesite.example/p/123",
				map[string]any{"meta_description": "posts by jane"}),
			want: true,
		},
		{
			name:    "no username evidence dropped",
			profile: sherlockProfile("somesite", "jane", "https://somesite.example/p/123", nil),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strictKeepProfile(&tt.profile, "jane"))
		})
	}
}

func TestApplyStrictFilter_Soundness(t *testing.T) {
	profiles := []models.SocialProfile{
		sherlockProfile("goodsite", "jane", "https://goodsite.example/jane", nil),
		sherlockProfile("badsite", "jane", "https://badsite.example/p/1", nil),
		{Username: "jane", NetworkName: "github", Existe: false, Metadata: map[string]any{"status_code": 404}},
	}

	filtered := applyStrictFilter(profiles, []string{"jane"})

	require.Len(t, filtered, 1)
	// Strict soundness: ни одного existe=false профиля в выходе.
	for _, p := range filtered {
		assert.True(t, p.Existe)
	}
}

func TestDedupeProfiles_PreservesFirstOccurrence(t *testing.T) {
	first := models.SocialProfile{
		URL: "https://a.example/j", Username: "j", NetworkName: "n",
		Existe: true, Metadata: map[string]any{"source": "first"},
	}
	second := first
	second.Metadata = map[string]any{"source": "second"}
	other := models.SocialProfile{
		URL: "https://b.example/j", Username: "j", NetworkName: "n",
		Existe: true, Metadata: map[string]any{},
	}

	out := dedupeProfiles([]models.SocialProfile{first, second, other})

	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Metadata["source"])
}

func TestSanitizeTargetForFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "jane", want: "jane"},
		{input: "jane doe", want: "jane-doe"},
		{input: "a@b.com", want: "a_b.com"},
		{input: "c++dev", want: "c__dev"},
		{input: "--_", want: "target"},
		{input: "  ", want: "target"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeTargetForFilename(tt.input), "input %q", tt.input)
	}
}

func TestBuildTargetLabel(t *testing.T) {
	assert.Equal(t, "target", buildTargetLabel(nil, nil))
	assert.Equal(t, "jane", buildTargetLabel([]string{"jane"}, nil))
	assert.Equal(t, "jane/jdoe/a@b.com", buildTargetLabel([]string{"jane", "jdoe"}, []string{"a@b.com"}))
}
