package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

func heuristicFixture() *models.PersonEntity {
	return &models.PersonEntity{
		Target: "jane/a@b.com",
		Profiles: []models.SocialProfile{
			{URL: "https://github.com/jane", Username: "jane", NetworkName: "github", Existe: true, Metadata: map[string]any{}},
			{URL: "https://reddit.com/user/jane", Username: "jane", NetworkName: "reddit", Existe: false,
				Metadata: map[string]any{"status_code": 404}},
			{
				URL: "https://haveibeenpwned.com/unifiedsearch/a@b.com", Username: "a@b.com",
				NetworkName: "hibp", Existe: true,
				Metadata: map[string]any{
					"breaches": models.HIBPProfile{Email: "a@b.com", Breaches: []models.HIBPBreach{
						{Title: "L1"}, {Title: "L2"}, {Title: "L3"}, {Title: "L4"},
						{Title: "L5"}, {Title: "L6"}, {Title: "L7"}, {Title: "L8"},
					}},
				},
			},
		},
	}
}

func TestHeuristicReport_Structure(t *testing.T) {
	report := HeuristicReport(heuristicFixture(), models.LanguageEnglish, "missing_ai_api_key")

	require.NotNil(t, report)
	assert.Equal(t, models.HeuristicModel, report.Model)
	assert.True(t, report.IsHeuristic())
	assert.Equal(t, 0.25, report.Confidence)
	assert.Equal(t, "missing_ai_api_key", report.Raw["reason"])

	for i := 1; i <= 6; i++ {
		assert.Contains(t, report.Summary, "## "+string(rune('0'+i))+".")
	}

	// Секция 4: счётчики и сети.
	assert.Contains(t, report.Summary, "2 of 3 checked")
	assert.Contains(t, report.Summary, "github, hibp")

	// Секция 6: брешь-сводка с переполнением "+N more".
	assert.Contains(t, report.Summary, "a@b.com: 8 breaches")
	assert.Contains(t, report.Summary, "+2 more")
	assert.NotContains(t, report.Summary, "L7")
}

func TestHeuristicReport_Highlights(t *testing.T) {
	report := HeuristicReport(heuristicFixture(), models.LanguageEnglish, "rate_limited")

	require.GreaterOrEqual(t, len(report.Highlights), 3)
	assert.Contains(t, report.Highlights[0], "2 confirmed profiles")
	assert.Contains(t, report.Highlights[1], "github")
	assert.Contains(t, report.Highlights[2], "breaches")
}

func TestHeuristicReport_Spanish(t *testing.T) {
	report := HeuristicReport(heuristicFixture(), models.LanguageSpanish, "rate_limited")

	assert.Contains(t, report.Summary, "## 1. Identidad y Demografía")
	assert.Contains(t, report.Summary, "## 6. Vectores de Ataque (OpSec)")
	assert.Contains(t, report.Summary, "Evidencia insuficiente")
	assert.Contains(t, report.Summary, "brechas")
}

func TestHeuristicReport_EmptyAggregate(t *testing.T) {
	person := &models.PersonEntity{Target: "target"}

	report := HeuristicReport(person, models.LanguageEnglish, "no_evidence")

	assert.Contains(t, report.Summary, "0 of 0 checked")
	assert.Contains(t, report.Summary, "No emails observed.")
	assert.Equal(t, 0.25, report.Confidence)
}
