package llm

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// maxHeuristicBreachTitles ограничивает список названий брешей в секции 6.
const maxHeuristicBreachTitles = 6

// HeuristicReport — детерминированный fallback, когда путь IA не дал
// достоверного результата (нет ключа, исчерпаны ретраи, шаблонный ответ).
//
// Структура фиксирована: шесть секций на запрошенном языке; секции
// 1, 2, 3, 5 честно говорят "недостаточно evidence"; секция 4 — счётчики
// и сети; секция 6 — email-адреса и результаты проверки брешей.
func HeuristicReport(person *models.PersonEntity, lang models.Language, reason string) *models.AnalysisReport {
	confirmed := person.ConfirmedProfiles()

	networkSet := map[string]bool{}
	emailSet := map[string]bool{}
	for i := range confirmed {
		networkSet[strings.ToLower(confirmed[i].NetworkName)] = true
		if strings.Contains(confirmed[i].Username, "@") {
			emailSet[strings.ToLower(confirmed[i].Username)] = true
		}
	}
	networks := make([]string, 0, len(networkSet))
	for n := range networkSet {
		networks = append(networks, n)
	}
	sort.Strings(networks)
	emails := make([]string, 0, len(emailSet))
	for e := range emailSet {
		emails = append(emails, e)
	}
	sort.Strings(emails)

	breaches := BreachEvidence(person)

	spanish := lang == models.LanguageSpanish

	insufficient := "Insufficient evidence for automated deduction."
	if spanish {
		insufficient = "Evidencia insuficiente para deducción automática."
	}

	var b strings.Builder
	section := func(heading, body string) {
		b.WriteString(heading)
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	if spanish {
		section("## 1. Identidad y Demografía", insufficient)
		section("## 2. Análisis Geo-Temporal", insufficient)
		section("## 3. Perfil Psicológico (OCEAN)", insufficient)
		section("## 4. Perfil Técnico y Profesional", fmt.Sprintf(
			"Perfiles confirmados: %d de %d comprobados. Redes: %s.",
			len(confirmed), len(person.Profiles), joinOrDash(networks)))
		section("## 5. Ideología y Valores", insufficient)
		section("## 6. Vectores de Ataque (OpSec)", buildOpsecBody(emails, breaches, spanish))
	} else {
		section("## 1. Identity & Demographics", insufficient)
		section("## 2. Geo-Temporal Analysis", insufficient)
		section("## 3. Psychological Profile (OCEAN)", insufficient)
		section("## 4. Technical & Professional Profile", fmt.Sprintf(
			"Confirmed profiles: %d of %d checked. Networks: %s.",
			len(confirmed), len(person.Profiles), joinOrDash(networks)))
		section("## 5. Ideology & Values", insufficient)
		section("## 6. Attack Surface (OpSec)", buildOpsecBody(emails, breaches, spanish))
	}

	highlights := []string{
		fmt.Sprintf("%d confirmed profiles out of %d checked", len(confirmed), len(person.Profiles)),
		fmt.Sprintf("Confirmed networks: %s", joinOrDash(networks)),
	}
	if spanish {
		highlights = []string{
			fmt.Sprintf("%d perfiles confirmados de %d comprobados", len(confirmed), len(person.Profiles)),
			fmt.Sprintf("Redes confirmadas: %s", joinOrDash(networks)),
		}
	}
	if hasAnyBreach(breaches) {
		if spanish {
			highlights = append(highlights, "Al menos un correo aparece en brechas públicas")
		} else {
			highlights = append(highlights, "At least one email appears in public breaches")
		}
	}

	return &models.AnalysisReport{
		Summary:     strings.TrimSpace(b.String()),
		Highlights:  highlights,
		Confidence:  0.25,
		GeneratedAt: time.Now().UTC(),
		Model:       models.HeuristicModel,
		Raw:         map[string]any{"reason": reason},
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func hasAnyBreach(breaches map[string][]string) bool {
	for _, titles := range breaches {
		if len(titles) > 0 {
			return true
		}
	}
	return false
}

func buildOpsecBody(emails []string, breaches map[string][]string, spanish bool) string {
	var lines []string

	if len(emails) > 0 {
		if spanish {
			lines = append(lines, fmt.Sprintf("Correos observados: %s.", strings.Join(emails, ", ")))
		} else {
			lines = append(lines, fmt.Sprintf("Observed emails: %s.", strings.Join(emails, ", ")))
		}
	} else {
		if spanish {
			lines = append(lines, "No se observaron correos.")
		} else {
			lines = append(lines, "No emails observed.")
		}
	}

	breachEmails := make([]string, 0, len(breaches))
	for email := range breaches {
		breachEmails = append(breachEmails, email)
	}
	sort.Strings(breachEmails)

	for _, email := range breachEmails {
		titles := breaches[email]
		shown := titles
		overflow := 0
		if len(shown) > maxHeuristicBreachTitles {
			overflow = len(shown) - maxHeuristicBreachTitles
			shown = shown[:maxHeuristicBreachTitles]
		}
		detail := strings.Join(shown, ", ")
		if spanish {
			if overflow > 0 {
				detail = fmt.Sprintf("%s, +%d más", detail, overflow)
			}
			lines = append(lines, fmt.Sprintf("%s: %d brechas (%s).", email, len(titles), detail))
		} else {
			if overflow > 0 {
				detail = fmt.Sprintf("%s, +%d more", detail, overflow)
			}
			lines = append(lines, fmt.Sprintf("%s: %d breaches (%s).", email, len(titles), detail))
		}
	}

	return strings.Join(lines, "\n")
}
