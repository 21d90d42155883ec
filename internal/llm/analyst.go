// Package llm — адаптер IA-аналитика поверх OpenAI-совместимого API.
//
// Поток: evidence-пейлоад → chat completion → извлечение строгого JSON →
// детект шаблонных ответов → ретраи с самокоррекцией → при исчерпании
// бюджета — локальный эвристический отчёт.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// Analyst превращает агрегат в AnalysisReport через IA-провайдера.
type Analyst struct {
	settings *config.Settings

	// sleep подменяется в тестах, чтобы не ждать настоящие бэкоффы.
	sleep func(time.Duration)
}

func NewAnalyst(settings *config.Settings) *Analyst {
	return &Analyst{settings: settings, sleep: time.Sleep}
}

// retryAfterTransport перехватывает заголовок Retry-After у 429 ответов:
// go-openai не отдаёт заголовки вместе с APIError.
type retryAfterTransport struct {
	base http.RoundTripper

	mu   sync.Mutex
	last string
}

func (t *retryAfterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		t.mu.Lock()
		t.last = resp.Header.Get("Retry-After")
		t.mu.Unlock()
	}
	return resp, err
}

// take возвращает и сбрасывает последний Retry-After (в секундах).
func (t *retryAfterTransport) take() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	raw := t.last
	t.last = ""
	if raw == "" {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds <= 0 {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}

func isLoopback(baseURL string) bool {
	u, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "0.0.0.0"
}

// modelRejected распознаёт 400/404 с семантикой "модель не найдена".
func modelRejected(message string) bool {
	m := strings.ToLower(message)
	if !strings.Contains(m, "model") {
		return false
	}
	for _, marker := range []string{"not found", "does not exist", "unknown", "unsupported", "invalid", "decommissioned"} {
		if strings.Contains(m, marker) {
			return true
		}
	}
	return false
}

// backoffDelay — 1.25 × 2^attempt секунд плюс джиттер [0, 0.35).
func backoffDelay(attempt int) time.Duration {
	seconds := 1.25*math.Pow(2, float64(attempt)) + rand.Float64()*0.35
	return time.Duration(seconds * float64(time.Second))
}

// AnalyzePerson прогоняет агрегат через IA-провайдера.
//
// Ошибки провайдера обрабатываются state machine с ретраями; при
// исчерпании бюджета возвращается эвристический отчёт. Настоящая ошибка
// возвращается только для неожиданных отказов (abort).
func (a *Analyst) AnalyzePerson(ctx context.Context, person *models.PersonEntity, lang models.Language) (*models.AnalysisReport, error) {
	payload, stats := BuildEvidencePayload(person)

	apiKey := a.settings.AIAPIKey
	if apiKey == "" {
		if !isLoopback(a.settings.AIBaseURL) {
			log.Warn().Msg("ai api key missing, falling back to heuristic report")
			return HeuristicReport(person, lang, "missing_ai_api_key"), nil
		}
		// Локальные серверы (ollama и т.п.) ключ не проверяют.
		apiKey = "local"
	}

	transport := &retryAfterTransport{base: http.DefaultTransport}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(a.settings.AIBaseURL, "/")
	cfg.HTTPClient = &http.Client{
		Timeout:   a.settings.AITimeout(),
		Transport: transport,
	}
	client := openai.NewClientWithConfig(cfg)

	model := a.settings.AIModel
	systemPrompt, maxTokens := SelectPrompt(a.settings.AIBaseURL, model, lang)

	userPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: string(userPayload)},
	}

	maxRetries := a.settings.AIMaxRetries
	attempt := 0
	modelSwitched := false

	for {
		resp, callErr := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       model,
			Messages:    messages,
			Temperature: analysisTemperature,
			MaxTokens:   maxTokens,
		})

		if callErr != nil {
			var apiErr *openai.APIError
			switch {
			case errors.As(callErr, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests:
				if attempt >= maxRetries {
					log.Warn().Msg("ai rate limit budget exhausted")
					return HeuristicReport(person, lang, "rate_limited"), nil
				}
				delay, ok := transport.take()
				if !ok {
					delay = backoffDelay(attempt)
				}
				log.Debug().Dur("delay", delay).Int("attempt", attempt).Msg("ai rate limited, retrying")
				a.sleep(delay)
				attempt++
				continue

			case errors.As(callErr, &apiErr) &&
				(apiErr.HTTPStatusCode == http.StatusBadRequest || apiErr.HTTPStatusCode == http.StatusNotFound) &&
				modelRejected(apiErr.Message):
				fallback := fallbackModelFor(a.settings.AIBaseURL)
				if fallback != "" && model != fallback && !modelSwitched {
					// Смена модели не расходует бюджет ретраев.
					log.Warn().Str("from", model).Str("to", fallback).Msg("provider rejected model, switching")
					model = fallback
					modelSwitched = true
					systemPrompt, maxTokens = SelectPrompt(a.settings.AIBaseURL, model, lang)
					messages[0].Content = systemPrompt
					continue
				}
				return nil, callErr

			case isTransient(callErr):
				if attempt >= maxRetries {
					log.Warn().Err(callErr).Msg("ai transport budget exhausted")
					return HeuristicReport(person, lang, "provider_unreachable"), nil
				}
				delay := backoffDelay(attempt)
				log.Debug().Err(callErr).Dur("delay", delay).Msg("transient ai error, retrying")
				a.sleep(delay)
				attempt++
				continue

			default:
				return nil, callErr
			}
		}

		content := ""
		if len(resp.Choices) > 0 {
			content = strings.TrimSpace(resp.Choices[0].Message.Content)
		}

		envelope, parseErr := extractEnvelope(content)
		if parseErr == nil && IsTemplateResponse(envelope.Summary, envelope.Highlights) {
			parseErr = errors.New("template response detected")
		}
		if parseErr != nil {
			if attempt >= maxRetries {
				log.Warn().Err(parseErr).Msg("ai response budget exhausted")
				return HeuristicReport(person, lang, "unusable_ai_output"), nil
			}
			// Самокоррекция: дописываем нарушивший ответ и требование
			// строгого JSON вместо пересборки диалога с нуля.
			messages = append(messages,
				openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
				openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: correctionMessage(lang)},
			)
			a.sleep(500 * time.Millisecond)
			attempt++
			continue
		}

		confidence := clampConfidence(*envelope.Confidence, stats)

		return &models.AnalysisReport{
			Summary:     SanitizeSummary(envelope.Summary),
			Highlights:  envelope.Highlights,
			Confidence:  confidence,
			GeneratedAt: time.Now().UTC(),
			Model:       model,
			Raw: map[string]any{
				"id":      resp.ID,
				"model":   resp.Model,
				"content": content,
			},
		}, nil
	}
}

func extractEnvelope(content string) (*reportEnvelope, error) {
	jsonText, err := ExtractJSONObject(content)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(jsonText)
}

// isTransient — сетевые сбои и 5xx провайдера, которые стоит повторить.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode >= 500 {
		return true
	}
	return false
}

// clampConfidence ограничивает уверенность, когда в evidence не было ни
// текстовых сэмплов, ни временных меток активности.
func clampConfidence(confidence float64, stats EvidenceStats) float64 {
	if stats.HasTextSamples || stats.HasActivityTimestamps {
		return confidence
	}
	limit := 0.35
	if stats.ProfileCount >= 3 {
		limit = 0.55
	}
	if confidence > limit {
		return limit
	}
	return confidence
}
