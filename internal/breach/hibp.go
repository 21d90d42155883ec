// Package breach — адаптер проверки утечек (unifiedsearch).
//
// Эндпоинт прячется за анти-ботом, поэтому основной транспорт —
// tls-client с браузерным ClientHello профилем; если его не удалось
// поднять, работаем через обычный клиент фабрики.
package breach

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/httpclient"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

const defaultHost = "https://haveibeenpwned.com"

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/144.0.0.0 Safari/537.36 Edg/144.0.0.0"

// Checker проверяет email-адреса по публичному индексу брешей.
type Checker struct {
	settings  *config.Settings
	host      string
	tlsClient tls_client.HttpClient
	fallback  *httpclient.Client
}

// NewChecker собирает checker; tls-client поднимается best-effort.
func NewChecker(settings *config.Settings) *Checker {
	c := &Checker{
		settings: settings,
		host:     defaultHost,
		fallback: httpclient.Build(settings, nil),
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(settings.HTTPTimeoutSeconds)),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithRandomTLSExtensionOrder(),
	}
	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		// Исторически tls-транспорт падал на этапе загрузки; деградируем тихо.
		log.Debug().Err(err).Msg("tls transport unavailable, using plain client")
		return c
	}
	c.tlsClient = tlsClient
	return c
}

// browserHeaders — реалистичный набор заголовков браузера.
// traceparent/request-id генерируются на каждый запрос.
func browserHeaders() map[string]string {
	traceID := strings.ReplaceAll(uuid.New().String(), "-", "")
	spanID := strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	return map[string]string{
		"accept":             "*/*",
		"priority":           "u=1, i",
		"referer":            "https://haveibeenpwned.com/",
		"request-id":         fmt.Sprintf("|%s.%s", traceID, spanID),
		"sec-ch-ua":          `"Not(A:Brand";v="8", "Chromium";v="144", "Microsoft Edge";v="144"`,
		"sec-ch-ua-mobile":   "?0",
		"sec-ch-ua-platform": `"Windows"`,
		"sec-fetch-dest":     "empty",
		"sec-fetch-mode":     "cors",
		"sec-fetch-site":     "same-origin",
		"traceparent":        fmt.Sprintf("00-%s-%s-01", traceID, spanID),
		"user-agent":         browserUserAgent,
	}
}

func (c *Checker) get(ctx context.Context, url string) (int, []byte, error) {
	headers := browserHeaders()

	if c.tlsClient != nil {
		req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, url, nil)
		if err != nil {
			return 0, nil, err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := c.tlsClient.Do(req)
		if err == nil {
			defer resp.Body.Close()
			body, readErr := readAll(resp)
			return resp.StatusCode, body, readErr
		}
		// tls-транспорт может отвалиться в рантайме; пробуем обычный клиент.
		log.Debug().Err(err).Msg("tls request failed, retrying with plain client")
	}

	// Обычный клиент получает тот же браузерный набор заголовков; ключи
	// канонизируются, чтобы они перекрыли дефолтные User-Agent/Accept фабрики.
	fallbackHeaders := make(map[string]string, len(headers))
	for k, v := range headers {
		fallbackHeaders[http.CanonicalHeaderKey(k)] = v
	}
	resp, err := httpclient.Build(c.settings, fallbackHeaders).Get(ctx, url)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, resp.Body, nil
}

// CheckEmails возвращает по одному профилю "hibp" на каждый email.
func (c *Checker) CheckEmails(ctx context.Context, emails []string) []models.SocialProfile {
	out := make([]models.SocialProfile, 0, len(emails))
	for _, email := range emails {
		out = append(out, c.checkOne(ctx, email))
	}
	return out
}

func (c *Checker) checkOne(ctx context.Context, email string) models.SocialProfile {
	unifiedURL := fmt.Sprintf("%s/unifiedsearch/%s", c.host, email)

	status, body, err := c.get(ctx, unifiedURL)

	profile := models.SocialProfile{
		URL:         unifiedURL,
		Username:    email,
		NetworkName: "hibp",
		Metadata: map[string]any{
			"source":      "haveibeenpwned_unifiedsearch",
			"status_code": status,
		},
	}

	if err != nil {
		profile.Metadata["error"] = "hibp_request_failed"
		return profile
	}

	var payload struct {
		Breaches []models.HIBPBreach `json:"Breaches"`
	}
	if status != 200 || json.Unmarshal(body, &payload) != nil {
		if status != 0 {
			profile.Metadata["error"] = fmt.Sprintf("hibp_http_%d", status)
		} else {
			profile.Metadata["error"] = "hibp_no_response"
		}
		return profile
	}

	hibp := models.HIBPProfile{Email: email, Breaches: payload.Breaches}
	profile.Existe = true
	profile.Metadata["breach_count"] = len(hibp.Breaches)
	profile.Metadata["breaches"] = hibp
	return profile
}

func readAll(resp *fhttp.Response) ([]byte, error) {
	const maxBody = 4 << 20
	return io.ReadAll(io.LimitReader(resp.Body, maxBody))
}
