// Package httpclient — фабрика HTTP клиентов для всех OSINT источников.
// Централизует таймауты и заголовки, чтобы все сканеры вели себя одинаково.
package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
)

// maxBodyBytes ограничивает чтение тела ответа (страницы профилей небольшие,
// всё сверх лимита — мусор для эвристик).
const maxBodyBytes = 4 << 20

const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Client — короткоживущий HTTP клиент с едиными заголовками.
type Client struct {
	hc      *http.Client
	headers map[string]string
}

// Response — прочитанный целиком ответ источника.
type Response struct {
	StatusCode int
	FinalURL   string
	Header     http.Header
	Body       []byte
}

// Text возвращает тело ответа как строку.
func (r *Response) Text() string {
	return string(r.Body)
}

// Build создаёт клиент с таймаутом и заголовками из настроек.
// extraHeaders перекрывают дефолтные (User-Agent, Accept).
func Build(settings *config.Settings, extraHeaders map[string]string) *Client {
	headers := map[string]string{
		"User-Agent": settings.UserAgent,
		"Accept":     acceptHTML,
	}
	for k, v := range extraHeaders {
		headers[k] = v
	}
	return &Client{
		hc: &http.Client{
			Timeout: settings.HTTPTimeout(),
			// Редиректы следуем по умолчанию: финальный URL — часть evidence.
		},
		headers: headers,
	}
}

func (c *Client) do(req *http.Request) (*Response, error) {
	for k, v := range c.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	finalURL := req.URL.String()
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		StatusCode: resp.StatusCode,
		FinalURL:   finalURL,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Get выполняет GET с заголовками клиента.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Post выполняет POST; headers перекрывают заголовки клиента для этого запроса.
func (c *Client) Post(ctx context.Context, url string, body []byte, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req)
}
