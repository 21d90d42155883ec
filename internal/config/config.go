package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// Settings — центральная конфигурация приложения.
// Один контракт для пайплайна и адаптеров; значения читаются из env
// (префикс IDENTRECON_) поверх .env файла.
type Settings struct {
	// HTTP
	HTTPTimeoutSeconds float64
	UserAgent          string

	// IA-провайдер (OpenAI-совместимый)
	AIAPIKey         string
	AIBaseURL        string
	AIModel          string
	AITimeoutSeconds float64
	AIMaxRetries     int

	// Site-lists (data-driven, стиль WhatsMyName/email-data)
	SitesMaxConcurrency int
	SitesNoNSFW         bool
	UsernameSitesPath   string
	EmailSitesPath      string

	DefaultLanguage models.Language
}

// Default возвращает настройки по умолчанию (без чтения env).
func Default() *Settings {
	return &Settings{
		HTTPTimeoutSeconds:  20,
		UserAgent:           "identrecon/0.1 (+https://local)",
		AIBaseURL:           "https://api.deepseek.com",
		AIModel:             "deepseek-chat",
		AITimeoutSeconds:    45,
		AIMaxRetries:        3,
		SitesMaxConcurrency: 30,
		SitesNoNSFW:         true,
		DefaultLanguage:     models.DefaultLanguage(),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

// Load читает .env (если есть) и собирает Settings из переменных окружения.
func Load() (*Settings, error) {
	// .env опционален: в проде конфиг приходит из окружения.
	_ = godotenv.Load()

	s := Default()

	var err error
	if s.HTTPTimeoutSeconds, err = getEnvFloat("IDENTRECON_HTTP_TIMEOUT_SECONDS", s.HTTPTimeoutSeconds); err != nil {
		return nil, err
	}
	s.UserAgent = getEnvOrDefault("IDENTRECON_USER_AGENT", s.UserAgent)

	s.AIAPIKey = os.Getenv("IDENTRECON_AI_API_KEY")
	s.AIBaseURL = getEnvOrDefault("IDENTRECON_AI_BASE_URL", s.AIBaseURL)
	s.AIModel = getEnvOrDefault("IDENTRECON_AI_MODEL", s.AIModel)
	if s.AITimeoutSeconds, err = getEnvFloat("IDENTRECON_AI_TIMEOUT_SECONDS", s.AITimeoutSeconds); err != nil {
		return nil, err
	}
	if s.AIMaxRetries, err = getEnvInt("IDENTRECON_AI_MAX_RETRIES", s.AIMaxRetries); err != nil {
		return nil, err
	}

	if s.SitesMaxConcurrency, err = getEnvInt("IDENTRECON_SITES_MAX_CONCURRENCY", s.SitesMaxConcurrency); err != nil {
		return nil, err
	}
	s.SitesNoNSFW = getEnvBool("IDENTRECON_SITES_NO_NSFW", s.SitesNoNSFW)
	s.UsernameSitesPath = os.Getenv("IDENTRECON_USERNAME_SITES_PATH")
	s.EmailSitesPath = os.Getenv("IDENTRECON_EMAIL_SITES_PATH")

	s.DefaultLanguage = models.ParseLanguage(getEnvOrDefault("IDENTRECON_LANGUAGE", string(s.DefaultLanguage)))

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate проверяет границы значений.
func (s *Settings) Validate() error {
	if s.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("HTTPTimeoutSeconds must be positive")
	}
	if s.UserAgent == "" {
		return fmt.Errorf("UserAgent must not be empty")
	}
	if s.AITimeoutSeconds <= 0 {
		return fmt.Errorf("AITimeoutSeconds must be positive")
	}
	if s.AIMaxRetries < 0 || s.AIMaxRetries > 10 {
		return fmt.Errorf("AIMaxRetries must be in [0, 10]")
	}
	if s.SitesMaxConcurrency < 1 || s.SitesMaxConcurrency > 500 {
		return fmt.Errorf("SitesMaxConcurrency must be in [1, 500]")
	}
	return nil
}

// HTTPTimeout возвращает таймаут HTTP запросов как Duration.
func (s *Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutSeconds * float64(time.Second))
}

// AITimeout возвращает таймаут IA-вызовов как Duration.
func (s *Settings) AITimeout() time.Duration {
	return time.Duration(s.AITimeoutSeconds * float64(time.Second))
}
