// Package scanners содержит контракт сканера и конкретные OSINT источники.
//
// Каждый сканер проверяет один источник для одного идентификатора и
// возвращает нормализованные SocialProfile. Контракт единообразно
// возвращает срез: источники вроде about.me эмитят дополнительные
// профили по внешним ссылкам, остальные возвращают один элемент.
package scanners

import (
	"context"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

// Scanner — контракт одного OSINT источника.
//
// Правила:
//   - Scan делает ровно один логический проход по источнику (обычно 1 GET).
//   - Обычное «профиль не существует» — НЕ ошибка: вернуть existe=false.
//   - Ошибка транспорта/парсинга возвращается как error; оркестратор
//     превратит её в профиль с metadata{error, scanner}.
type Scanner interface {
	// Name — короткий стабильный ключ сети ("github", "gravatar").
	Name() string
	Scan(ctx context.Context, value string) ([]models.SocialProfile, error)
}

// one упаковывает единственный профиль в срез контракта.
func one(p models.SocialProfile) []models.SocialProfile {
	return []models.SocialProfile{p}
}

// UsernameScanners возвращает реестр сканеров по username.
func UsernameScanners(settings *config.Settings) []Scanner {
	return []Scanner{
		NewGitHubScanner(settings),
		NewGitHubGistScanner(settings),
		NewGitLabScanner(settings),
		NewKeybaseScanner(settings),
		NewDevToScanner(settings),
		NewMediumScanner(settings),
		NewNpmScanner(settings),
		NewProductHuntScanner(settings),
		NewRedditScanner(settings),
		NewTwitchScanner(settings),
		NewTelegramScanner(settings),
		NewAboutMeScanner(settings),
		NewPinterestScanner(settings),
		NewSoundCloudScanner(settings),
		NewKaggleScanner(settings),
		NewDribbbleScanner(settings),
		NewBehanceScanner(settings),
		NewXScanner(settings),
	}
}

// EmailScanners возвращает реестр сканеров по email.
func EmailScanners(settings *config.Settings) []Scanner {
	return []Scanner{
		NewGravatarScanner(settings),
		NewGravatarProfileScanner(settings),
		NewOpenPGPKeysScanner(settings),
		NewUbuntuKeyserverScanner(settings),
	}
}
