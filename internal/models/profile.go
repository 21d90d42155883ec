package models

import "strings"

// SocialProfile представляет вердикт одного сканера по одному идентификатору.
// Унифицирует результаты всех источников (GitHub, site-lists, Sherlock-like)
// в общую структуру с произвольными метаданными-доказательствами.
type SocialProfile struct {
	URL         string         `json:"url"`
	Username    string         `json:"username"`
	NetworkName string         `json:"network_name"`
	Existe      bool           `json:"existe"`
	Metadata    map[string]any `json:"metadata"`
	Bio         string         `json:"bio,omitempty"`
	ImagenURL   string         `json:"imagen_url,omitempty"`
}

// MaxBioLength ограничивает размер bio, чтобы не раздувать агрегат.
const MaxBioLength = 10000

// Meta возвращает metadata, инициализируя map при необходимости.
func (p *SocialProfile) Meta() map[string]any {
	if p.Metadata == nil {
		p.Metadata = make(map[string]any)
	}
	return p.Metadata
}

// MergeMeta добавляет ключи в metadata без перезаписи nil-map.
func (p *SocialProfile) MergeMeta(extra map[string]any) {
	meta := p.Meta()
	for k, v := range extra {
		meta[k] = v
	}
}

// MetaString возвращает строковое значение ключа metadata, если оно есть.
func (p *SocialProfile) MetaString(key string) (string, bool) {
	if p.Metadata == nil {
		return "", false
	}
	v, ok := p.Metadata[key].(string)
	if !ok {
		return "", false
	}
	return v, true
}

// SetBio записывает bio с обрезкой до лимита.
func (p *SocialProfile) SetBio(bio string) {
	bio = strings.TrimSpace(bio)
	if len(bio) > MaxBioLength {
		bio = bio[:MaxBioLength]
	}
	p.Bio = bio
}

// ProfileKey — тройка дедупликации (network, username, url).
type ProfileKey struct {
	Network  string
	Username string
	URL      string
}

// Key возвращает ключ дедупликации профиля.
func (p *SocialProfile) Key() ProfileKey {
	return ProfileKey{Network: p.NetworkName, Username: p.Username, URL: p.URL}
}
