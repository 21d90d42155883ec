// Package sherlock — раннер по манифесту в формате data.json проекта
// Sherlock (400+ сайтов). Манифест предзагружен на диске; скачивание —
// забота внешних коллабораторов.
package sherlock

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Site — одна запись манифеста.
type Site struct {
	Name      string
	ErrorType string   `json:"errorType"`
	URL       string   `json:"url"`
	URLMain   string   `json:"urlMain"`
	URLProbe  string   `json:"urlProbe"`
	ErrorMsg  StrList  `json:"errorMsg"`
	ErrorCode CodeList `json:"errorCode"`
	IsNSFW    bool     `json:"isNSFW"`
}

// StrList принимает и строку, и массив строк (манифест использует оба).
type StrList []string

func (l *StrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StrList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StrList(many)
	return nil
}

// CodeList принимает и число, и массив чисел.
type CodeList []int

func (l *CodeList) UnmarshalJSON(data []byte) error {
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		*l = CodeList{single}
		return nil
	}
	var many []int
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = CodeList(many)
	return nil
}

// Manifest — сайты манифеста, отсортированные по имени для детерминизма.
type Manifest struct {
	Sites []Site
}

// ParseManifest разбирает JSON манифеста. Ключ "$schema" и записи
// неожиданной формы пропускаются.
func ParseManifest(raw []byte) (*Manifest, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse sherlock manifest: %w", err)
	}

	manifest := &Manifest{}
	for name, rawEntry := range entries {
		if name == "$schema" {
			continue
		}
		var site Site
		if err := json.Unmarshal(rawEntry, &site); err != nil {
			continue
		}
		if site.URL == "" {
			continue
		}
		site.Name = name
		manifest.Sites = append(manifest.Sites, site)
	}

	sort.Slice(manifest.Sites, func(i, j int) bool {
		return manifest.Sites[i].Name < manifest.Sites[j].Name
	})
	return manifest, nil
}

// LoadManifest читает манифест с диска.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sherlock manifest: %w", err)
	}
	return ParseManifest(raw)
}

// FilteredSites возвращает сайты с учётом NSFW фильтра.
func (m *Manifest) FilteredSites(noNSFW bool) []Site {
	out := make([]Site, 0, len(m.Sites))
	for _, site := range m.Sites {
		if noNSFW && site.IsNSFW {
			continue
		}
		out = append(out, site)
	}
	return out
}
