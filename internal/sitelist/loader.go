package sitelist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadUsernameSites читает каталог формата wmn-data.json.
func LoadUsernameSites(path string) (*UsernameSitesFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read username sites: %w", err)
	}
	var file UsernameSitesFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse username sites: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// LoadEmailSites читает каталог формата email-data.json.
func LoadEmailSites(path string) (*EmailSitesFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read email sites: %w", err)
	}
	var file EmailSitesFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse email sites: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// ResolveListPath ищет датасет по сконфигурированному пути, а при его
// отсутствии — в общепринятых местах (./data, cwd). Датасеты не входят в
// репозиторий; пользователь скачивает их сам.
func ResolveListPath(configured string) (string, bool) {
	candidates := []string{}
	if configured != "" {
		candidates = append(candidates, configured)
		base := filepath.Base(configured)
		candidates = append(candidates,
			filepath.Join("data", base),
			base,
		)
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
