// Package pipeline — оркестрация identity-сканирования.
//
// Консолидирует весь flow охоты: worklist по растущим множествам
// идентификаторов, fan-out сканеров, site-lists, дедупликация, strict
// фильтр и обогащение. Side-effects (печать, прогресс-бары) остаются
// снаружи и подключаются через Hooks.
package pipeline

import "github.com/BetterCallFirewall/Identrecon/internal/models"

// SiteListOptions — конфигурация data-driven движка для одного запроса.
type SiteListOptions struct {
	Enabled        bool
	UsernamePath   string
	EmailPath      string
	MaxConcurrency int
	Categories     map[string]bool
	// NoNSFW: nil — взять из настроек; иначе явное переопределение.
	NoNSFW *bool
}

// HuntRequest — параметры одного прогона пайплайна.
type HuntRequest struct {
	Usernames     []string
	Emails        []string
	ScanLocalpart bool
	SiteLists     SiteListOptions
	UseSherlock   bool
	Strict        bool
	// SherlockManifestPath указывает на предзагруженный data.json.
	SherlockManifestPath string
}

// Hooks — опциональные колбэки для UI слоёв.
type Hooks struct {
	Warning          func(message string)
	SherlockStart    func(total int)
	SherlockProgress func(done, total int, site string)
}

func (h *Hooks) warn(message string) {
	if h != nil && h.Warning != nil {
		h.Warning(message)
	}
}

func (h *Hooks) sherlockStart(total int) {
	if h != nil && h.SherlockStart != nil {
		h.SherlockStart(total)
	}
}

func (h *Hooks) sherlockProgress(done, total int, site string) {
	if h != nil && h.SherlockProgress != nil {
		h.SherlockProgress(done, total, site)
	}
}

// PipelineResult — выход одного прогона.
type PipelineResult struct {
	Person    *models.PersonEntity `json:"person"`
	Usernames []string             `json:"usernames"`
	Emails    []string             `json:"emails"`
	Warnings  []string             `json:"warnings"`
}
