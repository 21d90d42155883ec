package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/llm"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
	"github.com/BetterCallFirewall/Identrecon/internal/pipeline"
	"github.com/BetterCallFirewall/Identrecon/internal/storage"
	"github.com/BetterCallFirewall/Identrecon/internal/websocket"
)

// Тонкий entrypoint: парсинг флагов, сборка запроса, запуск пайплайна.
// Вся интерактивная CLI-обвязка живёт у внешних коллабораторов.
func main() {
	usernamesFlag := flag.String("u", "", "comma-separated usernames")
	emailsFlag := flag.String("e", "", "comma-separated emails")
	localpart := flag.Bool("localpart", true, "scan email localparts as usernames")
	strict := flag.Bool("strict", false, "keep only high-confidence matches")
	useSites := flag.Bool("sites", false, "run data-driven site lists")
	sherlockManifest := flag.String("sherlock", "", "path to sherlock data.json manifest")
	analyze := flag.Bool("analyze", false, "run AI analyst over the aggregate")
	listen := flag.String("listen", "", "optional addr for the websocket event hub (e.g. :8089)")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	request := pipeline.HuntRequest{
		Usernames:            splitList(*usernamesFlag),
		Emails:               splitList(*emailsFlag),
		ScanLocalpart:        *localpart,
		Strict:               *strict,
		UseSherlock:          *sherlockManifest != "",
		SherlockManifestPath: *sherlockManifest,
		SiteLists: pipeline.SiteListOptions{
			Enabled: *useSites,
		},
	}

	hub := websocket.NewHub()
	store := storage.NewMemoryStorage()
	if *listen != "" {
		go hub.Run()
		go func() {
			http.HandleFunc("/ws", hub.ServeWS)
			log.Info().Str("addr", *listen).Msg("event hub listening")
			if err := http.ListenAndServe(*listen, nil); err != nil {
				log.Fatal().Err(err).Msg("event hub failed")
			}
		}()
	}

	huntID := uuid.New().String()
	hub.Broadcast(websocket.EventHuntStarted, map[string]any{"hunt_id": huntID})

	hooks := &pipeline.Hooks{
		Warning: func(message string) {
			hub.Broadcast(websocket.EventWarning, map[string]any{"message": message})
		},
		SherlockStart: func(total int) {
			hub.Broadcast(websocket.EventSherlockStart, map[string]any{"total": total})
		},
		SherlockProgress: func(done, total int, site string) {
			hub.Broadcast(websocket.EventSherlockProgress, map[string]any{
				"done": done, "total": total, "site": site,
			})
		},
	}

	ctx := context.Background()
	orchestrator := pipeline.New(cfg)
	result := orchestrator.Hunt(ctx, request, hooks)

	if *analyze {
		analyst := llm.NewAnalyst(cfg)
		report, err := analyst.AnalyzePerson(ctx, result.Person, cfg.DefaultLanguage)
		if err != nil {
			log.Error().Err(err).Msg("ai analysis aborted")
			report = llm.HeuristicReport(result.Person, cfg.DefaultLanguage, "analyst_aborted")
		}
		result.Person.Analysis = report
		if report.Model == models.HeuristicModel {
			log.Warn().Msg("analysis produced by local heuristic fallback")
		}
	}

	store.StoreHunt(huntID, result)
	hub.Broadcast(websocket.EventHuntFinished, result)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode result")
	}
	fmt.Fprintln(os.Stdout, string(out))
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
