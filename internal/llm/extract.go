package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// jsonFencePattern вырезает fenced-блок ```json { ... } ```.
// Компилируется один раз при запуске программы.
var jsonFencePattern = regexp.MustCompile("(?is)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSONObject достаёт первый JSON-объект из текста провайдера.
//
// Порядок эвристик:
//  1. fenced-блок ```json ... ```;
//  2. весь trimmed текст, если он начинается "{" и кончается "}";
//  3. окно от первой "{" до последней "}", если оно парсится как JSON.
func ExtractJSONObject(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", fmt.Errorf("empty ai response")
	}

	if m := jsonFencePattern.FindStringSubmatch(t); m != nil {
		return strings.TrimSpace(m[1]), nil
	}

	if strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}") {
		return t, nil
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start != -1 && end > start {
		candidate := strings.TrimSpace(t[start : end+1])
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no json object in ai response")
}

// reportEnvelope — строгий контракт ответа провайдера.
type reportEnvelope struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Confidence *float64 `json:"confidence"`
}

// parseEnvelope валидирует извлечённый JSON.
// Confidence по умолчанию 0.5 и всегда зажимается в [0, 1].
func parseEnvelope(jsonText string) (*reportEnvelope, error) {
	var envelope reportEnvelope
	if err := json.Unmarshal([]byte(jsonText), &envelope); err != nil {
		return nil, fmt.Errorf("ai envelope: %w", err)
	}
	if strings.TrimSpace(envelope.Summary) == "" {
		return nil, fmt.Errorf("ai envelope: empty summary")
	}
	if envelope.Confidence == nil {
		def := 0.5
		envelope.Confidence = &def
	}
	if *envelope.Confidence < 0 {
		*envelope.Confidence = 0
	}
	if *envelope.Confidence > 1 {
		*envelope.Confidence = 1
	}
	return &envelope, nil
}
