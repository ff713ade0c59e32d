// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type openAI struct {
	endpoint string
	key      string
	model    string
}

func NewOpenAI(endpoint, key, model string) Client {
	return &openAI{endpoint: endpoint, key: key, model: model}
}

func (c *openAI) chat(system, user string) (string, error) {
	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": 0.2,
	}
	b, _ := json.Marshal(reqBody)
	httpc := &http.Client{Timeout: 25 * time.Second}
	req, _ := http.NewRequest("POST", strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return content, nil
}

func (c *openAI) ProposeHarvestWindow(crop, variety string, year int) (*HarvestWindowAdvice, error) {
	content, err := c.chat(
		"You are a market-garden agronomist for a UK farm. Reply ONLY valid JSON.",
		renderHarvestWindowPrompt(crop, variety, year),
	)
	if err != nil {
		return nil, err
	}

	var payload struct {
		MaximumStart   string `json:"maximum_start"`
		MaximumEnd     string `json:"maximum_end"`
		DaysToHarvest  int    `json:"days_to_harvest"`
		YieldPeak      string `json:"yield_peak"`
		Notes          string `json:"notes"`
		ExtendedWindow bool   `json:"extended_window"`
	}
	if err := json.Unmarshal([]byte(extractJSON(content)), &payload); err != nil {
		return nil, fmt.Errorf("parse harvest window: %v / raw: %s", err, content)
	}
	start, err1 := time.Parse("2006-01-02", payload.MaximumStart)
	end, err2 := time.Parse("2006-01-02", payload.MaximumEnd)
	if err1 != nil || err2 != nil || !end.After(start) {
		return nil, fmt.Errorf("unusable window dates in advisory reply: %q..%q", payload.MaximumStart, payload.MaximumEnd)
	}
	return &HarvestWindowAdvice{
		MaximumStart:   start,
		MaximumEnd:     end,
		DaysToHarvest:  payload.DaysToHarvest,
		YieldPeak:      payload.YieldPeak,
		Notes:          payload.Notes,
		ExtendedWindow: payload.ExtendedWindow,
		Source:         "llm",
	}, nil
}

func (c *openAI) CritiquePlan(planSummary, guideCtx string) (string, error) {
	return c.chat(
		"You are a market-garden agronomist reviewing a succession planting plan. Be concise and concrete. When a change is needed, phrase it as 'remove succession N' or 'delay/advance succession N by D days'.",
		renderCritiquePrompt(planSummary, guideCtx),
	)
}

func renderHarvestWindowPrompt(crop, variety string, year int) string {
	return fmt.Sprintf(`Propose the maximum realistic outdoor harvest window for %s (variety: %s) in the %d season, temperate Northern Hemisphere climate.
Reply as JSON only:
{"maximum_start":"%d-MM-DD","maximum_end":"%d-MM-DD","days_to_harvest":60,"yield_peak":"...","notes":"...","extended_window":false}`,
		crop, orAny(variety), year, year, year)
}

func renderCritiquePrompt(planSummary, guideCtx string) string {
	var sb strings.Builder
	sb.WriteString("Review this succession plan for gaps, overcrowded timing, and seasonal risk.\n\nPLAN:\n")
	sb.WriteString(planSummary)
	if guideCtx != "" {
		sb.WriteString("\n\nGROWING GUIDE NOTES:\n")
		sb.WriteString(guideCtx)
	}
	return sb.String()
}

func orAny(s string) string {
	if strings.TrimSpace(s) == "" {
		return "any"
	}
	return s
}

// extractJSON tolerates fenced or prose-wrapped replies by slicing the
// outermost brace pair.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}
