// Package normalize turns free-text property addresses into structured
// postal records via the Anthropic API, degrading to a best-effort echo of
// the raw text whenever the backend is unavailable.
package normalize

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/estimate-intake/internal/model"
	"github.com/sells-group/estimate-intake/pkg/anthropic"
)

const systemPrompt = "You normalize US addresses. Return strict JSON with keys: " +
	"street_address, city, state, zip_code, full_address, isValid, isAmbiguous."

// Normalizer resolves raw address text into a NormalizedAddress.
type Normalizer struct {
	client anthropic.Client
	model  string
}

// New creates a Normalizer. A nil client means the backend is
// unconfigured; Normalize then always returns the degraded record.
func New(client anthropic.Client, modelName string) *Normalizer {
	return &Normalizer{client: client, model: modelName}
}

// Normalize resolves the raw address. It never returns an error: empty
// input, missing configuration, backend failure, and unparseable output
// all degrade to an echo of the raw text flagged invalid and ambiguous.
func (n *Normalizer) Normalize(ctx context.Context, raw string) model.NormalizedAddress {
	if raw == "" || n == nil || n.client == nil {
		return degraded(raw)
	}

	temp := 0.1
	resp, err := n.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       n.model,
		MaxTokens:   1024,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: "Normalize this address: " + raw},
		},
	})
	if err != nil {
		zap.L().Warn("normalize: backend call failed", zap.Error(err))
		return degraded(raw)
	}

	var parsed model.NormalizedAddress
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &parsed); err != nil {
		zap.L().Warn("normalize: unparseable backend response", zap.Error(err))
		return degraded(raw)
	}

	if parsed.FullAddress == "" {
		parsed.FullAddress = raw
	}
	return parsed
}

// degraded echoes the raw text as the best-effort record.
func degraded(raw string) model.NormalizedAddress {
	return model.NormalizedAddress{
		StreetAddress: raw,
		FullAddress:   raw,
		IsValid:       false,
		IsAmbiguous:   true,
	}
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
