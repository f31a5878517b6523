package recs

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"dinewise-backend/internal/llm"
	"dinewise-backend/internal/shared/metrics"
	"dinewise-backend/internal/shared/telemetry"
)

// Parser turns free text into an Intent. The provider call is advisory:
// any failure falls back to the heuristic path and the parser itself
// never returns an error.
type Parser struct {
	LLM     llm.Client
	Timeout time.Duration
}

func NewParser(client llm.Client, timeout time.Duration) *Parser {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Parser{LLM: client, Timeout: timeout}
}

// parsedIntent mirrors the provider's JSON contract with nullable fields.
type parsedIntent struct {
	Location     *string  `json:"location"`
	Cuisines     []string `json:"cuisines"`
	MinRating    *float64 `json:"min_rating"`
	MaxRating    *float64 `json:"max_rating"`
	MinPrice     *int     `json:"min_price"`
	MaxPrice     *int     `json:"max_price"`
	OnlineOrder  *bool    `json:"online_order"`
	TableBooking *bool    `json:"table_booking"`
	Buffet       *bool    `json:"buffet"`
	Cafe         *bool    `json:"cafe"`
}

// Parse extracts an Intent from query against the known vocabularies.
// An empty query short-circuits to an empty Intent with no provider call.
func (p *Parser) Parse(ctx context.Context, query string, locations, cuisines []string) Intent {
	query = strings.TrimSpace(query)
	if query == "" {
		return Intent{}
	}

	intent, err := p.parseLLM(ctx, query, locations, cuisines)
	if err == nil {
		return intent
	}
	metrics.LLMFallbacksTotal.WithLabelValues("parse", fallbackReason(err)).Inc()
	telemetry.Warn("parse.fallback", map[string]any{"error": err.Error()})
	return HeuristicParse(query, locations, cuisines)
}

func (p *Parser) parseLLM(ctx context.Context, query string, locations, cuisines []string) (Intent, error) {
	if p.LLM == nil {
		return Intent{}, llm.ErrNotConfigured
	}
	callCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	started := time.Now()
	raw, err := p.LLM.Complete(callCtx, parseSystemPrompt, buildParseUserPrompt(query, locations, cuisines))
	metrics.LLMCallDuration.WithLabelValues("parse").Observe(time.Since(started).Seconds())
	if err != nil {
		return Intent{}, err
	}
	if err := validateAgainst(intentSchema, raw); err != nil {
		return Intent{}, err
	}

	var parsed parsedIntent
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Intent{}, err
	}
	return sanitizeParsed(parsed, locations, cuisines), nil
}

// sanitizeParsed drops values outside the known vocabularies instead of
// rejecting the whole intent.
func sanitizeParsed(parsed parsedIntent, locations, cuisines []string) Intent {
	var out Intent
	if parsed.Location != nil {
		if loc, ok := matchVocab(*parsed.Location, locations); ok {
			out.Location = strptr(loc)
		}
	}
	for _, c := range parsed.Cuisines {
		if matched, ok := matchVocab(c, cuisines); ok {
			out.Cuisines = appendUnique(out.Cuisines, matched)
		}
	}
	if parsed.MinRating != nil && *parsed.MinRating >= 0 && *parsed.MinRating <= 5 {
		out.MinRating = parsed.MinRating
	}
	if parsed.MaxRating != nil && *parsed.MaxRating >= 0 && *parsed.MaxRating <= 5 {
		out.MaxRating = parsed.MaxRating
	}
	if parsed.MinPrice != nil && *parsed.MinPrice >= 0 {
		out.MinPrice = parsed.MinPrice
	}
	if parsed.MaxPrice != nil && *parsed.MaxPrice >= 0 {
		out.MaxPrice = parsed.MaxPrice
	}
	if parsed.OnlineOrder != nil && *parsed.OnlineOrder {
		out.OnlineOrder = true
	}
	if parsed.TableBooking != nil && *parsed.TableBooking {
		out.TableBooking = true
	}
	if parsed.Buffet != nil && *parsed.Buffet {
		out.Buffet = true
	}
	if parsed.Cafe != nil && *parsed.Cafe {
		out.Cafe = true
	}
	return out
}

// matchVocab resolves value against the vocabulary case-insensitively and
// returns the canonical casing.
func matchVocab(value string, vocab []string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(value))
	if needle == "" {
		return "", false
	}
	for _, known := range vocab {
		if strings.ToLower(strings.TrimSpace(known)) == needle {
			return known, true
		}
	}
	return "", false
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, value) {
			return list
		}
	}
	return append(list, value)
}

func fallbackReason(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "schema"):
		return "schema_violation"
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "not configured"):
		return "not_configured"
	default:
		return "provider_error"
	}
}
