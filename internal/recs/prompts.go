package recs

import (
	"encoding/json"
	"fmt"
	"strings"
)

const parseSystemPrompt = `You convert a restaurant search query into a JSON object with exactly these keys:
location (string or null), cuisines (array of strings or null), min_rating (number 0-5 or null),
max_rating (number 0-5 or null), min_price (integer or null), max_price (integer or null),
online_order (boolean or null), table_booking (boolean or null), buffet (boolean or null), cafe (boolean or null).

Rules:
- Use only locations from KNOWN_LOCATIONS and cuisines from KNOWN_CUISINES. If the query mentions a place or cuisine not in those lists, set the field to null.
- Set numeric fields to null when the query does not state them. Never guess.
- Prices are in currency units for two people.
- Respond with the JSON object only.`

func buildParseUserPrompt(query string, locations, cuisines []string) string {
	var b strings.Builder
	b.WriteString("KNOWN_LOCATIONS: ")
	b.WriteString(strings.Join(locations, ", "))
	b.WriteString("\nKNOWN_CUISINES: ")
	b.WriteString(strings.Join(cuisines, ", "))
	b.WriteString("\nQUERY: ")
	b.WriteString(query)
	return b.String()
}

const rerankSystemPrompt = `You rank restaurant candidates for a user. You are given a closed list of candidates, each with a numeric id and its catalog fields.

Rules:
- Respond with a JSON object {"ranking": [{"id": <int>, "score": <0-10 number>, "reason": "<one or two sentences>"}, ...]}.
- Use only ids from the candidate list. Never introduce an id that is not in the list.
- Base each reason only on the fields shown for that candidate.
- Higher score means a better match for the request.`

type rerankCandidatePayload struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Cuisines     []string `json:"cuisines"`
	Rating       float64  `json:"rating"`
	Votes        int      `json:"votes"`
	CostForTwo   int      `json:"approx_cost_for_two"`
	OnlineOrder  bool     `json:"online_order"`
	TableBooking bool     `json:"table_booking"`
}

func buildRerankUserPrompt(query string, in Intent, cands []Candidate) (string, error) {
	payload := make([]rerankCandidatePayload, 0, len(cands))
	for _, c := range cands {
		payload = append(payload, rerankCandidatePayload{
			ID:           c.Record.ID,
			Name:         c.Record.Name,
			Location:     c.Record.Location,
			Cuisines:     c.Record.Cuisines,
			Rating:       c.Record.Rating,
			Votes:        c.Record.Votes,
			CostForTwo:   c.Record.ApproxCostForTwo,
			OnlineOrder:  c.Record.OnlineOrder,
			TableBooking: c.Record.BookTable,
		})
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if strings.TrimSpace(query) != "" {
		fmt.Fprintf(&b, "REQUEST: %s\n", strings.TrimSpace(query))
	}
	if summary := describeIntent(in); summary != "" {
		fmt.Fprintf(&b, "FILTERS: %s\n", summary)
	}
	b.WriteString("CANDIDATES: ")
	b.Write(encoded)
	return b.String(), nil
}

func describeIntent(in Intent) string {
	var parts []string
	if in.Location != nil {
		parts = append(parts, "location="+*in.Location)
	}
	if len(in.Cuisines) > 0 {
		parts = append(parts, "cuisines="+strings.Join(in.Cuisines, "/"))
	}
	if in.MinRating != nil {
		parts = append(parts, fmt.Sprintf("min_rating=%.1f", *in.MinRating))
	}
	if in.MaxRating != nil {
		parts = append(parts, fmt.Sprintf("max_rating=%.1f", *in.MaxRating))
	}
	if in.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("min_price=%d", *in.MinPrice))
	}
	if in.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max_price=%d", *in.MaxPrice))
	}
	if in.OnlineOrder {
		parts = append(parts, "online_order")
	}
	if in.TableBooking {
		parts = append(parts, "table_booking")
	}
	if in.Buffet {
		parts = append(parts, "buffet")
	}
	if in.Cafe {
		parts = append(parts, "cafe")
	}
	return strings.Join(parts, ", ")
}
