package recs

import (
	"fmt"
	"strings"

	"dinewise-backend/internal/catalog"
)

// Extras carries the require-true capability filters of a request.
type Extras struct {
	OnlineOrder  bool `json:"online_order"`
	TableBooking bool `json:"table_booking"`
	Buffet       bool `json:"buffet"`
	Cafe         bool `json:"cafe"`
}

// Request is the transport contract for one recommendation request. Every
// field is optional; query_text and structured filters may be combined, in
// which case explicit filters win.
type Request struct {
	QueryText string   `json:"query_text"`
	Location  *string  `json:"location"`
	Cuisines  []string `json:"cuisines"`
	MinRating *float64 `json:"min_rating"`
	MaxRating *float64 `json:"max_rating"`
	MinPrice  *int     `json:"min_price"`
	MaxPrice  *int     `json:"max_price"`
	Extras    *Extras  `json:"extras"`
	Limit     *int     `json:"limit"`
}

// Validate rejects malformed or contradictory filter values.
func (r Request) Validate() error {
	if r.Limit != nil && *r.Limit <= 0 {
		return fmt.Errorf("%w: limit must be a positive integer", ErrInvalidRequest)
	}
	if r.MinRating != nil && (*r.MinRating < 0 || *r.MinRating > 5) {
		return fmt.Errorf("%w: min_rating must be within [0,5]", ErrInvalidRequest)
	}
	if r.MaxRating != nil && (*r.MaxRating < 0 || *r.MaxRating > 5) {
		return fmt.Errorf("%w: max_rating must be within [0,5]", ErrInvalidRequest)
	}
	if r.MinRating != nil && r.MaxRating != nil && *r.MinRating > *r.MaxRating {
		return fmt.Errorf("%w: min_rating exceeds max_rating", ErrInvalidRequest)
	}
	if r.MinPrice != nil && *r.MinPrice < 0 {
		return fmt.Errorf("%w: min_price must not be negative", ErrInvalidRequest)
	}
	if r.MaxPrice != nil && *r.MaxPrice < 0 {
		return fmt.Errorf("%w: max_price must not be negative", ErrInvalidRequest)
	}
	if r.MinPrice != nil && r.MaxPrice != nil && *r.MinPrice > *r.MaxPrice {
		return fmt.Errorf("%w: min_price exceeds max_price", ErrInvalidRequest)
	}
	return nil
}

// Intent returns the structured filters of the request, ignoring query_text.
func (r Request) Intent() Intent {
	out := Intent{
		Location:  r.Location,
		Cuisines:  r.Cuisines,
		MinRating: r.MinRating,
		MaxRating: r.MaxRating,
		MinPrice:  r.MinPrice,
		MaxPrice:  r.MaxPrice,
		Limit:     r.Limit,
	}
	if r.Extras != nil {
		out.OnlineOrder = r.Extras.OnlineOrder
		out.TableBooking = r.Extras.TableBooking
		out.Buffet = r.Extras.Buffet
		out.Cafe = r.Extras.Cafe
	}
	return out
}

// ResultItem is one recommended restaurant in the response.
type ResultItem struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	Cuisines         []string `json:"cuisines"`
	Rating           float64  `json:"rating"`
	Votes            int      `json:"votes"`
	ApproxCostForTwo int      `json:"approx_cost_for_two"`
	Tags             []string `json:"tags"`
	Score            float64  `json:"score"`
	Reason           string   `json:"reason,omitempty"`
}

// Response is the transport contract for one recommendation response.
type Response struct {
	Results           []ResultItem `json:"results"`
	NoMatch           bool         `json:"no_match"`
	Relaxed           bool         `json:"relaxed,omitempty"`
	DroppedConstraint string       `json:"dropped_constraint,omitempty"`
}

// BuildResponse converts an assembled result into the transport contract.
func BuildResponse(res Result) Response {
	items := make([]ResultItem, 0, len(res.Candidates))
	for _, c := range res.Candidates {
		items = append(items, toResultItem(c))
	}
	return Response{
		Results:           items,
		NoMatch:           res.NoMatch,
		Relaxed:           res.Relaxed,
		DroppedConstraint: res.DroppedConstraint,
	}
}

func toResultItem(c Candidate) ResultItem {
	score := c.BaselineScore
	if c.LLMScore != nil {
		score = *c.LLMScore / 10.0
	}
	return ResultItem{
		ID:               c.Record.ID,
		Name:             c.Record.Name,
		Location:         c.Record.Location,
		Cuisines:         c.Record.Cuisines,
		Rating:           c.Record.Rating,
		Votes:            c.Record.Votes,
		ApproxCostForTwo: c.Record.ApproxCostForTwo,
		Tags:             recordTags(c.Record),
		Score:            score,
		Reason:           c.Reason,
	}
}

func recordTags(rec catalog.Record) []string {
	var tags []string
	if rec.OnlineOrder {
		tags = append(tags, "online_order")
	}
	if rec.BookTable {
		tags = append(tags, "table_booking")
	}
	if rec.HasBuffet {
		tags = append(tags, "buffet")
	}
	if rec.IsCafe {
		tags = append(tags, "cafe")
	}
	if name := bucketTag(rec.PriceBucket); name != "" {
		tags = append(tags, "price_"+name)
	}
	if rt := strings.TrimSpace(rec.RestType); rt != "" {
		tags = append(tags, strings.ToLower(rt))
	}
	return tags
}

func bucketTag(bucket int) string {
	switch bucket {
	case catalog.BucketLow:
		return "low"
	case catalog.BucketMedium:
		return "medium"
	case catalog.BucketHigh:
		return "high"
	default:
		return ""
	}
}
