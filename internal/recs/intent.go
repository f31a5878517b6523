package recs

import (
	"strings"

	"dinewise-backend/internal/catalog"
)

// Intent is the structured form of one request. Nil means unconstrained;
// the require-true extras only constrain when set.
type Intent struct {
	Location  *string
	Cuisines  []string
	MinRating *float64
	MaxRating *float64
	MinPrice  *int
	MaxPrice  *int

	OnlineOrder  bool
	TableBooking bool
	Buffet       bool
	Cafe         bool

	Limit *int
}

// Empty reports whether no field constrains the catalog.
func (in Intent) Empty() bool {
	return in.Location == nil && len(in.Cuisines) == 0 &&
		in.MinRating == nil && in.MaxRating == nil &&
		in.MinPrice == nil && in.MaxPrice == nil &&
		!in.OnlineOrder && !in.TableBooking && !in.Buffet && !in.Cafe
}

// Merge overlays explicit filter values on top of a parsed intent. Explicit
// values win; parsed values fill the gaps.
func (in Intent) Merge(explicit Intent) Intent {
	out := in
	if explicit.Location != nil {
		out.Location = explicit.Location
	}
	if len(explicit.Cuisines) > 0 {
		out.Cuisines = explicit.Cuisines
	}
	if explicit.MinRating != nil {
		out.MinRating = explicit.MinRating
	}
	if explicit.MaxRating != nil {
		out.MaxRating = explicit.MaxRating
	}
	if explicit.MinPrice != nil {
		out.MinPrice = explicit.MinPrice
	}
	if explicit.MaxPrice != nil {
		out.MaxPrice = explicit.MaxPrice
	}
	out.OnlineOrder = out.OnlineOrder || explicit.OnlineOrder
	out.TableBooking = out.TableBooking || explicit.TableBooking
	out.Buffet = out.Buffet || explicit.Buffet
	out.Cafe = out.Cafe || explicit.Cafe
	if explicit.Limit != nil {
		out.Limit = explicit.Limit
	}
	return out
}

// Constraints translates the intent into catalog filter terms.
func (in Intent) Constraints() catalog.Constraints {
	cons := catalog.Constraints{
		Cuisines:    in.Cuisines,
		MinRating:   in.MinRating,
		MaxRating:   in.MaxRating,
		MinCost:     in.MinPrice,
		MaxCost:     in.MaxPrice,
		OnlineOrder: in.OnlineOrder,
		BookTable:   in.TableBooking,
		Buffet:      in.Buffet,
		Cafe:        in.Cafe,
	}
	if in.Location != nil {
		loc := strings.TrimSpace(*in.Location)
		if loc != "" {
			cons.Location = &loc
		}
	}
	return cons
}

func strptr(s string) *string     { return &s }
func intptr(v int) *int           { return &v }
func floatptr(v float64) *float64 { return &v }
