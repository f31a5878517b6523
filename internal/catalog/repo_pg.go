package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// PGRepo implements Repo and Writer using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const recordColumns = `
r.id, r.name, r.location, r.rest_type, r.listed_in_type, r.cuisines,
r.rating, r.votes, r.approx_cost_for_two, r.online_order, r.book_table,
f.price_bucket, f.rating_bucket, f.popularity_score, f.has_buffet, f.is_cafe, f.search_text`

// Fetch returns records matching the constraint conjunction, ordered by
// popularity descending then id ascending.
func (r *PGRepo) Fetch(ctx context.Context, constraints Constraints, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if constraints.Location != nil {
		where = append(where, "lower(trim(r.location)) = "+arg(strings.ToLower(strings.TrimSpace(*constraints.Location))))
	}
	if len(constraints.Cuisines) > 0 {
		var any []string
		for _, cuisine := range constraints.Cuisines {
			any = append(any, "r.cuisines ILIKE "+arg("%"+strings.TrimSpace(cuisine)+"%"))
		}
		where = append(where, "("+strings.Join(any, " OR ")+")")
	}
	if constraints.MinRating != nil {
		where = append(where, "r.rating >= "+arg(*constraints.MinRating))
	}
	if constraints.MaxRating != nil {
		where = append(where, "r.rating <= "+arg(*constraints.MaxRating))
	}
	if constraints.MinCost != nil {
		where = append(where, "r.approx_cost_for_two >= "+arg(*constraints.MinCost))
	}
	if constraints.MaxCost != nil {
		where = append(where, "r.approx_cost_for_two <= "+arg(*constraints.MaxCost))
	}
	if constraints.OnlineOrder {
		where = append(where, "r.online_order IS TRUE")
	}
	if constraints.BookTable {
		where = append(where, "r.book_table IS TRUE")
	}
	if constraints.Buffet {
		where = append(where, "f.has_buffet IS TRUE")
	}
	if constraints.Cafe {
		where = append(where, "f.is_cafe IS TRUE")
	}

	query := `
SELECT` + recordColumns + `
FROM restaurants r
LEFT JOIN restaurant_features f ON f.restaurant_id = r.id`
	if len(where) > 0 {
		query += "\nWHERE " + strings.Join(where, " AND ")
	}
	query += "\nORDER BY f.popularity_score DESC NULLS LAST, r.id ASC\nLIMIT " + arg(limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec          Record
		location     sql.NullString
		restType     sql.NullString
		listedInType sql.NullString
		cuisines     sql.NullString
		rating       sql.NullFloat64
		votes        sql.NullInt64
		cost         sql.NullInt64
		onlineOrder  sql.NullBool
		bookTable    sql.NullBool
		priceBucket  sql.NullInt64
		ratingBucket sql.NullInt64
		popularity   sql.NullFloat64
		hasBuffet    sql.NullBool
		isCafe       sql.NullBool
		searchText   sql.NullString
	)
	if err := rows.Scan(
		&rec.ID,
		&rec.Name,
		&location,
		&restType,
		&listedInType,
		&cuisines,
		&rating,
		&votes,
		&cost,
		&onlineOrder,
		&bookTable,
		&priceBucket,
		&ratingBucket,
		&popularity,
		&hasBuffet,
		&isCafe,
		&searchText,
	); err != nil {
		return Record{}, fmt.Errorf("catalog scan: %w", err)
	}
	rec.Location = location.String
	rec.RestType = restType.String
	rec.ListedInType = listedInType.String
	rec.Cuisines = SplitCuisines(cuisines.String)
	rec.Rating = rating.Float64
	rec.Votes = int(votes.Int64)
	rec.ApproxCostForTwo = int(cost.Int64)
	rec.OnlineOrder = onlineOrder.Bool
	rec.BookTable = bookTable.Bool
	rec.PriceBucket = int(priceBucket.Int64)
	rec.RatingBucket = int(ratingBucket.Int64)
	rec.PopularityScore = popularity.Float64
	rec.HasBuffet = hasBuffet.Bool
	rec.IsCafe = isCafe.Bool
	rec.SearchText = searchText.String
	return rec, nil
}

// ListLocations returns the distinct non-empty location names.
func (r *PGRepo) ListLocations(ctx context.Context) ([]string, error) {
	const query = `
SELECT DISTINCT location
FROM restaurants
WHERE location IS NOT NULL AND trim(location) <> ''
ORDER BY location`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

// ListCuisines returns the distinct cuisine names across all records.
func (r *PGRepo) ListCuisines(ctx context.Context) ([]string, error) {
	const query = `
SELECT DISTINCT cuisines
FROM restaurants
WHERE cuisines IS NOT NULL AND trim(cuisines) <> ''`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cuisines: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]string)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		for _, cuisine := range SplitCuisines(raw) {
			key := strings.ToLower(cuisine)
			if _, ok := seen[key]; !ok {
				seen[key] = cuisine
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(seen))
	for _, cuisine := range seen {
		out = append(out, cuisine)
	}
	sort.Strings(out)
	return out, nil
}

// InsertBatch inserts records and their recomputed features in one transaction.
func (r *PGRepo) InsertBatch(ctx context.Context, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("catalog insert: begin: %w", err)
	}
	defer tx.Rollback()

	const insertRestaurant = `
INSERT INTO restaurants (name, location, rest_type, listed_in_type, cuisines, rating, votes, approx_cost_for_two, online_order, book_table)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`
	const insertFeatures = `
INSERT INTO restaurant_features (restaurant_id, price_bucket, rating_bucket, popularity_score, has_buffet, is_cafe, search_text)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	inserted := 0
	for i := range records {
		rec := records[i]
		ComputeFeatures(&rec)

		var id int64
		err := tx.QueryRowContext(ctx, insertRestaurant,
			rec.Name,
			nullString(rec.Location),
			nullString(rec.RestType),
			nullString(rec.ListedInType),
			nullString(JoinCuisines(rec.Cuisines)),
			nullFloat(rec.Rating),
			nullInt(rec.Votes),
			nullInt(rec.ApproxCostForTwo),
			rec.OnlineOrder,
			rec.BookTable,
		).Scan(&id)
		if err != nil {
			return inserted, fmt.Errorf("catalog insert restaurant %q: %w", rec.Name, err)
		}

		if _, err := tx.ExecContext(ctx, insertFeatures,
			id,
			rec.PriceBucket,
			rec.RatingBucket,
			rec.PopularityScore,
			rec.HasBuffet,
			rec.IsCafe,
			rec.SearchText,
		); err != nil {
			return inserted, fmt.Errorf("catalog insert features %q: %w", rec.Name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("catalog insert: commit: %w", err)
	}
	return inserted, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: strings.TrimSpace(s) != ""}
}

func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f > 0}
}

func nullInt(i int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(i), Valid: i > 0}
}

var (
	_ Repo   = (*PGRepo)(nil)
	_ Writer = (*PGRepo)(nil)
)
