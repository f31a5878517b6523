package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"dinewise-backend/internal/catalog"
	"dinewise-backend/internal/shared/telemetry"
)

// Loader reads raw restaurant rows from a CSV stream, cleans them and
// writes them to the catalog in batches.
type Loader struct {
	Writer    catalog.Writer
	BatchSize int
}

func NewLoader(w catalog.Writer) *Loader {
	return &Loader{Writer: w, BatchSize: 500}
}

// Stats summarizes one ingestion run.
type Stats struct {
	Read     int
	Inserted int
	Skipped  int
}

// expected header columns; order in the file does not matter.
var requiredColumns = []string{"name", "location", "rate", "votes", "approx_cost(for two people)", "online_order", "book_table", "cuisines"}

// Run ingests the CSV on r. Rows missing a name or location are skipped,
// rows with unparseable ratings or costs are kept with zero values so that
// feature derivation can still bucket them.
func (l *Loader) Run(ctx context.Context, r io.Reader) (Stats, error) {
	var stats Stats
	runID := uuid.NewString()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return stats, fmt.Errorf("read header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return stats, err
	}

	batchSize := l.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	batch := make([]catalog.Record, 0, batchSize)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			telemetry.Warn("ingest.bad_row", map[string]any{"run_id": runID, "row": stats.Read + 2, "error": err.Error()})
			stats.Skipped++
			continue
		}
		stats.Read++

		rec, ok := buildRecord(row, cols)
		if !ok {
			stats.Skipped++
			continue
		}
		batch = append(batch, rec)

		if len(batch) >= batchSize {
			if err := l.flush(ctx, batch, &stats); err != nil {
				return stats, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := l.flush(ctx, batch, &stats); err != nil {
			return stats, err
		}
	}

	telemetry.Info("ingest.complete", map[string]any{
		"run_id":   runID,
		"read":     stats.Read,
		"inserted": stats.Inserted,
		"skipped":  stats.Skipped,
	})
	return stats, nil
}

func (l *Loader) flush(ctx context.Context, batch []catalog.Record, stats *Stats) error {
	inserted, err := l.Writer.InsertBatch(ctx, batch)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	stats.Inserted += inserted
	return nil
}

func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return cols, nil
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func buildRecord(row []string, cols map[string]int) (catalog.Record, bool) {
	rec := catalog.Record{
		Name:     field(row, cols, "name"),
		Location: field(row, cols, "location"),
	}
	if rec.Name == "" || rec.Location == "" {
		return catalog.Record{}, false
	}

	if rating, ok := ParseRating(field(row, cols, "rate")); ok {
		rec.Rating = rating
	}
	if cost, ok := ParseCostForTwo(field(row, cols, "approx_cost(for two people)")); ok {
		rec.ApproxCostForTwo = cost
	}
	if v, ok := ParseBool(field(row, cols, "online_order")); ok {
		rec.OnlineOrder = v
	}
	if v, ok := ParseBool(field(row, cols, "book_table")); ok {
		rec.BookTable = v
	}
	rec.Votes = ParseVotes(field(row, cols, "votes"))
	rec.Cuisines = NormalizeCuisines(field(row, cols, "cuisines"))
	rec.RestType = field(row, cols, "rest_type")
	rec.ListedInType = field(row, cols, "listed_in(type)")

	return rec, true
}
