package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var recordRows = []string{
	"id", "name", "location", "rest_type", "listed_in_type", "cuisines",
	"rating", "votes", "approx_cost_for_two", "online_order", "book_table",
	"price_bucket", "rating_bucket", "popularity_score", "has_buffet", "is_cafe", "search_text",
}

func TestPGRepoFetchAppliesConstraints(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows(recordRows).
		AddRow(1, "Empire", "Bellandur", "Casual Dining", "Delivery", "North Indian, Chinese",
			4.2, 12000, 400, true, false,
			BucketLow, BucketHigh, 17.1, false, false, "Empire | Bellandur")

	mock.ExpectQuery("FROM restaurants r").
		WithArgs("bellandur", 500, 25).
		WillReturnRows(rows)

	loc := "  Bellandur "
	maxCost := 500
	got, err := repo.Fetch(context.Background(), Constraints{Location: &loc, MaxCost: &maxCost}, 25)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Name != "Empire" || got[0].Location != "Bellandur" {
		t.Fatalf("unexpected record: %+v", got[0])
	}
	if len(got[0].Cuisines) != 2 {
		t.Fatalf("expected split cuisines, got %v", got[0].Cuisines)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFetchCuisinesAnyOf(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("cuisines ILIKE").
		WithArgs("%Chinese%", "%Thai%", 50).
		WillReturnRows(sqlmock.NewRows(recordRows))

	_, err = repo.Fetch(context.Background(), Constraints{Cuisines: []string{"Chinese", "Thai"}}, 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListCuisinesDeduplicates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	rows := sqlmock.NewRows([]string{"cuisines"}).
		AddRow("North Indian, Chinese").
		AddRow("chinese, Thai")
	mock.ExpectQuery("SELECT DISTINCT cuisines").WillReturnRows(rows)

	got, err := repo.ListCuisines(context.Background())
	if err != nil {
		t.Fatalf("ListCuisines: %v", err)
	}
	want := []string{"Chinese", "North Indian", "Thai"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPGRepoInsertBatchWritesFeatures(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO restaurants").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("INSERT INTO restaurant_features").
		WithArgs(int64(7), BucketLow, BucketHigh, sqlmock.AnyArg(), false, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inserted, err := repo.InsertBatch(context.Background(), []Record{{
		Name:             "Empire",
		Location:         "Bellandur",
		Cuisines:         []string{"North Indian"},
		Rating:           4.2,
		Votes:            12000,
		ApproxCostForTwo: 400,
	}})
	if err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("inserted = %d, want 1", inserted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
