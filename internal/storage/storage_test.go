package storage

import (
	"testing"

	"github.com/pable/go-shot-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testRow(shotN string) model.Row {
	return model.Row{
		Season: "2023", TournamentID: "t-100", DrawCode: "MS",
		Set: "1", Game: "2", Point: "3", Serve: "1", Rally: "4",
		ShotN: shotN, HitterExternalID: "p-a",
		Stroke: "forehand", SpinType: "top", SpinRPM: "2400", Call: "in",
		ShotStartTimestamp: "2023-01-01T00:00:00.000000Z",
		ShotEndTimestamp:   "2023-01-01T00:00:01Z",
		BallHitX: "1", BallHitY: "2", BallHitZ: "3",
		BallBounceX: "4", BallBounceY: "5",
		HitterX: "11.2", HitterY: "-0.8", ReceiverX: "-11.5", ReceiverY: "0.3",
	}
}

func TestMatchInsertAndExists(t *testing.T) {
	db := openMemDB(t)

	s := model.MatchSummary{
		ArchiveHash: "abc123", Season: "2023", TournamentID: "t-100",
		DrawCode: "MS", SourceFile: "match.zip", RowCount: 2, StoredAt: "2025-01-01",
	}
	if err := db.InsertMatch(s); err != nil {
		t.Fatalf("InsertMatch: %v", err)
	}

	exists, err := db.MatchExists("abc123")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after insert")
	}

	exists2, _ := db.MatchExists("nonexistent")
	if exists2 {
		t.Error("expected non-existent match to not exist")
	}
}

func TestListMatches(t *testing.T) {
	db := openMemDB(t)

	summaries := []model.MatchSummary{
		{ArchiveHash: "h1", Season: "2023", TournamentID: "t-1", DrawCode: "MS", SourceFile: "a.zip", RowCount: 10, StoredAt: "2025-01-01"},
		{ArchiveHash: "h2", Season: "2024", TournamentID: "t-2", DrawCode: "WS", SourceFile: "b.zip", RowCount: 20, StoredAt: "2025-02-01"},
	}
	for _, s := range summaries {
		if err := db.InsertMatch(s); err != nil {
			t.Fatalf("InsertMatch: %v", err)
		}
	}

	list, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 matches, got %d", len(list))
	}
	// Ordered by stored_at DESC — h2 should be first.
	if list[0].ArchiveHash != "h2" {
		t.Errorf("expected h2 first (newest), got %s", list[0].ArchiveHash)
	}
}

func TestGetMatchByPrefix(t *testing.T) {
	db := openMemDB(t)

	db.InsertMatch(model.MatchSummary{ArchiveHash: "deadbeef1234", Season: "2023", TournamentID: "t-1", DrawCode: "MS", SourceFile: "a.zip", RowCount: 1, StoredAt: "2025-01-01"})

	s, err := db.GetMatchByPrefix("deadb")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if s == nil {
		t.Fatal("expected match for prefix 'deadb'")
	}
	if s.ArchiveHash != "deadbeef1234" {
		t.Errorf("unexpected hash %s", s.ArchiveHash)
	}

	s2, err := db.GetMatchByPrefix("ffffffff")
	if err != nil {
		t.Fatalf("GetMatchByPrefix no-match: %v", err)
	}
	if s2 != nil {
		t.Error("expected nil for unknown prefix")
	}
}

func TestRowsRoundTripPreservesOrder(t *testing.T) {
	db := openMemDB(t)

	db.InsertMatch(model.MatchSummary{ArchiveHash: "h1", Season: "2023", TournamentID: "t-1", DrawCode: "MS", SourceFile: "a.zip", RowCount: 3, StoredAt: "2025-01-01"})

	rows := []model.Row{testRow("1"), testRow("2"), testRow("3")}
	rows[1].BallBounceX, rows[1].BallBounceY = "", ""
	if err := db.InsertRows("h1", rows); err != nil {
		t.Fatalf("InsertRows: %v", err)
	}

	got, err := db.GetRows("h1")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got[i].ShotN != want {
			t.Errorf("row %d: shot_n %s, want %s", i, got[i].ShotN, want)
		}
	}
	if got[1].BallBounceX != "" || got[1].BallBounceY != "" {
		t.Errorf("empty bounce fields should survive storage: %q %q", got[1].BallBounceX, got[1].BallBounceY)
	}
	if got[0] != rows[0] {
		t.Errorf("row 0 round trip mismatch:\n got %+v\nwant %+v", got[0], rows[0])
	}
}

func TestInsertRowsReplacesPrevious(t *testing.T) {
	db := openMemDB(t)

	db.InsertMatch(model.MatchSummary{ArchiveHash: "h1", Season: "2023", TournamentID: "t-1", DrawCode: "MS", SourceFile: "a.zip", RowCount: 2, StoredAt: "2025-01-01"})

	if err := db.InsertRows("h1", []model.Row{testRow("1"), testRow("2")}); err != nil {
		t.Fatalf("first InsertRows: %v", err)
	}
	if err := db.InsertRows("h1", []model.Row{testRow("1")}); err != nil {
		t.Fatalf("second InsertRows: %v", err)
	}

	got, err := db.GetRows("h1")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected re-insert to replace rows, got %d", len(got))
	}
}

func TestInsertMatchIdempotency(t *testing.T) {
	db := openMemDB(t)

	s := model.MatchSummary{ArchiveHash: "idem1", Season: "2023", TournamentID: "t-1", DrawCode: "MS", SourceFile: "a.zip", RowCount: 1, StoredAt: "2025-01-01"}
	db.InsertMatch(s)
	// Second insert should not error (INSERT OR REPLACE).
	if err := db.InsertMatch(s); err != nil {
		t.Errorf("second InsertMatch should succeed (idempotent): %v", err)
	}
}
