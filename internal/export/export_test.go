package export

import (
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"quote-api/internal/store"
)

func sampleQuotes() []store.Quote {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []store.Quote{
		{ID: 3, Text: "Courage grows each time you choose to act", Theme: "courage", GeneratedAt: base.Add(2 * time.Hour)},
		{ID: 2, Text: "Small steps, taken daily, become journeys", Theme: "persistence", GeneratedAt: base.Add(time.Hour)},
		{ID: 1, Text: "Hope is a discipline you practice", Theme: "hope", GeneratedAt: base},
	}
}

func TestCSVExport(t *testing.T) {
	quotes := sampleQuotes()
	w := httptest.NewRecorder()

	if err := CSV(w, quotes); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	if got := w.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "quotes.csv") {
		t.Errorf("Content-Disposition = %q", got)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(records) != len(quotes)+1 {
		t.Fatalf("got %d records, want %d (header + rows)", len(records), len(quotes)+1)
	}
	if records[0][0] != "ID" || records[0][1] != "Quote" {
		t.Errorf("unexpected header row: %v", records[0])
	}
	// Rows commas/quotes survive round-trip
	if records[1][1] != quotes[0].Text {
		t.Errorf("got quote %q, want %q", records[1][1], quotes[0].Text)
	}
}

func TestJSONExport(t *testing.T) {
	quotes := sampleQuotes()
	w := httptest.NewRecorder()

	if err := JSON(w, quotes); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}

	var rows []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if len(rows) != len(quotes) {
		t.Fatalf("got %d rows, want %d", len(rows), len(quotes))
	}
	for i, row := range rows {
		for _, key := range []string{"id", "quote", "generated_at", "theme"} {
			if _, ok := row[key]; !ok {
				t.Errorf("row %d missing key %q", i, key)
			}
		}
	}
}

// Both export formats must carry the same rows.
func TestExportsAgreeOnIDs(t *testing.T) {
	quotes := sampleQuotes()

	csvRec := httptest.NewRecorder()
	if err := CSV(csvRec, quotes); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	records, err := csv.NewReader(csvRec.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	csvIDs := make(map[int64]bool)
	for _, rec := range records[1:] {
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			t.Fatalf("bad id %q: %v", rec[0], err)
		}
		csvIDs[id] = true
	}

	jsonRec := httptest.NewRecorder()
	if err := JSON(jsonRec, quotes); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var rows []jsonRow
	if err := json.Unmarshal(jsonRec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}

	if len(rows) != len(csvIDs) {
		t.Fatalf("row count mismatch: json %d, csv %d", len(rows), len(csvIDs))
	}
	for _, row := range rows {
		if !csvIDs[row.ID] {
			t.Errorf("id %d present in JSON but not CSV", row.ID)
		}
	}
}

func TestEmptyExport(t *testing.T) {
	w := httptest.NewRecorder()
	if err := JSON(w, nil); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var rows []jsonRow
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty array, got %d rows", len(rows))
	}
}
