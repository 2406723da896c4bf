// Package export serializes the full quotes table for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"quote-api/internal/store"
)

// CSV writes all quotes as an attached CSV file mirroring the table columns.
func CSV(w http.ResponseWriter, quotes []store.Quote) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=quotes.csv`)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Quote", "Generated At", "Theme"}); err != nil {
		return err
	}
	for _, q := range quotes {
		record := []string{
			strconv.FormatInt(q.ID, 10),
			q.Text,
			q.GeneratedAt.Format(time.RFC3339),
			q.Theme,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonRow struct {
	ID          int64  `json:"id"`
	Quote       string `json:"quote"`
	GeneratedAt string `json:"generated_at"`
	Theme       string `json:"theme"`
}

// JSON writes all quotes as an attached JSON array mirroring the table columns.
func JSON(w http.ResponseWriter, quotes []store.Quote) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename=quotes.json`)

	rows := make([]jsonRow, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, jsonRow{
			ID:          q.ID,
			Quote:       q.Text,
			GeneratedAt: q.GeneratedAt.Format(time.RFC3339),
			Theme:       q.Theme,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
