// export.go implements GET /export: the whole diary as a flat table.
// Supports ?format=csv (CSV) or the default JSON.

package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/tourist-guide/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"entry_id", "place_id", "place_name", "category_id",
	"latitude", "longitude", "rating", "description", "saved",
}

// GetExport handles GET /export.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := queryParam(r, "format", &format); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	if format != nil && *format != "json" && *format != "csv" {
		writeJSON(w, http.StatusBadRequest, requestBody("format must be json or csv"))
		return
	}

	rows := s.export.Export(r.Context())
	if format != nil && *format == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the JSON response rows.
func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRow{
			EntryID:     r.EntryID,
			PlaceID:     r.PlaceID,
			PlaceName:   r.PlaceName,
			CategoryID:  r.CategoryID,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Rating:      r.Rating,
			Description: r.Description,
			Saved:       r.Saved,
		})
	}
	return out
}

// writeCSV encodes rows as a CSV attachment.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="diary.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.EntryID,
		r.PlaceID,
		r.PlaceName,
		r.CategoryID,
		strconv.FormatFloat(r.Latitude, 'f', -1, 64),
		strconv.FormatFloat(r.Longitude, 'f', -1, 64),
		strconv.Itoa(r.Rating),
		r.Description,
		strconv.FormatBool(r.Saved),
	}
}
