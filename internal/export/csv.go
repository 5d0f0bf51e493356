// Package export renders screening results as CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RMahshie/imdscreen/pkg/models"
)

// FileName is the name offered for downloaded result tables.
const FileName = "imd_frequencies_with_gnss_overlap.csv"

// ContentType is the MIME type of the CSV export.
const ContentType = "text/csv"

// Header lists the table columns in output order.
var Header = []string{"n", "m", "Sign of n", "Sign of m", "IMD Frequency (MHz)", "Overlap"}

// Record renders one row in column order.
func Record(row models.ClassifiedProduct) []string {
	return []string{
		strconv.Itoa(row.N),
		strconv.Itoa(row.M),
		strconv.Itoa(int(row.Sign1)),
		strconv.Itoa(int(row.Sign2)),
		FormatFrequency(row.Frequency),
		row.Overlap,
	}
}

// FormatFrequency prints f with at least one decimal place, so whole
// frequencies read "100.0" rather than "100".
func FormatFrequency(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Write writes the header and one record per row.
func Write(w io.Writer, rows []models.ResultRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(Record(row.ClassifiedProduct)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// Encode returns the CSV document for rows.
func Encode(rows []models.ResultRow) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentDisposition returns the attachment header for FileName.
func ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", FileName)
}
