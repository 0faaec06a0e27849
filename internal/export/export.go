package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"invoicecheck/internal/domain"
)

// Format is an analysis export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat converts a query value into a Format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", domain.ErrInvalidExportFormat
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// columns defines the header row shared by every format.
var columns = []string{
	"Analysis ID",
	"Created At",
	"Source",
	"File Name",
	"Invoice Type",
	"Language",
	"Overall Status",
	"Checks Passed",
	"Checks Total",
	"Missing Items",
	"Warnings",
	"Invoice Number",
	"Invoice Date",
	"Sender Name",
	"Total Amount",
	"Currency",
	"Model Used",
	"Summary",
}

// Write renders analyses to w in the requested format.
func Write(w io.Writer, format Format, analyses []domain.Analysis) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, analyses)
	case FormatXLSX:
		return writeXLSX(w, analyses)
	}
	return domain.ErrInvalidExportFormat
}

// analysisToRow converts one analysis to a row aligned with columns.
func analysisToRow(a *domain.Analysis) []string {
	r := &a.Result
	counts := r.CountByStatus()

	row := []string{
		a.ID.String(),
		a.CreatedAt.UTC().Format(time.RFC3339),
		string(a.Source),
		a.FileName,
		string(a.InvoiceType),
		string(a.Language),
		string(a.OverallStatus),
		strconv.Itoa(counts[domain.CheckStatusPresent]),
		strconv.Itoa(len(r.Checks)),
		strings.Join(r.MissingItems, "; "),
		strings.Join(r.Warnings, "; "),
		"", "", "", "", "",
		a.ModelUsed,
		r.Summary,
	}
	if d := r.ExtractedData; d != nil {
		row[11] = deref(d.InvoiceNumber)
		row[12] = deref(d.InvoiceDate)
		row[13] = deref(d.SenderName)
		row[14] = deref(d.TotalAmount)
		row[15] = deref(d.Currency)
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BuildFilename returns the Content-Disposition filename for an export.
// Format: analyses_{YYYY-MM-DD}.{ext}
func BuildFilename(format Format, now time.Time) string {
	return fmt.Sprintf("analyses_%s.%s", now.Format("2006-01-02"), format)
}
