package export

import (
	"encoding/csv"
	"io"

	"invoicecheck/internal/domain"
)

// BOM is the UTF-8 byte order mark Excel on Windows needs to detect encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

func writeCSV(w io.Writer, analyses []domain.Analysis) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for i := range analyses {
		if err := cw.Write(analysisToRow(&analyses[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
