package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

const csvPlaceholderDescription = "Imported transaction"

// csvDateFormats are tried in order. ISO first; day-first variants cover the
// Portuguese bank exports this importer grew up on.
var csvDateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// CSVImporter reads comma-delimited statement exports. The first line is the
// header; cells are matched against the field synonym lists, so column order
// and language do not matter.
type CSVImporter struct{}

func NewCSV() *CSVImporter {
	return &CSVImporter{}
}

func (i *CSVImporter) Parse(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true    // Allow sloppy quotes if necessary

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	result := &Result{}

	if len(rows) == 0 {
		return result, nil
	}

	header := make([]string, len(rows[0]))
	for idx, cell := range rows[0] {
		header[idx] = strings.ToLower(strings.TrimSpace(cell))
	}

	for rowIdx, row := range rows[1:] {
		lineNum := rowIdx + 2 // 1-based, header is line 1

		bag := make(fieldBag, len(header))

		for colIdx, name := range header {
			if colIdx >= len(row) || name == "" {
				continue
			}

			bag[name] = strings.TrimSpace(row[colIdx])
		}

		fields := normalizeFields(bag)

		date, ok := parseCSVDate(fields.Date)
		if !ok {
			reason := "unparsable date"
			if fields.Date == "" {
				reason = "missing date"
			}

			result.Skipped = append(result.Skipped, SkippedRow{Line: lineNum, Reason: reason})

			continue
		}

		description := fields.Description
		if description == "" {
			description = csvPlaceholderDescription
		}

		amount, txType := fromSignedAmount(fields.Amount)

		result.Transactions = append(result.Transactions, Candidate{
			Date:        date,
			Description: description,
			Amount:      amount,
			Type:        txType,
			Category:    fields.Category,
			Account:     fields.Account,
		})
	}

	return result, nil
}

func parseCSVDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range csvDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
