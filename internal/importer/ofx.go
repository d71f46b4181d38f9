package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbfernandes/bolso/internal/transaction"
)

const ofxPlaceholderDescription = "Imported OFX transaction"

const (
	stmtTrnOpen  = "<STMTTRN>"
	stmtTrnClose = "</STMTTRN>"
)

// OFXImporter extracts transactions from OFX statements. OFX v1 is an SGML
// subset where closing tags are optional on leaf elements, so instead of a
// document parser this is a scanner over <STMTTRN> block boundaries: each
// well-delimited block yields at most one candidate, and a truncated or
// malformed block drops only itself.
type OFXImporter struct{}

func NewOFX() *OFXImporter {
	return &OFXImporter{}
}

func (i *OFXImporter) Parse(r io.Reader) (*Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read ofx: %w", err)
	}

	result := &Result{}
	text := string(content)
	blockNum := 0

	for {
		start := strings.Index(text, stmtTrnOpen)
		if start < 0 {
			break
		}

		blockNum++
		text = text[start+len(stmtTrnOpen):]

		end := strings.Index(text, stmtTrnClose)
		if end < 0 {
			// Unterminated block, usually a truncated download.
			result.Skipped = append(result.Skipped, SkippedRow{Line: blockNum, Reason: "unterminated transaction block"})
			break
		}

		block := text[:end]
		text = text[end+len(stmtTrnClose):]

		candidate, reason := parseStmtTrn(block)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedRow{Line: blockNum, Reason: reason})
			continue
		}

		result.Transactions = append(result.Transactions, candidate)
	}

	return result, nil
}

// parseStmtTrn extracts one candidate from a STMTTRN block. A block missing
// either DTPOSTED or TRNAMT is dropped entirely; there are no partial
// records. The returned reason is empty on success.
func parseStmtTrn(block string) (Candidate, string) {
	posted := tagValue(block, "DTPOSTED")
	if posted == "" {
		return Candidate{}, "missing DTPOSTED"
	}

	date, ok := parsePostedDate(posted)
	if !ok {
		return Candidate{}, "invalid DTPOSTED"
	}

	amountStr := tagValue(block, "TRNAMT")
	if amountStr == "" {
		return Candidate{}, "missing TRNAMT"
	}

	signed, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Candidate{}, "invalid TRNAMT"
	}

	amount := signed
	txType := transaction.TypeIncome

	if signed.IsNegative() {
		amount = signed.Abs()
		txType = transaction.TypeExpense
	}

	description := tagValue(block, "MEMO")
	if description == "" {
		description = ofxPlaceholderDescription
	}

	// OFX has no standard category or account label, so neither is ever set.
	return Candidate{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        txType,
	}, ""
}

// tagValue returns the text following <TAG> up to the next tag or line break.
// OFX v1 leaf elements have no closing tags.
func tagValue(block, tag string) string {
	idx := strings.Index(block, "<"+tag+">")
	if idx < 0 {
		return ""
	}

	v := block[idx+len(tag)+2:]
	if cut := strings.IndexAny(v, "<\r\n"); cut >= 0 {
		v = v[:cut]
	}

	return strings.TrimSpace(v)
}

// parsePostedDate reads the leading YYYYMMDD of a DTPOSTED value. Timestamps
// and timezone suffixes ("20240113120000[-5:EST]") are tolerated and ignored.
func parsePostedDate(s string) (time.Time, bool) {
	if len(s) < 8 {
		return time.Time{}, false
	}

	t, err := time.Parse("20060102", s[:8])
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
