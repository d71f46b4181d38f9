package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbfernandes/bolso/internal/importer"
	"github.com/mbfernandes/bolso/internal/transaction"
)

func TestOFXImporter_Parse(t *testing.T) {
	type args struct {
		ofxContent string
	}

	type testCase struct {
		name        string
		args        args
		wantLen     int
		wantSkipped int
		verify      func(t *testing.T, result *importer.Result)
	}

	tests := []testCase{
		{
			name: "Single Statement Transaction",
			args: args{
				ofxContent: "<OFX><BANKMSGSRSV1><STMTTRNRS><STMTRS><BANKTRANLIST>\n" +
					"<STMTTRN>\n" +
					"<TRNTYPE>DEBIT\n" +
					"<DTPOSTED>20240113\n" +
					"<TRNAMT>-180.00\n" +
					"<MEMO>Posto de gasolina\n" +
					"</STMTTRN>\n" +
					"</BANKTRANLIST></STMTRS></STMTTRNRS></BANKMSGSRSV1></OFX>",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				got := result.Transactions[0]
				assert.Equal(t, time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), got.Date)
				assert.Equal(t, "Posto de gasolina", got.Description)
				assert.True(t, got.Amount.Equal(decimal.NewFromInt(180)), "amount = %s", got.Amount)
				assert.Equal(t, transaction.TypeExpense, got.Type)
				assert.Empty(t, got.Category)
				assert.Empty(t, got.Account)
			},
		},
		{
			name: "Positive Amount Is Income",
			args: args{
				ofxContent: "<STMTTRN>\n" +
					"<DTPOSTED>20240201120000[-3:BRT]\n" +
					"<TRNAMT>2500.00\n" +
					"<MEMO>Depósito salário\n" +
					"</STMTTRN>",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				got := result.Transactions[0]
				assert.Equal(t, transaction.TypeIncome, got.Type)
				assert.True(t, got.Amount.Equal(decimal.NewFromInt(2500)), "amount = %s", got.Amount)
				assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got.Date)
			},
		},
		{
			name: "Missing Memo Gets Placeholder",
			args: args{
				ofxContent: "<STMTTRN>\n" +
					"<DTPOSTED>20240310\n" +
					"<TRNAMT>-12.34\n" +
					"</STMTTRN>",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				assert.Equal(t, "Imported OFX transaction", result.Transactions[0].Description)
			},
		},
		{
			name: "Missing DTPOSTED Drops Block",
			args: args{
				ofxContent: "<STMTTRN>\n" +
					"<TRNAMT>-50.00\n" +
					"<MEMO>No date\n" +
					"</STMTTRN>\n" +
					"<STMTTRN>\n" +
					"<DTPOSTED>20240105\n" +
					"<TRNAMT>75.00\n" +
					"<MEMO>Kept\n" +
					"</STMTTRN>",
			},
			wantLen:     1,
			wantSkipped: 1,
			verify: func(t *testing.T, result *importer.Result) {
				assert.Equal(t, "Kept", result.Transactions[0].Description)
				assert.Equal(t, 1, result.Skipped[0].Line)
				assert.Equal(t, "missing DTPOSTED", result.Skipped[0].Reason)
			},
		},
		{
			name: "Missing TRNAMT Drops Block",
			args: args{
				ofxContent: "<STMTTRN>\n" +
					"<DTPOSTED>20240105\n" +
					"<MEMO>No amount\n" +
					"</STMTTRN>",
			},
			wantSkipped: 1,
			verify: func(t *testing.T, result *importer.Result) {
				assert.Equal(t, "missing TRNAMT", result.Skipped[0].Reason)
			},
		},
		{
			name: "Invalid Amount Drops Block",
			args: args{
				ofxContent: "<STMTTRN>\n" +
					"<DTPOSTED>20240105\n" +
					"<TRNAMT>abc\n" +
					"</STMTTRN>",
			},
			wantSkipped: 1,
			verify: func(t *testing.T, result *importer.Result) {
				assert.Equal(t, "invalid TRNAMT", result.Skipped[0].Reason)
			},
		},
		{
			name: "Unterminated Block",
			args: args{
				ofxContent: "<STMTTRN>\n" +
					"<DTPOSTED>20240110\n" +
					"<TRNAMT>10.00\n" +
					"</STMTTRN>\n" +
					"<STMTTRN>\n" +
					"<DTPOSTED>20240111\n" +
					"<TRNAMT>20.00\n",
			},
			wantLen:     1,
			wantSkipped: 1,
			verify: func(t *testing.T, result *importer.Result) {
				assert.Equal(t, "unterminated transaction block", result.Skipped[0].Reason)
				assert.Equal(t, 2, result.Skipped[0].Line)
			},
		},
		{
			name:    "No Transactions",
			args:    args{ofxContent: "<OFX><SIGNONMSGSRSV1></SIGNONMSGSRSV1></OFX>"},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := importer.NewOFX()
			got, err := imp.Parse(strings.NewReader(tt.args.ofxContent))

			require.NoError(t, err)
			assert.Len(t, got.Transactions, tt.wantLen)
			assert.Len(t, got.Skipped, tt.wantSkipped)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}
