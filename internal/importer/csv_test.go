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

func TestCSVImporter_Parse(t *testing.T) {
	type args struct {
		csvContent string
	}

	type testCase struct {
		name        string
		args        args
		wantLen     int
		wantSkipped int
		verify      func(t *testing.T, result *importer.Result)
		wantErr     bool
	}

	tests := []testCase{
		{
			name: "Portuguese Headers",
			args: args{
				csvContent: "data,descrição,valor,categoria\n" +
					"2024-01-15,Salário,5000,Salário\n",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				got := result.Transactions[0]
				assert.Equal(t, "Salário", got.Description)
				assert.True(t, got.Amount.Equal(decimal.NewFromInt(5000)), "amount = %s", got.Amount)
				assert.Equal(t, transaction.TypeIncome, got.Type)
				assert.Equal(t, "Salário", got.Category)
				assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got.Date)
			},
		},
		{
			name: "Negative Amount Becomes Expense Magnitude",
			args: args{
				csvContent: "date,description,amount\n" +
					"2024-01-13,Fuel,-180.00\n",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				got := result.Transactions[0]
				assert.True(t, got.Amount.Equal(decimal.NewFromInt(180)), "amount = %s", got.Amount)
				assert.Equal(t, transaction.TypeExpense, got.Type)
				assert.False(t, got.Amount.IsNegative())
			},
		},
		{
			name: "Unparsable Date Drops Row",
			args: args{
				csvContent: "data,descrição,valor\n" +
					"2024-01-10,Kept,10\n" +
					"not-a-date,Dropped,20\n" +
					"2024-01-12,Also kept,30\n",
			},
			wantLen:     2,
			wantSkipped: 1,
			verify: func(t *testing.T, result *importer.Result) {
				assert.Equal(t, "Kept", result.Transactions[0].Description)
				assert.Equal(t, "Also kept", result.Transactions[1].Description)
				assert.Equal(t, 3, result.Skipped[0].Line)
				assert.Equal(t, "unparsable date", result.Skipped[0].Reason)
			},
		},
		{
			name: "Missing Date Drops Row",
			args: args{
				csvContent: "data,descrição,valor\n" +
					",Sem data,15\n",
			},
			wantLen:     0,
			wantSkipped: 1,
			verify: func(t *testing.T, result *importer.Result) {
				assert.Equal(t, "missing date", result.Skipped[0].Reason)
			},
		},
		{
			name: "Missing Description Gets Placeholder",
			args: args{
				csvContent: "data,valor\n" +
					"2024-02-01,-42.50\n",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				assert.Equal(t, "Imported transaction", result.Transactions[0].Description)
			},
		},
		{
			name: "Non-Numeric Amount Becomes Zero Income",
			args: args{
				csvContent: "date,description,amount\n" +
					"2024-03-01,Mystery,abc\n",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				got := result.Transactions[0]
				assert.True(t, got.Amount.IsZero())
				assert.Equal(t, transaction.TypeIncome, got.Type)
			},
		},
		{
			name: "Missing Amount Column Defaults To Zero",
			args: args{
				csvContent: "date,description\n" +
					"2024-03-02,No amount here\n",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				assert.True(t, result.Transactions[0].Amount.IsZero())
			},
		},
		{
			name: "Quoted Fields And Account Column",
			args: args{
				csvContent: "date,description,amount,account\n" +
					"2024-01-20,\"Groceries\",\"-55.10\",Checking\n",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				got := result.Transactions[0]
				assert.Equal(t, "Groceries", got.Description)
				assert.Equal(t, "Checking", got.Account)
				assert.Equal(t, transaction.TypeExpense, got.Type)
			},
		},
		{
			name: "Day First Date",
			args: args{
				csvContent: "data,histórico,quantia\n" +
					"15/01/2024,Transferência,100\n",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				got := result.Transactions[0]
				assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got.Date)
				assert.Equal(t, "Transferência", got.Description)
			},
		},
		{
			name: "European Amount Format",
			args: args{
				csvContent: "data,descrição,valor\n" +
					"2024-01-05,Renda,\"-1.234,56\"\n",
			},
			wantLen: 1,
			verify: func(t *testing.T, result *importer.Result) {
				got := result.Transactions[0]
				assert.True(t, got.Amount.Equal(decimal.NewFromFloat(1234.56)), "amount = %s", got.Amount)
				assert.Equal(t, transaction.TypeExpense, got.Type)
			},
		},
		{
			name:    "Empty File",
			args:    args{csvContent: ""},
			wantLen: 0,
		},
		{
			name:    "Header Only",
			args:    args{csvContent: "data,descrição,valor\n"},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := importer.NewCSV()
			got, err := imp.Parse(strings.NewReader(tt.args.csvContent))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Transactions, tt.wantLen)
			assert.Len(t, got.Skipped, tt.wantSkipped)

			for _, c := range got.Transactions {
				assert.False(t, c.Amount.IsNegative(), "candidate amounts are magnitudes")
			}

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestCSVImporter_Parse_Idempotent(t *testing.T) {
	content := "data,descrição,valor\n" +
		"2024-01-15,Salário,5000\n" +
		"2024-01-16,Mercado,-230.40\n"

	imp := importer.NewCSV()

	first, err := imp.Parse(strings.NewReader(content))
	require.NoError(t, err)

	second, err := imp.Parse(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
