package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFields(t *testing.T) {
	tests := []struct {
		name string
		bag  fieldBag
		want rawFields
	}{
		{
			name: "English Names",
			bag:  fieldBag{"date": "2024-01-01", "description": "Coffee", "amount": "-5", "category": "Food", "account": "Checking"},
			want: rawFields{Date: "2024-01-01", Description: "Coffee", Amount: "-5", Category: "Food", Account: "Checking"},
		},
		{
			name: "Portuguese Names",
			bag:  fieldBag{"data": "2024-01-01", "descrição": "Café", "valor": "-5", "categoria": "Alimentação", "conta": "Corrente"},
			want: rawFields{Date: "2024-01-01", Description: "Café", Amount: "-5", Category: "Alimentação", Account: "Corrente"},
		},
		{
			name: "Long Form Date Column",
			bag:  fieldBag{"data da transação": "2024-02-02", "histórico": "Transferência", "quantia": "10"},
			want: rawFields{Date: "2024-02-02", Description: "Transferência", Amount: "10"},
		},
		{
			name: "First Synonym Wins",
			bag:  fieldBag{"date": "2024-01-01", "data": "1999-12-31", "amount": "1"},
			want: rawFields{Date: "2024-01-01", Amount: "1"},
		},
		{
			name: "Missing Amount Defaults To Zero",
			bag:  fieldBag{"data": "2024-01-01"},
			want: rawFields{Date: "2024-01-01", Amount: "0"},
		},
		{
			name: "Empty Bag",
			bag:  fieldBag{},
			want: rawFields{Amount: "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeFields(tt.bag))
		})
	}
}
