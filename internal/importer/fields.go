package importer

// Statement exports name their columns in whatever language and convention
// the bank picked. Each canonical field has an ordered list of accepted
// synonyms; the first present, non-empty match wins.
var (
	dateAliases        = []string{"date", "data", "data da transação"}
	descriptionAliases = []string{"description", "descrição", "histórico"}
	amountAliases      = []string{"amount", "valor", "quantia"}
	categoryAliases    = []string{"category", "categoria"}
	accountAliases     = []string{"account", "conta"}
)

// fieldBag maps lower-cased header/tag names to raw string values for one
// row or block.
type fieldBag map[string]string

func (b fieldBag) first(aliases []string) string {
	for _, key := range aliases {
		if v := b[key]; v != "" {
			return v
		}
	}

	return ""
}

// rawFields is the canonical field set extracted from one row, still as raw
// strings. Date validation and sign handling happen later.
type rawFields struct {
	Date        string
	Description string
	Amount      string
	Category    string
	Account     string
}

func normalizeFields(bag fieldBag) rawFields {
	f := rawFields{
		Date:        bag.first(dateAliases),
		Description: bag.first(descriptionAliases),
		Amount:      bag.first(amountAliases),
		Category:    bag.first(categoryAliases),
		Account:     bag.first(accountAliases),
	}

	if f.Amount == "" {
		f.Amount = "0"
	}

	return f
}
