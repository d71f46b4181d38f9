package importer_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbfernandes/bolso/internal/account"
	"github.com/mbfernandes/bolso/internal/category"
	"github.com/mbfernandes/bolso/internal/importer"
	"github.com/mbfernandes/bolso/internal/transaction"
)

func TestResolve(t *testing.T) {
	userID := uuid.New()
	checkingID := uuid.New()
	savingsID := uuid.New()
	salaryID := uuid.New()
	foodID := uuid.New()

	accounts := []*account.Account{
		{ID: checkingID, UserID: userID, Name: "Checking"},
		{ID: savingsID, UserID: userID, Name: "Savings"},
	}

	categories := []*category.Category{
		{ID: salaryID, UserID: userID, Name: "Salário"},
		{ID: foodID, UserID: userID, Name: "Alimentação"},
	}

	candidate := func(desc, cat string) importer.Candidate {
		return importer.Candidate{
			Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Description: desc,
			Amount:      decimal.NewFromInt(100),
			Type:        transaction.TypeIncome,
			Category:    cat,
		}
	}

	t.Run("Matches Category Case-Insensitively", func(t *testing.T) {
		txs, err := importer.Resolve(userID, []importer.Candidate{candidate("Pagamento", "salário")}, accounts, categories)

		require.NoError(t, err)
		require.Len(t, txs, 1)
		require.NotNil(t, txs[0].CategoryID)
		assert.Equal(t, salaryID, *txs[0].CategoryID)
	})

	t.Run("Unknown Category Stays Unset", func(t *testing.T) {
		txs, err := importer.Resolve(userID, []importer.Candidate{candidate("Cinema", "Lazer")}, accounts, categories)

		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Nil(t, txs[0].CategoryID)
	})

	t.Run("Empty Category Stays Unset", func(t *testing.T) {
		txs, err := importer.Resolve(userID, []importer.Candidate{candidate("Sem categoria", "")}, accounts, categories)

		require.NoError(t, err)
		assert.Nil(t, txs[0].CategoryID)
	})

	t.Run("All Transactions Land In First Account", func(t *testing.T) {
		cands := []importer.Candidate{
			candidate("A", ""),
			candidate("B", ""),
		}
		cands[1].Account = "Savings" // source label is ignored

		txs, err := importer.Resolve(userID, cands, accounts, categories)

		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, checkingID, txs[0].AccountID)
		assert.Equal(t, checkingID, txs[1].AccountID)
	})

	t.Run("No Accounts Rejects Batch", func(t *testing.T) {
		txs, err := importer.Resolve(userID, []importer.Candidate{candidate("Orphan", "")}, nil, categories)

		assert.ErrorIs(t, err, importer.ErrNoDestinationAccount)
		assert.Nil(t, txs)
	})

	t.Run("Carries Candidate Fields", func(t *testing.T) {
		c := importer.Candidate{
			Date:        time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC),
			Description: "Posto de gasolina",
			Amount:      decimal.NewFromInt(180),
			Type:        transaction.TypeExpense,
		}

		txs, err := importer.Resolve(userID, []importer.Candidate{c}, accounts, categories)

		require.NoError(t, err)
		got := txs[0]
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, c.Date, got.Date)
		assert.Equal(t, c.Description, got.Description)
		assert.True(t, got.Amount.Equal(c.Amount))
		assert.Equal(t, c.Type, got.Type)
	})

	t.Run("Empty Candidates", func(t *testing.T) {
		txs, err := importer.Resolve(userID, nil, accounts, categories)

		require.NoError(t, err)
		assert.Empty(t, txs)
	})
}
