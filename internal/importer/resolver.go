package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mbfernandes/bolso/internal/account"
	"github.com/mbfernandes/bolso/internal/category"
	"github.com/mbfernandes/bolso/internal/transaction"
)

// Resolve converts caller-approved candidates into transactions ready for
// persistence, using a snapshot of the user's accounts and categories
// fetched once before resolution.
//
// Category labels are matched case-insensitively against existing category
// names; a candidate whose label matches nothing keeps an empty category
// reference — categories are never auto-created. Account labels parsed from
// the source file are ignored: every import lands in the first account of
// the snapshot. With no account to land in, the whole batch is rejected.
//
// Candidates are not mutated; resolution produces new records.
func Resolve(userID uuid.UUID, candidates []Candidate, accounts []*account.Account, categories []*category.Category) ([]*transaction.Transaction, error) {
	if len(accounts) == 0 {
		return nil, ErrNoDestinationAccount
	}

	destination := accounts[0].ID

	byName := make(map[string]uuid.UUID, len(categories))
	for _, cat := range categories {
		byName[strings.ToLower(cat.Name)] = cat.ID
	}

	txs := make([]*transaction.Transaction, 0, len(candidates))

	for _, cand := range candidates {
		var categoryID *uuid.UUID

		if cand.Category != "" {
			if id, ok := byName[strings.ToLower(cand.Category)]; ok {
				categoryID = &id
			}
		}

		txs = append(txs, &transaction.Transaction{
			UserID:      userID,
			AccountID:   destination,
			CategoryID:  categoryID,
			Description: cand.Description,
			Amount:      cand.Amount,
			Type:        cand.Type,
			Date:        cand.Date,
		})
	}

	return txs, nil
}
