package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/mbfernandes/bolso/internal/transaction"
)

type transactionResponse struct {
	ID            uuid.UUID        `json:"id"`
	AccountID     uuid.UUID        `json:"account_id"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
	Description   string           `json:"description"`
	Amount        float64          `json:"amount"`
	Type          transaction.Type `json:"type"`
	Date          time.Time        `json:"date"`
	Notes         string           `json:"notes,omitempty"`
	AccountName   string           `json:"account_name,omitempty"`
	CategoryName  string           `json:"category_name,omitempty"`
	CategoryColor string           `json:"category_color,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		AccountID:     tx.AccountID,
		CategoryID:    tx.CategoryID,
		Description:   tx.Description,
		Amount:        tx.Amount.InexactFloat64(),
		Type:          tx.Type,
		Date:          tx.Date,
		Notes:         tx.Notes,
		AccountName:   tx.AccountName,
		CategoryName:  tx.CategoryName,
		CategoryColor: tx.CategoryColor,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
