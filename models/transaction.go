package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coopfin/coopfin/types"
)

// Transaction is one immutable ledger entry. Rows are only ever inserted;
// no update or delete path exists anywhere in the codebase.
type Transaction struct {
	ID              uint64                  `json:"id" gorm:"primaryKey"`
	AccountID       uint64                  `json:"account_id"`
	Type            types.TransactionType   `json:"type"`
	Amount          decimal.Decimal         `json:"amount" validate:"ValidateAmount"`
	TransactionDate time.Time               `json:"transaction_date"`
	FiscalYear      int                     `json:"fiscal_year"`
	Description     string                  `json:"description"`
	Status          types.TransactionStatus `json:"status" gorm:"default:completed"`
	CreatedBy       uint64                  `json:"created_by"`
	CreatedAt       time.Time               `json:"created_at"`
}

func (t Transaction) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

// LedgerWrite appends one entry inside the caller's transaction handle so
// the write shares the caller's atomicity, and returns the new row id.
func LedgerWrite(tx *gorm.DB, account_id uint64, transaction_type types.TransactionType, amount decimal.Decimal, date time.Time, fiscal_year int, description string, created_by uint64) (uint64, error) {
	transaction := &Transaction{
		AccountID:       account_id,
		Type:            transaction_type,
		Amount:          amount,
		TransactionDate: date,
		FiscalYear:      fiscal_year,
		Description:     description,
		Status:          types.TransactionStatusCompleted,
		CreatedBy:       created_by,
	}

	if err := tx.Create(transaction).Error; err != nil {
		return 0, err
	}

	return transaction.ID, nil
}

type TransactionJSON struct {
	ID              uint64                  `json:"id"`
	AccountID       uint64                  `json:"account_id"`
	Type            types.TransactionType   `json:"type"`
	Amount          decimal.Decimal         `json:"amount"`
	TransactionDate time.Time               `json:"transaction_date"`
	FiscalYear      int                     `json:"fiscal_year"`
	Description     string                  `json:"description"`
	Status          types.TransactionStatus `json:"status"`
}

func (t *Transaction) ToJSON() TransactionJSON {
	return TransactionJSON{
		ID:              t.ID,
		AccountID:       t.AccountID,
		Type:            t.Type,
		Amount:          t.Amount,
		TransactionDate: t.TransactionDate,
		FiscalYear:      t.FiscalYear,
		Description:     t.Description,
		Status:          t.Status,
	}
}
