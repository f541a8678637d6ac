package liquidation

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/models"
	"github.com/coopfin/coopfin/services/receipts"
	"github.com/coopfin/coopfin/types"
)

type ExecuteParams struct {
	MemberIDs       []uint64              `json:"member_ids"`
	Type            types.LiquidationType `json:"liquidation_type"`
	MemberContinues bool                  `json:"member_continues"`
	Notes           null.String           `json:"notes"`
	ProcessedBy     uint64                `json:"processed_by"`
	CooperativeID   uint64                `json:"cooperative_id"`
}

func (p *ExecuteParams) Validate() *OperationError {
	if len(p.MemberIDs) == 0 {
		return NewValidationError("coop.liquidation.empty_member_ids", "member_ids must not be empty")
	}

	if !types.ValidLiquidationType(p.Type) {
		return NewValidationError("coop.liquidation.invalid_type", "liquidation_type must be periodic or exit")
	}

	if p.CooperativeID == 0 {
		return NewValidationError("coop.liquidation.missing_cooperative", "cooperative_id is required")
	}

	return nil
}

// Result is one member's outcome. Zero-balance members are skipped and
// produce no Result, so a batch may return fewer entries than it was
// asked for. Receipt fields are filled after commit, best-effort.
type Result struct {
	MemberID        uint64          `json:"member_id"`
	MemberName      string          `json:"member_name"`
	LiquidationID   uint64          `json:"liquidation_id"`
	TotalLiquidated decimal.Decimal `json:"total_liquidated"`
	Transactions    []uint64        `json:"transactions"`
	ReceiptID       null.Uint64     `json:"receipt_id,omitempty"`
	ReceiptNumber   null.String     `json:"receipt_number,omitempty"`
	ReceiptError    null.String     `json:"receipt_error,omitempty"`
}

type Engine struct {
	db       *gorm.DB
	receipts receipts.Generator
}

func NewEngine(db *gorm.DB, generator receipts.Generator) *Engine {
	return &Engine{db: db, receipts: generator}
}

// Execute liquidates every requested member inside one database
// transaction: any missing member or storage failure rolls the whole
// batch back. Receipt generation and event publication run after commit
// and never unwind it.
func (e *Engine) Execute(params ExecuteParams) ([]*Result, error) {
	if op_err := params.Validate(); op_err != nil {
		return nil, op_err
	}

	results := make([]*Result, 0, len(params.MemberIDs))
	liquidations := make([]*models.Liquidation, 0, len(params.MemberIDs))

	today := time.Now()
	fiscal_year := types.FiscalYearFor(today, config.App.FiscalYearStartMonth)

	err := e.db.Transaction(func(tx *gorm.DB) error {
		for _, member_id := range params.MemberIDs {
			result, created, err := e.liquidateMember(tx, member_id, params, today, fiscal_year)

			if err != nil {
				return err
			}

			if result == nil {
				// Zero balance, nothing to liquidate for this member.
				continue
			}

			results = append(results, result)
			liquidations = append(liquidations, created)
		}

		// return nil will commit the whole transaction
		return nil
	})

	if err != nil {
		var op_err *OperationError
		if errors.As(err, &op_err) {
			return nil, op_err
		}

		config.Logger.Errorf("Liquidation batch rolled back: %v", err)
		return nil, NewInternalError()
	}

	e.runPostCommitHooks(results, liquidations)
	InvalidatePendingCache(params.CooperativeID)

	return results, nil
}

func (e *Engine) liquidateMember(tx *gorm.DB, member_id uint64, params ExecuteParams, today time.Time, fiscal_year int) (*Result, *models.Liquidation, error) {
	var member *models.Member

	// Lock the member row so two batches hitting the same member
	// serialize at the database instead of double-paying.
	lookup := tx.Clauses(clause.Locking{
		Strength: "UPDATE",
		Table:    clause.Table{Name: "members"},
	}).Where("id = ? AND cooperative_id = ?", member_id, params.CooperativeID).First(&member)

	if errors.Is(lookup.Error, gorm.ErrRecordNotFound) {
		return nil, nil, NewNotFoundError(
			"coop.liquidation.member_not_found",
			fmt.Sprintf("member %d not found", member_id),
		)
	} else if lookup.Error != nil {
		return nil, nil, lookup.Error
	}

	summary, err := ReadBalances(tx.Clauses(clause.Locking{
		Strength: "UPDATE",
		Table:    clause.Table{Name: "accounts"},
	}), member_id)

	if err != nil {
		return nil, nil, err
	}

	total := summary.Total()

	if total.IsZero() {
		config.Logger.Infof("Skipping liquidation for member %s: all balances are zero", member.UID)
		return nil, nil, nil
	}

	transaction_ids := make([]uint64, 0, len(types.AccountTypes))

	for _, account_type := range types.AccountTypes {
		balance := summary.ByType(account_type)

		if !balance.HasAccount() || !balance.Balance.IsPositive() {
			continue
		}

		description := fmt.Sprintf("%s liquidation for %s", params.Type, member.FullName)

		transaction_id, err := models.LedgerWrite(
			tx,
			balance.AccountID,
			types.TransactionTypeLiquidation,
			balance.Balance,
			today,
			fiscal_year,
			description,
			params.ProcessedBy,
		)

		if err != nil {
			return nil, nil, err
		}

		if err := balance.Account().ZeroOut(tx); err != nil {
			return nil, nil, err
		}

		transaction_ids = append(transaction_ids, transaction_id)
	}

	if err := member.SetLiquidated(tx, today, params.MemberContinues); err != nil {
		return nil, nil, err
	}

	created := models.BuildLiquidation(
		member,
		params.Type,
		today,
		summary.Savings.Balance,
		summary.Contributions.Balance,
		summary.Surplus.Balance,
		params.MemberContinues,
		params.Notes,
		params.ProcessedBy,
	)

	if err := tx.Create(created).Error; err != nil {
		return nil, nil, err
	}

	result := &Result{
		MemberID:        member.ID,
		MemberName:      member.FullName,
		LiquidationID:   created.ID,
		TotalLiquidated: total,
		Transactions:    transaction_ids,
	}

	return result, created, nil
}

// runPostCommitHooks runs the best-effort phase: the financial mutation
// is already committed, so a failing receipt or publication only marks
// the result, it never fails the liquidation.
func (e *Engine) runPostCommitHooks(results []*Result, liquidations []*models.Liquidation) {
	for i, result := range results {
		receipt, err := e.receipts.GenerateForLiquidation(result.LiquidationID)

		if err != nil {
			config.Logger.Errorf("Receipt generation failed for liquidation %d: %v", result.LiquidationID, err)
			result.ReceiptError = null.StringFrom(err.Error())
		} else {
			result.ReceiptID = null.Uint64From(receipt.ID)
			result.ReceiptNumber = null.StringFrom(receipt.ReceiptNumber)
		}

		liquidation := liquidations[i]

		if config.Nats != nil {
			payload_message, _ := json.Marshal(liquidation.ToJSON())
			config.Nats.Publish("liquidations", payload_message)
		}

		if config.InfluxDB != nil {
			liquidation.WriteToInflux()
		}
	}
}
