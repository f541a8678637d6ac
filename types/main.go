package types

import "time"

type AccountType = string

var (
	AccountTypeSavings       AccountType = "savings"
	AccountTypeContributions AccountType = "contributions"
	AccountTypeSurplus       AccountType = "surplus"
)

// AccountTypes lists every sub-account a member can hold, in the order
// liquidation processes them.
var AccountTypes = []AccountType{
	AccountTypeSavings,
	AccountTypeContributions,
	AccountTypeSurplus,
}

type LiquidationType = string

var (
	LiquidationTypePeriodic LiquidationType = "periodic"
	LiquidationTypeExit     LiquidationType = "exit"
)

func ValidLiquidationType(t LiquidationType) bool {
	return t == LiquidationTypePeriodic || t == LiquidationTypeExit
}

type TransactionType = string

var (
	TransactionTypeDeposit             TransactionType = "deposit"
	TransactionTypeWithdrawal          TransactionType = "withdrawal"
	TransactionTypeLiquidation         TransactionType = "liquidation"
	TransactionTypeSurplusDistribution TransactionType = "surplus_distribution"
	TransactionTypeTransferIn          TransactionType = "transfer_in"
	TransactionTypeTransferOut         TransactionType = "transfer_out"
)

type TransactionStatus = string

var (
	TransactionStatusCompleted TransactionStatus = "completed"
)

type OrderBy = string

var (
	OrderByAsc  OrderBy = "asc"
	OrderByDesc OrderBy = "desc"
)

// FiscalYearFor maps a date to the fiscal year it belongs to. With a
// January start the fiscal year is the calendar year; otherwise a fiscal
// year is labelled by the calendar year it ends in, so dates on or after
// the start month roll forward.
func FiscalYearFor(date time.Time, start_month time.Month) int {
	if start_month <= time.January {
		return date.Year()
	}

	if date.Month() >= start_month {
		return date.Year() + 1
	}

	return date.Year()
}
