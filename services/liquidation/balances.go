package liquidation

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/models"
	"github.com/coopfin/coopfin/types"
)

// NoAccountID marks an account type the member never opened. Such a type
// liquidates as zero without producing a ledger entry.
const NoAccountID uint64 = 0

type AccountBalance struct {
	AccountID uint64          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`

	account *models.Account
}

func (b *AccountBalance) HasAccount() bool {
	return b.AccountID != NoAccountID
}

func (b *AccountBalance) Account() *models.Account {
	return b.account
}

type BalanceSummary struct {
	Savings       AccountBalance `json:"savings"`
	Contributions AccountBalance `json:"contributions"`
	Surplus       AccountBalance `json:"surplus"`
}

func (s *BalanceSummary) ByType(account_type types.AccountType) *AccountBalance {
	switch account_type {
	case types.AccountTypeSavings:
		return &s.Savings
	case types.AccountTypeContributions:
		return &s.Contributions
	default:
		return &s.Surplus
	}
}

func (s *BalanceSummary) Total() decimal.Decimal {
	return s.Savings.Balance.Add(s.Contributions.Balance).Add(s.Surplus.Balance)
}

// ReadBalances fetches the member's three sub-account balances on the
// given handle. Passing a transaction handle makes the read part of the
// caller's unit of work; a missing account type reads as a zero balance
// with NoAccountID.
func ReadBalances(tx *gorm.DB, member_id uint64) (*BalanceSummary, error) {
	var accounts []*models.Account

	if err := tx.Where("member_id = ?", member_id).Find(&accounts).Error; err != nil {
		return nil, err
	}

	summary := &BalanceSummary{
		Savings:       AccountBalance{AccountID: NoAccountID, Balance: decimal.Zero},
		Contributions: AccountBalance{AccountID: NoAccountID, Balance: decimal.Zero},
		Surplus:       AccountBalance{AccountID: NoAccountID, Balance: decimal.Zero},
	}

	for _, account := range accounts {
		balance := summary.ByType(account.Type)
		balance.AccountID = account.ID
		balance.Balance = account.Balance
		balance.account = account
	}

	return summary, nil
}

type Preview struct {
	Member               models.MemberJSON `json:"member"`
	SavingsBalance       decimal.Decimal   `json:"savings_balance"`
	ContributionsBalance decimal.Decimal   `json:"contributions_balance"`
	SurplusBalance       decimal.Decimal   `json:"surplus_balance"`
	TotalAmount          decimal.Decimal   `json:"total_amount"`
}

func BuildPreview(member *models.Member, summary *BalanceSummary) *Preview {
	return &Preview{
		Member:               member.ToJSON(),
		SavingsBalance:       summary.Savings.Balance,
		ContributionsBalance: summary.Contributions.Balance,
		SurplusBalance:       summary.Surplus.Balance,
		TotalAmount:          summary.Total(),
	}
}

// GetPreview shows what Execute would liquidate for the member, through
// the same ReadBalances the engine uses, so preview and execution cannot
// disagree. Read-only, no locks.
func GetPreview(member_id uint64) (*Preview, error) {
	var member *models.Member

	result := config.DataBase.Where("id = ?", member_id).First(&member)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundError("record.not_found", "member not found")
	} else if result.Error != nil {
		config.Logger.Errorf("Failed to fetch member %d: %v", member_id, result.Error)
		return nil, NewInternalError()
	}

	summary, err := ReadBalances(config.DataBase, member_id)
	if err != nil {
		config.Logger.Errorf("Failed to read balances for member %d: %v", member_id, err)
		return nil, NewInternalError()
	}

	return BuildPreview(member, summary), nil
}
