package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/mq_client"
	"github.com/coopfin/coopfin/types"
)

type Account struct {
	ID        uint64            `json:"id" gorm:"primaryKey"`
	MemberID  uint64            `json:"member_id"`
	Type      types.AccountType `json:"type"`
	Balance   decimal.Decimal   `json:"balance" validate:"ValidateBalance"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (a Account) ValidateBalance(Balance decimal.Decimal) bool {
	return Balance.GreaterThanOrEqual(decimal.Zero)
}

func (a *Account) Member() Member {
	var member Member

	config.DataBase.First(&member, "id = ?", a.MemberID)

	return member
}

func (a *Account) BeforeSave(tx *gorm.DB) (err error) {
	a.TriggerEvent()

	return
}

func (a *Account) TriggerEvent() {
	member := a.Member()
	payload_message, _ := json.Marshal(a.ToJSON())

	mq_client.EnqueueEvent("private", member.UID, "balance", payload_message)
}

func (a *Account) PlusFunds(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.New("Cannot add funds (member id: " + strconv.FormatUint(a.MemberID, 10) + ", account type: " + string(a.Type) + ", amount: " + amount.String() + ", balance: " + a.Balance.String() + ").")
	}

	a.Balance = a.Balance.Add(amount)
	return tx.Save(&a).Error
}

func (a *Account) SubFunds(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(a.Balance) {
		return errors.New("Cannot subtract funds (member id: " + strconv.FormatUint(a.MemberID, 10) + ", account type: " + string(a.Type) + ", amount: " + amount.String() + ", balance: " + a.Balance.String() + ").")
	}

	a.Balance = a.Balance.Sub(amount)
	return tx.Save(&a).Error
}

// ZeroOut drops the cached balance to exactly zero. Liquidation is the
// only caller; it records the matching ledger entry first.
func (a *Account) ZeroOut(tx *gorm.DB) error {
	a.Balance = decimal.Zero
	return tx.Save(&a).Error
}

type AccountJSON struct {
	Type    types.AccountType `json:"type"`
	Balance decimal.Decimal   `json:"balance"`
}

func (a *Account) ToJSON() AccountJSON {
	return AccountJSON{
		Type:    a.Type,
		Balance: a.Balance,
	}
}
