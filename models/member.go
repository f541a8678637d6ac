package models

import (
	"time"

	"github.com/volatiletech/null"
	"gorm.io/gorm"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/types"
)

type Member struct {
	ID                   uint64    `json:"id" gorm:"primaryKey"`
	UID                  string    `json:"uid"`
	CooperativeID        uint64    `json:"cooperative_id"`
	FullName             string    `json:"full_name"`
	IdentificationNumber string    `json:"identification_number"`
	Email                string    `json:"email"`
	Role                 string    `json:"role"`
	AffiliationDate      time.Time `json:"affiliation_date"`
	LastLiquidationDate  null.Time `json:"last_liquidation_date"`
	IsActive             bool      `json:"is_active" gorm:"default:true"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (m *Member) GetAccount(account_type types.AccountType) *Account {
	var account *Account

	config.DataBase.FirstOrCreate(&account, Account{MemberID: m.ID, Type: account_type})

	return account
}

// LiquidationBaseDate is the date eligibility is measured from: the last
// liquidation when one exists, the affiliation date otherwise.
func (m *Member) LiquidationBaseDate() time.Time {
	if m.LastLiquidationDate.Valid {
		return m.LastLiquidationDate.Time
	}

	return m.AffiliationDate
}

func (m *Member) YearsSinceLastLiquidation(now time.Time) float64 {
	return now.Sub(m.LiquidationBaseDate()).Hours() / (24 * 365.25)
}

// SetLiquidated records a completed liquidation on the member row inside
// the caller's transaction. The liquidation date never moves backwards.
func (m *Member) SetLiquidated(tx *gorm.DB, date time.Time, continues bool) error {
	if !m.LastLiquidationDate.Valid || date.After(m.LastLiquidationDate.Time) {
		m.LastLiquidationDate = null.TimeFrom(date)
	}

	if !continues {
		m.IsActive = false
	}

	return tx.Save(&m).Error
}

type MemberJSON struct {
	ID                        uint64    `json:"id"`
	UID                       string    `json:"uid"`
	CooperativeID             uint64    `json:"cooperative_id"`
	FullName                  string    `json:"full_name"`
	IdentificationNumber      string    `json:"identification_number"`
	AffiliationDate           time.Time `json:"affiliation_date"`
	LastLiquidationDate       null.Time `json:"last_liquidation_date"`
	IsActive                  bool      `json:"is_active"`
	YearsSinceLastLiquidation float64   `json:"years_since_last_liquidation"`
}

func (m *Member) ToJSON() MemberJSON {
	return MemberJSON{
		ID:                        m.ID,
		UID:                       m.UID,
		CooperativeID:             m.CooperativeID,
		FullName:                  m.FullName,
		IdentificationNumber:      m.IdentificationNumber,
		AffiliationDate:           m.AffiliationDate,
		LastLiquidationDate:       m.LastLiquidationDate,
		IsActive:                  m.IsActive,
		YearsSinceLastLiquidation: m.YearsSinceLastLiquidation(time.Now()),
	}
}
