package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/types"
)

// Liquidation records one liquidation event for one member. Immutable
// once created.
type Liquidation struct {
	ID                 uint64                `json:"id" gorm:"primaryKey"`
	MemberID           uint64                `json:"member_id"`
	CooperativeID      uint64                `json:"cooperative_id"`
	Type               types.LiquidationType `json:"type"`
	LiquidationDate    time.Time             `json:"liquidation_date"`
	TotalSavings       decimal.Decimal       `json:"total_savings"`
	TotalContributions decimal.Decimal       `json:"total_contributions"`
	TotalSurplus       decimal.Decimal       `json:"total_surplus"`
	TotalAmount        decimal.Decimal       `json:"total_amount"`
	MemberContinues    bool                  `json:"member_continues"`
	Notes              null.String           `json:"notes"`
	ProcessedBy        uint64                `json:"processed_by"`
	CreatedAt          time.Time             `json:"created_at"`
}

// BuildLiquidation derives TotalAmount from the three per-type amounts so
// the total can never disagree with its parts.
func BuildLiquidation(member *Member, liquidation_type types.LiquidationType, date time.Time, savings, contributions, surplus decimal.Decimal, continues bool, notes null.String, processed_by uint64) *Liquidation {
	return &Liquidation{
		MemberID:           member.ID,
		CooperativeID:      member.CooperativeID,
		Type:               liquidation_type,
		LiquidationDate:    date,
		TotalSavings:       savings,
		TotalContributions: contributions,
		TotalSurplus:       surplus,
		TotalAmount:        savings.Add(contributions).Add(surplus),
		MemberContinues:    continues,
		Notes:              notes,
		ProcessedBy:        processed_by,
	}
}

func (l *Liquidation) Member() Member {
	var member Member

	config.DataBase.First(&member, "id = ?", l.MemberID)

	return member
}

func (l *Liquidation) WriteToInflux() {
	tags := map[string]string{
		"cooperative_id": strconv.FormatUint(l.CooperativeID, 10),
		"type":           l.Type,
	}

	fields := map[string]interface{}{
		"member_id":           int64(l.MemberID),
		"total_savings":       l.TotalSavings.InexactFloat64(),
		"total_contributions": l.TotalContributions.InexactFloat64(),
		"total_surplus":       l.TotalSurplus.InexactFloat64(),
		"total_amount":        l.TotalAmount.InexactFloat64(),
	}

	config.InfluxDB.NewPoint("liquidations", tags, fields)
}

type LiquidationJSON struct {
	ID                 uint64                `json:"id"`
	MemberID           uint64                `json:"member_id"`
	CooperativeID      uint64                `json:"cooperative_id"`
	Type               types.LiquidationType `json:"type"`
	LiquidationDate    time.Time             `json:"liquidation_date"`
	TotalSavings       decimal.Decimal       `json:"total_savings"`
	TotalContributions decimal.Decimal       `json:"total_contributions"`
	TotalSurplus       decimal.Decimal       `json:"total_surplus"`
	TotalAmount        decimal.Decimal       `json:"total_amount"`
	MemberContinues    bool                  `json:"member_continues"`
	Notes              null.String           `json:"notes"`
	ProcessedBy        uint64                `json:"processed_by"`
	CreatedAt          time.Time             `json:"created_at"`
}

func (l *Liquidation) ToJSON() LiquidationJSON {
	return LiquidationJSON{
		ID:                 l.ID,
		MemberID:           l.MemberID,
		CooperativeID:      l.CooperativeID,
		Type:               l.Type,
		LiquidationDate:    l.LiquidationDate,
		TotalSavings:       l.TotalSavings,
		TotalContributions: l.TotalContributions,
		TotalSurplus:       l.TotalSurplus,
		TotalAmount:        l.TotalAmount,
		MemberContinues:    l.MemberContinues,
		Notes:              l.Notes,
		ProcessedBy:        l.ProcessedBy,
		CreatedAt:          l.CreatedAt,
	}
}
