package models

import "time"

type Receipt struct {
	ID            uint64    `json:"id" gorm:"primaryKey"`
	LiquidationID uint64    `json:"liquidation_id"`
	ReceiptNumber string    `json:"receipt_number" gorm:"uniqueIndex"`
	IssuedAt      time.Time `json:"issued_at"`
	Status        string    `json:"status" gorm:"default:issued"`
	CreatedAt     time.Time `json:"created_at"`
}
