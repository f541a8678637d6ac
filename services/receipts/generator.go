package receipts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/models"
	"github.com/coopfin/coopfin/mq_client"
	"github.com/coopfin/coopfin/types"
)

// Generator produces the durable receipt for a committed liquidation.
// Callers invoke it after commit; failures are theirs to capture, never
// to roll back for.
type Generator interface {
	GenerateForLiquidation(liquidation_id uint64) (*models.Receipt, error)
}

type DocumentGenerator struct {
	db *gorm.DB
}

func NewDocumentGenerator(db *gorm.DB) *DocumentGenerator {
	return &DocumentGenerator{db: db}
}

func (g *DocumentGenerator) GenerateForLiquidation(liquidation_id uint64) (*models.Receipt, error) {
	var liquidation *models.Liquidation

	result := g.db.Where("id = ?", liquidation_id).First(&liquidation)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("liquidation %d not found", liquidation_id)
	} else if result.Error != nil {
		return nil, result.Error
	}

	fiscal_year := types.FiscalYearFor(liquidation.LiquidationDate, config.App.FiscalYearStartMonth)

	receipt := &models.Receipt{
		LiquidationID: liquidation.ID,
		ReceiptNumber: buildReceiptNumber(fiscal_year),
		IssuedAt:      time.Now(),
		Status:        "issued",
	}

	if err := g.db.Create(receipt).Error; err != nil {
		return nil, err
	}

	// PDF rendering happens out of process; the queue payload is the
	// render job's whole input.
	payload_message, _ := json.Marshal(map[string]interface{}{
		"receipt_id":     receipt.ID,
		"receipt_number": receipt.ReceiptNumber,
		"liquidation_id": liquidation.ID,
		"member_id":      liquidation.MemberID,
		"total_amount":   liquidation.TotalAmount,
	})
	mq_client.Enqueue("receipt_document", payload_message)

	return receipt, nil
}

func buildReceiptNumber(fiscal_year int) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])

	return fmt.Sprintf("REC-%d-%s", fiscal_year, fragment)
}
