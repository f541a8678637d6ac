package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFiscalYearForCalendarYear(t *testing.T) {
	date := time.Date(2026, time.August, 25, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2026, FiscalYearFor(date, time.January))
}

func TestFiscalYearForShiftedStart(t *testing.T) {
	// July start: FY labelled by the year it ends in.
	before := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	after := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2026, FiscalYearFor(before, time.July))
	assert.Equal(t, 2027, FiscalYearFor(after, time.July))
}

func TestValidLiquidationType(t *testing.T) {
	assert.True(t, ValidLiquidationType(LiquidationTypePeriodic))
	assert.True(t, ValidLiquidationType(LiquidationTypeExit))
	assert.False(t, ValidLiquidationType("partial"))
	assert.False(t, ValidLiquidationType(""))
}
