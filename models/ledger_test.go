package models

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/types"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return gdb, mock
}

func TestLedgerWriteReturnsNewEntryID(t *testing.T) {
	gdb, mock := newTestDB(t)

	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(77)))

	id, err := LedgerWrite(
		gdb,
		11,
		types.TransactionTypeLiquidation,
		decimal.NewFromInt(1000),
		time.Now(),
		2026,
		"periodic liquidation for Maria Lopez",
		42,
	)

	assert.NoError(t, err)
	assert.Equal(t, uint64(77), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountZeroOut(t *testing.T) {
	gdb, mock := newTestDB(t)
	config.DataBase = gdb

	account := &Account{
		ID:       11,
		MemberID: 7,
		Type:     types.AccountTypeSavings,
		Balance:  decimal.NewFromInt(1000),
	}

	// save hook looks the member up for the balance event
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uid"}).AddRow(int64(7), "UID7"))
	mock.ExpectExec(`UPDATE "accounts" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, account.ZeroOut(gdb))
	assert.True(t, account.Balance.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
