package liquidation

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

func setupEngineTest(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	config.NewLoggerService()
	config.App = &config.AppConfig{
		LiquidationThresholdYears: 6,
		FiscalYearStartMonth:      time.January,
		PendingCacheTTLSeconds:    300,
	}

	gdb, mock := newTestDB(t)
	config.DataBase = gdb

	return gdb, mock
}

func memberRows(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "uid", "cooperative_id", "full_name", "affiliation_date", "last_liquidation_date", "is_active"}).
		AddRow(id, "UID7", int64(1), "Maria Lopez", time.Now().AddDate(-7, 0, 0), nil, true)
}

func emptyMemberRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "uid", "cooperative_id", "full_name", "affiliation_date", "last_liquidation_date", "is_active"})
}

func TestExecuteLiquidatesMemberBalances(t *testing.T) {
	gdb, mock := setupEngineTest(t)

	generator := &fakeGenerator{}
	engine := NewEngine(gdb, generator)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1 AND cooperative_id = \$2`).
		WillReturnRows(memberRows(7))
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE member_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "type", "balance"}).
			AddRow(int64(11), int64(7), "savings", "1000").
			AddRow(int64(12), int64(7), "contributions", "500"))

	// savings: ledger entry, balance event lookup, balance reset
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(501)))
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1`).WillReturnRows(memberRows(7))
	mock.ExpectExec(`UPDATE "accounts" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	// contributions
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(502)))
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1`).WillReturnRows(memberRows(7))
	mock.ExpectExec(`UPDATE "accounts" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(`UPDATE "members" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "liquidations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(31)))
	mock.ExpectCommit()

	results, err := engine.Execute(ExecuteParams{
		MemberIDs:       []uint64{7},
		Type:            types.LiquidationTypePeriodic,
		MemberContinues: true,
		ProcessedBy:     42,
		CooperativeID:   1,
	})

	assert.NoError(t, err)
	assert.Len(t, results, 1)

	result := results[0]

	assert.Equal(t, uint64(7), result.MemberID)
	assert.Equal(t, "Maria Lopez", result.MemberName)
	assert.Equal(t, uint64(31), result.LiquidationID)
	assert.True(t, result.TotalLiquidated.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, []uint64{501, 502}, result.Transactions)
	assert.True(t, result.ReceiptID.Valid)

	assert.Equal(t, []uint64{31}, generator.calls)

	// Exactly one ledger entry and one balance reset per funded account.
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A batch with one unknown member id commits nothing, not even the
// members already processed.
func TestExecuteRollsBackWholeBatchOnMissingMember(t *testing.T) {
	gdb, mock := setupEngineTest(t)

	generator := &fakeGenerator{}
	engine := NewEngine(gdb, generator)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1 AND cooperative_id = \$2`).
		WillReturnRows(memberRows(7))
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE member_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "type", "balance"}).
			AddRow(int64(11), int64(7), "savings", "1000"))
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(501)))
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1`).WillReturnRows(memberRows(7))
	mock.ExpectExec(`UPDATE "accounts" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "members" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "liquidations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(31)))

	// second member does not exist
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1 AND cooperative_id = \$2`).
		WillReturnRows(emptyMemberRows())
	mock.ExpectRollback()

	results, err := engine.Execute(ExecuteParams{
		MemberIDs:       []uint64{7, 8},
		Type:            types.LiquidationTypePeriodic,
		MemberContinues: true,
		ProcessedBy:     42,
		CooperativeID:   1,
	})

	assert.Nil(t, results)

	var op_err *OperationError
	assert.ErrorAs(t, err, &op_err)
	assert.Equal(t, 404, op_err.Status)
	assert.Equal(t, "coop.liquidation.member_not_found", op_err.Code)

	// No post-commit hooks ran for the rolled-back batch.
	assert.Empty(t, generator.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A member with nothing on any sub-account is skipped without writing a
// ledger entry or liquidation record, and without failing the batch.
func TestExecuteSkipsZeroBalanceMember(t *testing.T) {
	gdb, mock := setupEngineTest(t)

	generator := &fakeGenerator{}
	engine := NewEngine(gdb, generator)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "members" WHERE id = \$1 AND cooperative_id = \$2`).
		WillReturnRows(memberRows(7))
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE member_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "type", "balance"}))
	mock.ExpectCommit()

	results, err := engine.Execute(ExecuteParams{
		MemberIDs:       []uint64{7},
		Type:            types.LiquidationTypePeriodic,
		MemberContinues: true,
		ProcessedBy:     42,
		CooperativeID:   1,
	})

	assert.NoError(t, err)
	assert.Len(t, results, 0)
	assert.Empty(t, generator.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
