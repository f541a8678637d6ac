package controllers

import (
	"errors"
	"io/ioutil"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/coopfin/coopfin/config"
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

func newLiquidationApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	config.NewLoggerService()

	gdb, mock := newTestDB(t)
	config.DataBase = gdb

	app := fiber.New()
	app.Get("/api/v2/coop/liquidations", GetLiquidationHistory)
	app.Get("/api/v2/coop/liquidations/:id", GetLiquidationByID)

	return app, mock
}

func TestGetLiquidationByIDStorageError(t *testing.T) {
	app, mock := newLiquidationApp(t)

	mock.ExpectQuery(`SELECT \* FROM "liquidations"`).
		WillReturnError(errors.New("connection refused"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v2/coop/liquidations/9", nil))

	assert.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	body, _ := ioutil.ReadAll(resp.Body)
	assert.Contains(t, string(body), "server.internal_error")
}

func TestGetLiquidationByIDNotFound(t *testing.T) {
	app, mock := newLiquidationApp(t)

	mock.ExpectQuery(`SELECT \* FROM "liquidations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v2/coop/liquidations/9", nil))

	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	body, _ := ioutil.ReadAll(resp.Body)
	assert.Contains(t, string(body), "record.not_found")
}

func TestGetLiquidationHistoryStorageError(t *testing.T) {
	app, mock := newLiquidationApp(t)

	mock.ExpectQuery(`SELECT \* FROM "liquidations"`).
		WillReturnError(errors.New("connection refused"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v2/coop/liquidations", nil))

	assert.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	body, _ := ioutil.ReadAll(resp.Body)
	assert.Contains(t, string(body), "server.internal_error")
}
