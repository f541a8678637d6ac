package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/controllers/helpers"
	"github.com/coopfin/coopfin/controllers/queries"
	"github.com/coopfin/coopfin/models"
	"github.com/coopfin/coopfin/services/liquidation"
	"github.com/coopfin/coopfin/services/receipts"
	"github.com/coopfin/coopfin/types"
)

var liquidation_engine *liquidation.Engine

func GetLiquidationEngine() *liquidation.Engine {
	if liquidation_engine == nil {
		liquidation_engine = liquidation.NewEngine(
			config.DataBase,
			receipts.NewDocumentGenerator(config.DataBase),
		)
	}

	return liquidation_engine
}

func renderOperationError(c *fiber.Ctx, err error) error {
	var op_err *liquidation.OperationError

	if errors.As(err, &op_err) {
		return c.Status(op_err.Status).JSON(helpers.Errors{
			Errors: []string{op_err.Code},
		})
	}

	return c.Status(500).JSON(helpers.Errors{
		Errors: []string{"server.internal_error"},
	})
}

func GetPendingLiquidations(c *fiber.Ctx) error {
	cooperative_id, err := strconv.ParseUint(c.Query("cooperative_id"), 10, 64)

	if err != nil || cooperative_id == 0 {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"coop.liquidation.missing_cooperative"},
		})
	}

	members, err := liquidation.PendingLiquidation(cooperative_id)

	if err != nil {
		config.Logger.Errorf("Failed to scan pending liquidations: %v", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	return c.Status(200).JSON(members)
}

func GetLiquidationPreview(c *fiber.Ctx) error {
	member_id, err := c.ParamsInt("member_id")
	if err != nil || member_id <= 0 {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"coop.liquidation.invalid_member_id"},
		})
	}

	preview, err := liquidation.GetPreview(uint64(member_id))
	if err != nil {
		return renderOperationError(c, err)
	}

	return c.Status(200).JSON(preview)
}

func ExecuteLiquidation(c *fiber.Ctx) error {
	CurrentUser := c.Locals("CurrentUser").(*models.Member)

	err_src := new(helpers.Errors)
	payload := new(helpers.ExecuteLiquidationParams)

	if err := c.BodyParser(payload); err != nil {
		c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})

		return err
	}

	helpers.Vaildate(payload, err_src)

	// member_continues is required even for periodic liquidations: the
	// flag states whether the member stays in the cooperative afterwards.
	if payload.MemberContinues == nil {
		err_src.Errors = append(err_src.Errors, "coop.liquidation.missing_member_continues")
	}

	if err_src.Size() > 0 {
		return c.Status(422).JSON(err_src)
	}

	results, err := GetLiquidationEngine().Execute(liquidation.ExecuteParams{
		MemberIDs:       payload.MemberIDs,
		Type:            payload.LiquidationType,
		MemberContinues: *payload.MemberContinues,
		Notes:           payload.Notes,
		ProcessedBy:     CurrentUser.ID,
		CooperativeID:   payload.CooperativeID,
	})

	if err != nil {
		return renderOperationError(c, err)
	}

	return c.Status(201).JSON(results)
}

func GetLiquidationByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"coop.liquidation.invalid_id"},
		})
	}

	var record *models.Liquidation

	result := config.DataBase.Where("id = ?", id).First(&record)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"record.not_found"},
		})
	} else if result.Error != nil {
		config.Logger.Errorf("Failed to fetch liquidation %d: %v", id, result.Error)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	return c.Status(200).JSON(record.ToJSON())
}

func GetLiquidationHistory(c *fiber.Ctx) error {
	var records []models.Liquidation
	records_json := make([]models.LiquidationJSON, 0)

	params := new(queries.LiquidationFilters)
	if err := c.QueryParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_query"},
		})
	}

	err_src := new(helpers.Errors)
	helpers.Vaildate(params, err_src)
	if err_src.Size() > 0 {
		return c.Status(422).JSON(err_src)
	}

	if len(params.OrderBy) == 0 {
		params.OrderBy = types.OrderByDesc
	}

	tx := config.DataBase.Order("liquidation_date " + params.OrderBy)

	if params.MemberID > 0 {
		tx = tx.Where("member_id = ?", params.MemberID)
	}

	if len(params.LiquidationType) > 0 {
		tx = tx.Where("type = ?", params.LiquidationType)
	}

	if params.TimeFrom > 0 {
		time_from := time.Unix(params.TimeFrom, 0)
		tx = tx.Where("liquidation_date >= ?", time_from)
	}

	if params.TimeTo > 0 {
		time_to := time.Unix(params.TimeTo, 0)
		tx = tx.Where("liquidation_date < ?", time_to)
	}

	if params.Limit == 0 {
		params.Limit = 100
	}

	if params.Page == 0 {
		params.Page = 1
	}

	tx = tx.Offset(params.Page*params.Limit - params.Limit).Limit(params.Limit)

	if err := tx.Find(&records).Error; err != nil {
		config.Logger.Errorf("Failed to fetch liquidation history: %v", err)
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	for _, record := range records {
		records_json = append(records_json, record.ToJSON())
	}

	return c.Status(200).JSON(records_json)
}
