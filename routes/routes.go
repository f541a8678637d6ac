package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopfin/coopfin/controllers"
	"github.com/coopfin/coopfin/routes/middlewares"
)

func SetupRouter() *fiber.App {
	app := fiber.New()

	app.Get("/api/v2/public/timestamp", controllers.GetTimestamp)

	coop := app.Group("/api/v2/coop", middlewares.Authenticate)

	coop.Get("/liquidations/pending", controllers.GetPendingLiquidations)
	coop.Get("/liquidations/preview/:member_id", controllers.GetLiquidationPreview)
	coop.Get("/liquidations/:id", controllers.GetLiquidationByID)
	coop.Get("/liquidations", controllers.GetLiquidationHistory)

	coop.Post("/liquidations", middlewares.AdminVaildator, controllers.ExecuteLiquidation)

	return app
}
