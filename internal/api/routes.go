package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(app *fiber.App, h *LinkHandler) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Link flow
	app.Get("/", h.IndexHandler)
	app.Post("/create_link_token", h.CreateLinkTokenHandler)
	app.Post("/exchange_token", h.ExchangeTokenHandler)
}
