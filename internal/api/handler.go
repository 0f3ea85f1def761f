package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tf-anguskong/homelab-monitor/internal/metrics"
)

// LinkService defines the link-flow operations needed by the handlers.
type LinkService interface {
	CreateLinkToken(ctx context.Context) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken, institutionName string) (string, error)
}

// LinkHandler handles HTTP requests for the Plaid Link setup server.
type LinkHandler struct {
	logger  *zap.Logger
	service LinkService
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(logger *zap.Logger, service LinkService) *LinkHandler {
	return &LinkHandler{
		logger:  logger,
		service: service,
	}
}

// IndexHandler serves the Link page with the "Link Account" button.
func (h *LinkHandler) IndexHandler(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(linkPageHTML)
}

// CreateLinkTokenHandler requests a Link token from Plaid for the browser
// widget. Vendor failures surface as 500 with an error field; the operator
// retries from the browser.
func (h *LinkHandler) CreateLinkTokenHandler(c *fiber.Ctx) error {
	token, err := h.service.CreateLinkToken(c.Context())
	if err != nil {
		h.logger.Error("api.create_link_token.failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	metrics.IncLinkTokenCreated()
	return c.JSON(LinkTokenResponse{LinkToken: token})
}

// ExchangeTokenHandler exchanges the widget's public token for a long-lived
// access token. The token is printed to the console by the service; the
// browser only learns success or failure.
func (h *LinkHandler) ExchangeTokenHandler(c *fiber.Ctx) error {
	var req ExchangeTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	_, err := h.service.ExchangePublicToken(c.Context(), req.PublicToken, req.Institution.Name)
	if err != nil {
		h.logger.Error("api.exchange_token.failed",
			zap.String("institution", req.Institution.Name),
			zap.Error(err))
		metrics.IncTokenExchange("error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	metrics.IncTokenExchange("ok")
	return c.JSON(ExchangeResponse{Success: true})
}
