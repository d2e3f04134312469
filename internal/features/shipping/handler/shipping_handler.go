package handler

import (
	"carrier-gateway/internal/features/shipping/domain"
	"carrier-gateway/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
)

// ShippingHandler handles HTTP requests for carrier operations.
type ShippingHandler struct {
	shippingService *service.ShippingService
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(shippingService *service.ShippingService) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// RateRequest is the body of a rate shopping request.
type RateRequest struct {
	Origin      domain.Location       `json:"origin"`
	Destination domain.Location       `json:"destination"`
	Packages    []domain.Package      `json:"packages"`
	Options     domain.RequestOptions `json:"options"`
}

// VoidRequest is the body of a shipment void request.
type VoidRequest struct {
	IdentificationNumber string                `json:"identification_number"`
	TrackingNumbers      []string              `json:"tracking_numbers,omitempty"`
	Options              domain.RequestOptions `json:"options"`
}

// AddressValidationRequest is the body of an address validation request.
type AddressValidationRequest struct {
	Address domain.Location       `json:"address"`
	Options domain.RequestOptions `json:"options"`
}

// GetRates godoc
// @Summary Shop rates for a shipment
// @Description Returns one estimate per service the carrier offers for the given origin, destination and packages
// @Tags rates
// @Accept json
// @Produce json
// @Param request body RateRequest true "Rate request"
// @Success 200 {object} domain.RateResult
// @Failure 400 {object} ErrorResponse
// @Router /rates [post]
func (h *ShippingHandler) GetRates(c *fiber.Ctx) error {
	var req RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	if len(req.Packages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "at least one package is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	result, err := h.shippingService.GetRates(c.Context(), req.Origin, req.Destination, req.Packages, req.Options)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(result)
}

// GetTracking godoc
// @Summary Get tracking information for a shipment
// @Description Retrieves the tracking history and current status for a tracking number
// @Tags tracking
// @Produce json
// @Param number path string true "Tracking Number"
// @Success 200 {object} domain.TrackingResult
// @Failure 400 {object} ErrorResponse
// @Router /tracking/{number} [get]
func (h *ShippingHandler) GetTracking(c *fiber.Ctx) error {
	trackingNumber := c.Params("number")
	if trackingNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "tracking number is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	result, err := h.shippingService.GetTrackingInfo(trackingNumber)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(result)
}

// CreateShipment godoc
// @Summary Create a shipment
// @Description Confirms the shipment with the carrier and accepts it, returning labels per package
// @Tags shipments
// @Accept json
// @Produce json
// @Param request body domain.ShipmentRequest true "Shipment request"
// @Success 200 {object} domain.ShipmentOutcome
// @Failure 400 {object} ErrorResponse
// @Router /shipments [post]
func (h *ShippingHandler) CreateShipment(c *fiber.Ctx) error {
	var req domain.ShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	if len(req.Packages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "at least one package is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	outcome, err := h.shippingService.CreateShipment(req)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(outcome)
}

// VoidShipment godoc
// @Summary Void a shipment
// @Description Cancels a shipment, or individual packages of it when tracking numbers are supplied
// @Tags shipments
// @Accept json
// @Produce json
// @Param request body VoidRequest true "Void request"
// @Success 200 {object} domain.VoidResult
// @Failure 400 {object} ErrorResponse
// @Router /shipments/void [post]
func (h *ShippingHandler) VoidShipment(c *fiber.Ctx) error {
	var req VoidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	if req.IdentificationNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "identification_number is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	result, err := h.shippingService.VoidShipment(req.IdentificationNumber, req.TrackingNumbers, req.Options)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(result)
}

// ValidateAddress godoc
// @Summary Validate an address
// @Description Returns candidate corrections for an address
// @Tags addresses
// @Accept json
// @Produce json
// @Param request body AddressValidationRequest true "Address validation request"
// @Success 200 {object} domain.AddressValidationResult
// @Failure 400 {object} ErrorResponse
// @Router /addresses/validate [post]
func (h *ShippingHandler) ValidateAddress(c *fiber.Ctx) error {
	var req AddressValidationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	result, err := h.shippingService.ValidateAddress(req.Address, req.Options)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(result)
}

// RegisterRoutes attaches the shipping routes to the Fiber application.
func (h *ShippingHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/rates", h.GetRates)
	app.Get("/tracking/:number", h.GetTracking)
	app.Post("/shipments", h.CreateShipment)
	app.Post("/shipments/void", h.VoidShipment)
	app.Post("/addresses/validate", h.ValidateAddress)
}
