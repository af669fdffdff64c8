package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"restopos/internal/entity"
	"restopos/internal/service"
)

// OrderHandler is thin dispatch over OrderService: bind, call, map the error.
type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreatePOSOrder commits an in-store order --> POST /orders/pos
func (h *OrderHandler) CreatePOSOrder(c echo.Context) error {
	return h.createOrder(c, entity.ChannelPOS)
}

// CreateMobileOrder commits a mobile-app order --> POST /orders/mobile
func (h *OrderHandler) CreateMobileOrder(c echo.Context) error {
	return h.createOrder(c, entity.ChannelMobile)
}

func (h *OrderHandler) createOrder(c echo.Context, channel entity.Channel) error {
	cart := entity.Cart{}
	if err := c.Bind(&cart); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	order, err := h.orderService.Commit(c.Request().Context(), &cart, channel)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(200, order)
}

// ValidateCart checks availability without committing --> POST /orders/validate
func (h *OrderHandler) ValidateCart(c echo.Context) error {
	cart := entity.Cart{}
	if err := c.Bind(&cart); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.orderService.Validate(c.Request().Context(), &cart); err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]string{"message": "Cart is orderable"})
}

// GetOrder fetches one order --> GET /orders/:channel/:id
func (h *OrderHandler) GetOrder(c echo.Context) error {
	channel, err := channelParam(c)
	if err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), channel, c.Param("id"))
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(200, order)
}

// UpdateOrderStatus moves an order through its lifecycle --> PUT /orders/:channel/:id/status
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	channel, err := channelParam(c)
	if err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}

	body := struct {
		Status entity.OrderStatus `json:"status"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	order, err := h.orderService.UpdateStatus(c.Request().Context(), channel, c.Param("id"), body.Status)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(200, order)
}

// CancelOrder cancels a pending order and restores stock --> POST /orders/:channel/:id/cancel
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	channel, err := channelParam(c)
	if err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}

	order, err := h.orderService.Cancel(c.Request().Context(), channel, c.Param("id"))
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(200, order)
}

func channelParam(c echo.Context) (entity.Channel, error) {
	switch c.Param("channel") {
	case "pos":
		return entity.ChannelPOS, nil
	case "mobile":
		return entity.ChannelMobile, nil
	default:
		return "", errors.New("channel must be pos or mobile")
	}
}

// statusFor maps domain errors to HTTP codes: user-facing rejections are 4xx,
// everything else is a 500.
func statusFor(err error) int {
	var insufficient *entity.InsufficientStockError
	var unknown *entity.UnknownIngredientError
	var validation *entity.ValidationError

	switch {
	case errors.As(err, &insufficient), errors.As(err, &unknown):
		return http.StatusConflict
	case errors.As(err, &validation),
		errors.Is(err, entity.ErrInvalidTransition),
		errors.Is(err, entity.ErrInvalidThreshold):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
