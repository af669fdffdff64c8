package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"restopos/internal/entity"
	"restopos/internal/service"
)

type InventoryHandler struct {
	stockService *service.StockService
}

func NewInventoryHandler(stockService *service.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

// JwtCustomClaims carries the staff role for the admin-only routes.
type JwtCustomClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ListStock returns every stock item --> GET /inventory
func (h *InventoryHandler) ListStock(c echo.Context) error {
	items, err := h.stockService.ListItems(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, items)
}

// GetStockItem returns one stock item --> GET /inventory/:name
func (h *InventoryHandler) GetStockItem(c echo.Context) error {
	item, err := h.stockService.GetItem(c.Request().Context(), c.Param("name"))
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(200, item)
}

// UpsertStock applies a direct admin edit --> POST /inventory
func (h *InventoryHandler) UpsertStock(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return c.JSON(403, map[string]string{"error": err.Error()})
	}

	item := entity.StockItem{}
	if err := c.Bind(&item); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if item.Name == "" {
		return c.JSON(400, map[string]string{"error": "Stock item name is required"})
	}
	if item.Quantity < 0 {
		return c.JSON(400, map[string]string{"error": "Quantity must not be negative"})
	}

	updated, err := h.stockService.UpsertItem(c.Request().Context(), &item)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(200, updated)
}

// GetThreshold reads the live low-stock threshold --> GET /inventory/threshold
func (h *InventoryHandler) GetThreshold(c echo.Context) error {
	return c.JSON(200, map[string]int{"threshold": h.stockService.Threshold(c.Request().Context())})
}

// SetThreshold stores a new threshold and reclassifies all stock
// --> PUT /inventory/threshold
func (h *InventoryHandler) SetThreshold(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return c.JSON(403, map[string]string{"error": err.Error()})
	}

	body := struct {
		Threshold int `json:"threshold"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.stockService.SetThreshold(c.Request().Context(), body.Threshold); err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]int{"threshold": body.Threshold})
}

func requireAdmin(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return echo.ErrForbidden
	}
	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok || claims.Role != "admin" {
		return echo.ErrForbidden
	}
	return nil
}
