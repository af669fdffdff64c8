package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"restopos/internal/entity"
	"restopos/internal/service"
)

type MenuHandler struct {
	menuRepo service.MenuRepository
}

func NewMenuHandler(menuRepo service.MenuRepository) *MenuHandler {
	return &MenuHandler{menuRepo: menuRepo}
}

// ListMenu returns every menu item --> GET /menu
func (h *MenuHandler) ListMenu(c echo.Context) error {
	items, err := h.menuRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, items)
}

// UpsertMenuItem creates or replaces a menu item --> POST /menu
func (h *MenuHandler) UpsertMenuItem(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return c.JSON(403, map[string]string{"error": err.Error()})
	}

	item := entity.MenuItem{}
	if err := c.Bind(&item); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if item.Name == "" || item.Price < 0 {
		return c.JSON(400, map[string]string{"error": "Menu item needs a name and a non-negative price"})
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = time.Now()

	if err := h.menuRepo.Upsert(c.Request().Context(), &item); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, item)
}
