package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shopper-api/internal/middleware"
	"shopper-api/internal/models"
	"shopper-api/internal/mykafka"
)

type CartHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]interface{}, userID uint) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(userID), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *CartHandler) loadUser(c echo.Context) (*models.User, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "use valid token")
	}
	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
	}

	cart := user.CartData.Data()
	if cart == nil {
		cart = models.Cart{}
	}
	cart[req.ItemID]++

	user.CartData = datatypes.NewJSONType(cart)
	if err := h.DB.Save(user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	h.publish(c, map[string]interface{}{
		"type":   "cart_item_added",
		"userID": user.ID,
		"itemID": req.ItemID,
	}, user.ID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "cartData": cart})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
	}

	cart := user.CartData.Data()
	if cart[req.ItemID] == 0 {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "Item not found in cart"})
	}

	cart[req.ItemID]--
	if cart[req.ItemID] <= 0 {
		delete(cart, req.ItemID)
	}

	user.CartData = datatypes.NewJSONType(cart)
	if err := h.DB.Save(user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	h.publish(c, map[string]interface{}{
		"type":   "cart_item_removed",
		"userID": user.ID,
		"itemID": req.ItemID,
	}, user.ID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Item removed from cart"})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	user.CartData = datatypes.NewJSONType(models.Cart{})
	if err := h.DB.Save(user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error"})
	}

	h.publish(c, map[string]interface{}{
		"type":   "cart_cleared",
		"userID": user.ID,
	}, user.ID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Cart cleared successfully"})
}

func (h *CartHandler) GetCart(c echo.Context) error {
	user, err := h.loadUser(c)
	if err != nil {
		return err
	}

	cart := user.CartData.Data()
	if cart == nil {
		cart = models.Cart{}
	}
	return c.JSON(http.StatusOK, echo.Map{"cartData": cart})
}
