package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"shopper-api/internal/models"
	"shopper-api/internal/mykafka"
	"shopper-api/internal/token"
)

type AuthHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, event map[string]interface{}, key string) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}

	var existing models.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Email already exists with different account",
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
	}

	user := models.User{
		Name:     req.Username,
		Email:    req.Email,
		Password: req.Password,
		CartData: datatypes.NewJSONType(models.NewCart()),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
	}

	signed, err := token.Sign(user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
	}

	h.publish(c, map[string]interface{}{
		"type":   "user_signed_up",
		"userID": user.ID,
		"email":  user.Email,
	}, fmt.Sprint(user.ID))

	return c.JSON(http.StatusOK, echo.Map{"success": true, "token": signed})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		CartData models.Cart `json:"cartData"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "errors": err.Error()})
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"success": false, "errors": "Email Id doesn't exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "errors": "Server error"})
	}

	// Plaintext comparison, matching the stored representation.
	if req.Password != user.Password {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "errors": "Password is incorrect"})
	}

	// A guest cart sent at login shallow-merges over the stored one: the
	// caller's keys win, everything else is preserved.
	if req.CartData != nil {
		cart := user.CartData.Data()
		if cart == nil {
			cart = models.Cart{}
		}
		for id, qty := range req.CartData {
			cart[id] = qty
		}
		user.CartData = datatypes.NewJSONType(cart)
		if err := h.DB.Save(&user).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "errors": "Server error"})
		}
	}

	signed, err := token.Sign(user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "errors": "Server error"})
	}

	h.publish(c, map[string]interface{}{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	}, fmt.Sprint(user.ID))

	return c.JSON(http.StatusOK, echo.Map{"success": true, "token": signed})
}
