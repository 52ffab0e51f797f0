package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopper-api/internal/es"
	"shopper-api/internal/models"
	"shopper-api/internal/mykafka"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

func (h *ProductHandler) publish(c echo.Context, event map[string]interface{}, key string) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *ProductHandler) AddProduct(c echo.Context) error {
	var req struct {
		Name     string  `json:"name"`
		Image    string  `json:"image"`
		Category string  `json:"category"`
		NewPrice float64 `json:"new_price"`
		OldPrice float64 `json:"old_price"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}

	// Next id is last id + 1 in insertion order, 1 for an empty catalog.
	// Two concurrent calls can pick the same id; the store does not guard
	// against that.
	var products []models.Product
	if err := h.DB.Find(&products).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
	}
	id := 1
	if len(products) > 0 {
		id = products[len(products)-1].ID + 1
	}

	product := models.Product{
		ID:       id,
		Name:     req.Name,
		Image:    req.Image,
		Category: req.Category,
		NewPrice: req.NewPrice,
		OldPrice: req.OldPrice,
		Date:     time.Now(),
		InStock:  true,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
	}

	if h.ES != nil {
		if err := es.IndexProduct(c.Request().Context(), h.ES, &product); err != nil {
			c.Logger().Errorf("ES index error: %v", err)
		}
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	}, fmt.Sprint(product.ID))

	return c.JSON(http.StatusOK, echo.Map{"success": true, "name": req.Name})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	var req struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}

	// Deleting an unknown id still succeeds.
	if err := h.DB.Where("id = ?", req.ID).Delete(&models.Product{}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
	}

	if h.ES != nil {
		if err := es.DeleteProduct(c.Request().Context(), h.ES, req.ID); err != nil {
			c.Logger().Errorf("ES delete error: %v", err)
		}
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_deleted",
		"productID": req.ID,
	}, fmt.Sprint(req.ID))

	return c.JSON(http.StatusOK, echo.Map{"success": true, "name": req.Name})
}

func (h *ProductHandler) AllProducts(c echo.Context) error {
	var products []models.Product
	if err := h.DB.Find(&products).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Server error"})
	}
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(http.StatusOK, products)
}
