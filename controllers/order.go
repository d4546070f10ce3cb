// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"salonbase-backend/config"
	"salonbase-backend/models"
	"salonbase-backend/services"
	"salonbase-backend/utils"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	ProductID *uint `json:"productId"`
	PackID    *uint `json:"packId"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	CustomerID uint             `json:"customerId" binding:"required"`
	Items      []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateOrder prices each line against live data: products at their current
// price, packs through the pricing engine (custom price and discount applied)
func CreateOrder(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ? AND deleted_at IS NULL", input.CustomerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	total := 0
	for _, in := range input.Items {
		switch {
		case in.ProductID != nil && in.PackID == nil:
			var product models.Product
			if err := config.DB.Where("id = ? AND salon_id = ? AND is_active = ? AND deleted_at IS NULL",
				*in.ProductID, salonUUID, true).First(&product).Error; err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Product not found or inactive")
				return
			}
			items = append(items, models.OrderItem{
				ProductID:  in.ProductID,
				ItemName:   product.Name,
				Quantity:   in.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: product.Price * in.Quantity,
			})
			total += product.Price * in.Quantity

		case in.PackID != nil && in.ProductID == nil:
			var pack models.Pack
			if err := config.DB.Preload("PackProducts").
				Where("id = ? AND salon_id = ? AND is_active = ? AND deleted_at IS NULL",
					*in.PackID, salonUUID, true).First(&pack).Error; err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Pack not found or inactive")
				return
			}
			prices := packPrices(pack)
			if !services.PubliclyVisible(pack, prices) {
				utils.RespondWithError(c, http.StatusBadRequest, "Pack is not currently available")
				return
			}
			_, effective := services.CalculatePackPrices(pack, prices)
			items = append(items, models.OrderItem{
				PackID:     in.PackID,
				ItemName:   pack.Name,
				Quantity:   in.Quantity,
				UnitPrice:  effective,
				TotalPrice: effective * in.Quantity,
			})
			total += effective * in.Quantity

		default:
			utils.RespondWithError(c, http.StatusBadRequest, "Each item must reference exactly one product or pack")
			return
		}
	}

	order := models.Order{
		SalonID:     salonUUID,
		CustomerID:  customer.ID,
		Status:      "pending",
		TotalAmount: total,
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return touchRoster(tx, salonUUID, customer.ID, "purchase", nil)
	}); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	order.Items = items
	c.JSON(http.StatusCreated, order)
}

// GetOrders lists the salon's orders with their items
func GetOrders(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Items").Where("salon_id = ?", salonUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// MarkOrderPaid transitions a pending order to paid and adds its total to
// the customer's roster spend
func MarkOrderPaid(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var order models.Order
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if order.Status != "pending" {
		utils.RespondWithError(c, http.StatusConflict, "Only pending orders can be marked paid")
		return
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", "paid").Error; err != nil {
			return err
		}
		return touchRoster(tx, salonUUID, order.CustomerID, "purchase", map[string]interface{}{
			"total_spent": gorm.Expr("total_spent + ?", order.TotalAmount),
		})
	}); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	order.Status = "paid"
	c.JSON(http.StatusOK, order)
}
