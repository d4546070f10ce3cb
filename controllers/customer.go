// controllers/customer.go
package controllers

import (
	"errors"
	"net/http"
	"salonbase-backend/config"
	"salonbase-backend/models"
	"salonbase-backend/utils"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachCustomerInput adds a customer to the salon's roster, creating the
// platform-wide customer row when the phone number is new.
type AttachCustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

type UpdateRosterInput struct {
	Notes         *string `json:"notes"`
	LoyaltyPoints *int    `json:"loyaltyPoints"`
	IsFavorite    *bool   `json:"isFavorite"`
}

// touchRoster makes sure a salon_customers row exists for the pair and bumps
// its interaction timestamps. Extra counter updates are applied on top.
func touchRoster(tx *gorm.DB, salonID uuid.UUID, customerID uint, source string, updates map[string]interface{}) error {
	now := time.Now()
	roster := models.SalonCustomer{
		SalonID:            salonID,
		CustomerID:         customerID,
		Source:             source,
		FirstInteractionAt: &now,
		LastInteractionAt:  &now,
	}
	if err := tx.Where("salon_id = ? AND customer_id = ?", salonID, customerID).
		FirstOrCreate(&roster).Error; err != nil {
		return err
	}

	merged := map[string]interface{}{"last_interaction_at": now}
	for k, v := range updates {
		merged[k] = v
	}
	return tx.Model(&models.SalonCustomer{}).Where("id = ?", roster.ID).Updates(merged).Error
}

// AttachCustomer creates or finds a platform customer by phone and links
// them to the salon
func AttachCustomer(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input AttachCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var customer models.Customer
	err := config.DB.Where("phone = ?", input.Phone).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			Name:     input.Name,
			Phone:    input.Phone,
			Email:    input.Email,
			IsActive: true,
		}
		if err := config.DB.Create(&customer).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
			return
		}
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var already int64
	config.DB.Model(&models.SalonCustomer{}).
		Where("salon_id = ? AND customer_id = ?", salonUUID, customer.ID).Count(&already)
	if already > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Customer already linked to this salon")
		return
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		return touchRoster(tx, salonUUID, customer.ID, "manual", map[string]interface{}{"notes": input.Notes})
	}); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to link customer")
		return
	}

	var roster models.SalonCustomer
	config.DB.Preload("Customer").
		Where("salon_id = ? AND customer_id = ?", salonUUID, customer.ID).First(&roster)

	c.JSON(http.StatusCreated, roster)
}

// GetSalonCustomers lists the salon's roster with derived counters
func GetSalonCustomers(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var roster []models.SalonCustomer
	if err := config.DB.Preload("Customer").
		Where("salon_id = ?", salonUUID).
		Order("last_interaction_at DESC NULLS LAST").
		Find(&roster).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, roster)
}

// GetSalonCustomer retrieves one roster entry by customer ID
func GetSalonCustomer(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var roster models.SalonCustomer
	if err := config.DB.Preload("Customer").
		Where("salon_id = ? AND customer_id = ?", salonUUID, customerID).
		First(&roster).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, roster)
}

// UpdateSalonCustomer patches the salon-scoped fields of a roster entry
func UpdateSalonCustomer(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateRosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var roster models.SalonCustomer
	if err := config.DB.Where("salon_id = ? AND customer_id = ?", salonUUID, customerID).
		First(&roster).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Notes != nil {
		roster.Notes = *input.Notes
	}
	if input.LoyaltyPoints != nil {
		roster.LoyaltyPoints = *input.LoyaltyPoints
	}
	if input.IsFavorite != nil {
		roster.IsFavorite = *input.IsFavorite
	}

	if err := config.DB.Save(&roster).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, roster)
}
