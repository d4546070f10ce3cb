// controllers/pack.go
package controllers

import (
	"errors"
	"net/http"
	"salonbase-backend/config"
	"salonbase-backend/models"
	"salonbase-backend/services"
	"salonbase-backend/utils"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PackProductInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// CreatePackInput requires at least 2 products
type CreatePackInput struct {
	Name               string             `json:"name" binding:"required"`
	Description        string             `json:"description"`
	CustomPrice        *int               `json:"customPrice" binding:"omitempty,min=0"`
	DiscountPercentage float64            `json:"discountPercentage" binding:"min=0,max=100"`
	Products           []PackProductInput `json:"products" binding:"required,min=2,dive"`
}

type UpdatePackInput struct {
	Name               *string            `json:"name"`
	Description        *string            `json:"description"`
	CustomPrice        *int               `json:"customPrice" binding:"omitempty,min=0"`
	DiscountPercentage *float64           `json:"discountPercentage" binding:"omitempty,min=0,max=100"`
	Products           []PackProductInput `json:"products" binding:"omitempty,min=2,dive"`
	IsActive           *bool              `json:"isActive"`
}

type PackProductResponse struct {
	ID           uint   `json:"id"`
	ProductID    uint   `json:"productId"`
	ProductName  string `json:"productName"`
	ProductPrice int    `json:"productPrice"`
	Quantity     int    `json:"quantity"`
	TotalPrice   int    `json:"totalPrice"`
}

type PackResponse struct {
	ID                 uint                  `json:"id"`
	SalonID            uuid.UUID             `json:"salonId"`
	Name               string                `json:"name"`
	Description        string                `json:"description"`
	CustomPrice        *int                  `json:"customPrice,omitempty"`
	DiscountPercentage float64               `json:"discountPercentage"`
	CalculatedPrice    int                   `json:"calculatedPrice"`
	EffectivePrice     int                   `json:"effectivePrice"`
	IsActive           bool                  `json:"isActive"`
	Products           []PackProductResponse `json:"products"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// validatePackProducts checks the requested lines against the salon's live
// products: no duplicates, and every product active, non-deleted and owned
// by the salon. The returned status distinguishes a bad request from a
// database failure.
func validatePackProducts(db *gorm.DB, salonID uuid.UUID, inputs []PackProductInput) (string, int, bool) {
	ids := make([]uint, 0, len(inputs))
	seen := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		if seen[in.ProductID] {
			return "Duplicate products not allowed in a pack", http.StatusBadRequest, false
		}
		seen[in.ProductID] = true
		ids = append(ids, in.ProductID)
	}

	var count int64
	if err := db.Model(&models.Product{}).
		Where("id IN ? AND salon_id = ? AND is_active = ? AND deleted_at IS NULL", ids, salonID, true).
		Count(&count).Error; err != nil {
		return "Database error", http.StatusInternalServerError, false
	}
	if count != int64(len(ids)) {
		return "One or more products not found or inactive", http.StatusBadRequest, false
	}
	return "", 0, true
}

// packPrices loads the live product rows a pack's lines point at
func packPrices(pack models.Pack) services.ProductPrices {
	ids := make([]uint, 0, len(pack.PackProducts))
	for _, pp := range pack.PackProducts {
		ids = append(ids, pp.ProductID)
	}

	prices := services.ProductPrices{}
	if len(ids) == 0 {
		return prices
	}
	var products []models.Product
	config.DB.Where("id IN ?", ids).Find(&products)
	for _, p := range products {
		prices[p.ID] = p
	}
	return prices
}

func buildPackResponse(pack models.Pack, prices services.ProductPrices) PackResponse {
	calculated, effective := services.CalculatePackPrices(pack, prices)

	lines := make([]PackProductResponse, 0, len(pack.PackProducts))
	for _, pp := range pack.PackProducts {
		product, ok := prices[pp.ProductID]
		if !ok {
			// Deleted products are skipped from display; the prices above
			// already excluded them.
			continue
		}
		lines = append(lines, PackProductResponse{
			ID:           pp.ID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			Quantity:     pp.Quantity,
			TotalPrice:   product.Price * pp.Quantity,
		})
	}

	return PackResponse{
		ID:                 pack.ID,
		SalonID:            pack.SalonID,
		Name:               pack.Name,
		Description:        pack.Description,
		CustomPrice:        pack.CustomPrice,
		DiscountPercentage: pack.DiscountPercentage,
		CalculatedPrice:    calculated,
		EffectivePrice:     effective,
		IsActive:           pack.IsActive,
		Products:           lines,
		CreatedAt:          pack.CreatedAt,
		UpdatedAt:          pack.UpdatedAt,
	}
}

// CreatePack creates a new product pack (requires at least 2 products)
func CreatePack(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input CreatePackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if msg, status, ok := validatePackProducts(config.DB, salonUUID, input.Products); !ok {
		utils.RespondWithError(c, status, msg)
		return
	}

	pack := models.Pack{
		SalonID:            salonUUID,
		Name:               input.Name,
		Description:        input.Description,
		CustomPrice:        input.CustomPrice,
		DiscountPercentage: input.DiscountPercentage,
		IsActive:           true,
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pack).Error; err != nil {
			return err
		}
		for _, in := range input.Products {
			pp := models.PackProduct{PackID: pack.ID, ProductID: in.ProductID, Quantity: in.Quantity}
			if err := tx.Create(&pp).Error; err != nil {
				return err
			}
			pack.PackProducts = append(pack.PackProducts, pp)
		}
		return nil
	}); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pack")
		return
	}

	c.JSON(http.StatusCreated, buildPackResponse(pack, packPrices(pack)))
}

// GetPacks lists the salon's packs with effective prices and line counts
func GetPacks(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var packs []models.Pack
	if err := config.DB.Preload("PackProducts").
		Where("salon_id = ? AND deleted_at IS NULL", salonUUID).
		Order("created_at DESC").Find(&packs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve packs")
		return
	}

	result := make([]gin.H, 0, len(packs))
	for _, pack := range packs {
		_, effective := services.CalculatePackPrices(pack, packPrices(pack))
		result = append(result, gin.H{
			"id":                 pack.ID,
			"salonId":            pack.SalonID,
			"name":               pack.Name,
			"description":        pack.Description,
			"effectivePrice":     effective,
			"discountPercentage": pack.DiscountPercentage,
			"productCount":       len(pack.PackProducts),
			"isActive":           pack.IsActive,
			"createdAt":          pack.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, result)
}

// GetPack retrieves a specific pack by ID
func GetPack(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	packID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pack ID format")
		return
	}

	var pack models.Pack
	if err := config.DB.Preload("PackProducts").
		Where("salon_id = ? AND id = ? AND deleted_at IS NULL", salonUUID, packID).
		First(&pack).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pack not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, buildPackResponse(pack, packPrices(pack)))
}

// UpdatePack patches scalar fields and, when products are supplied, replaces
// the entire product set
func UpdatePack(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	packID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pack ID format")
		return
	}

	var input UpdatePackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pack models.Pack
	if err := config.DB.Preload("PackProducts").
		Where("salon_id = ? AND id = ? AND deleted_at IS NULL", salonUUID, packID).
		First(&pack).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pack not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		pack.Name = *input.Name
	}
	if input.Description != nil {
		pack.Description = *input.Description
	}
	if input.CustomPrice != nil {
		pack.CustomPrice = input.CustomPrice
	}
	if input.DiscountPercentage != nil {
		pack.DiscountPercentage = *input.DiscountPercentage
	}
	if input.IsActive != nil {
		pack.IsActive = *input.IsActive
	}

	if input.Products != nil {
		if msg, status, ok := validatePackProducts(config.DB, salonUUID, input.Products); !ok {
			utils.RespondWithError(c, status, msg)
			return
		}
	}

	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&pack).Error; err != nil {
			return err
		}
		if input.Products == nil {
			return nil
		}
		// Replace the whole product set: delete then reinsert
		if err := tx.Where("pack_id = ?", pack.ID).Delete(&models.PackProduct{}).Error; err != nil {
			return err
		}
		pack.PackProducts = nil
		for _, in := range input.Products {
			pp := models.PackProduct{PackID: pack.ID, ProductID: in.ProductID, Quantity: in.Quantity}
			if err := tx.Create(&pp).Error; err != nil {
				return err
			}
			pack.PackProducts = append(pack.PackProducts, pp)
		}
		return nil
	}); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update pack")
		return
	}

	c.JSON(http.StatusOK, buildPackResponse(pack, packPrices(pack)))
}

// DeletePack soft deletes a pack; it stays out of every listing but is never
// hard-removed
func DeletePack(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	packID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pack ID format")
		return
	}

	var pack models.Pack
	if err := config.DB.Where("salon_id = ? AND id = ? AND deleted_at IS NULL", salonUUID, packID).
		First(&pack).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pack not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	pack.SoftDelete(time.Now())
	if err := config.DB.Save(&pack).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete pack")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPublicPacks is the unauthenticated salon-scoped listing. Packs whose
// product set degraded below 2 live products are excluded, not deleted.
func GetPublicPacks(c *gin.Context) {
	var salon models.Salon
	if err := config.DB.Where("slug = ? AND is_active = ? AND deleted_at IS NULL", c.Param("slug"), true).
		First(&salon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var packs []models.Pack
	if err := config.DB.Preload("PackProducts").
		Where("salon_id = ? AND is_active = ? AND deleted_at IS NULL", salon.ID, true).
		Find(&packs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve packs")
		return
	}

	result := make([]PackResponse, 0, len(packs))
	for _, pack := range packs {
		prices := packPrices(pack)
		if !services.PubliclyVisible(pack, prices) {
			continue
		}
		result = append(result, buildPackResponse(pack, prices))
	}

	c.JSON(http.StatusOK, result)
}
