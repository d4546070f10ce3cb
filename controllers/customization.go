// controllers/customization.go
package controllers

import (
	"net/http"
	"salonbase-backend/config"
	"salonbase-backend/models"
	"salonbase-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetLayoutPatterns lists the static layout catalog
func GetLayoutPatterns(c *gin.Context) {
	c.JSON(http.StatusOK, config.LayoutPatterns)
}

// GetThemePalettes lists the static theme catalog
func GetThemePalettes(c *gin.Context) {
	c.JSON(http.StatusOK, config.ThemePalettes)
}

type UpdateCustomizationInput struct {
	LayoutPattern *string `json:"layoutPattern"`
	ThemePalette  *string `json:"themePalette"`
}

// UpdateCustomization sets the salon's layout and theme, validated against
// the static catalogs
func UpdateCustomization(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input UpdateCustomizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if input.LayoutPattern != nil {
		if !config.ValidLayoutPattern(*input.LayoutPattern) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown layout pattern")
			return
		}
		updates["layout_pattern"] = *input.LayoutPattern
	}
	if input.ThemePalette != nil {
		if !config.ValidThemePalette(*input.ThemePalette) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown theme palette")
			return
		}
		updates["theme_palette"] = *input.ThemePalette
	}
	if len(updates) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := config.DB.Model(&models.Salon{}).Where("id = ?", salonUUID).
		Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customization")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customization updated"})
}
