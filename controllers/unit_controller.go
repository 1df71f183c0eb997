package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// GetUnits lists all units.
func GetUnits(c *gin.Context) {
	var units []models.Unit
	if err := database.DB.Order("name ASC").Find(&units).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve units")
		return
	}
	utils.OK(c, units)
}

// GetUnit returns one unit with its direct children.
func GetUnit(c *gin.Context) {
	var unit models.Unit
	if err := database.DB.Preload("Children").First(&unit, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Unit not found")
		return
	}
	utils.OK(c, unit)
}

type unitInput struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
}

// CreateUnit creates a unit (admin only).
func CreateUnit(c *gin.Context) {
	var input unitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.ParentID != nil {
		var parent models.Unit
		if err := database.DB.First(&parent, *input.ParentID).Error; err != nil {
			utils.Fail(c, http.StatusBadRequest, "Parent unit not found")
			return
		}
	}

	unit := models.Unit{
		Name:        input.Name,
		Code:        input.Code,
		Description: input.Description,
		ParentID:    input.ParentID,
	}
	if err := database.DB.Create(&unit).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to create unit")
		return
	}
	utils.OK(c, unit)
}

// UpdateUnit updates a unit (admin only).
func UpdateUnit(c *gin.Context) {
	var unit models.Unit
	if err := database.DB.First(&unit, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Unit not found")
		return
	}

	var input unitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	unit.Name = input.Name
	unit.Code = input.Code
	unit.Description = input.Description
	unit.ParentID = input.ParentID

	if err := database.DB.Save(&unit).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to update unit")
		return
	}
	utils.OK(c, unit)
}

// DeleteUnit removes a unit (admin only).
func DeleteUnit(c *gin.Context) {
	if err := database.DB.Delete(&models.Unit{}, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to delete unit")
		return
	}
	utils.OKMessage(c, "Unit deleted")
}
