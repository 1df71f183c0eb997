package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// GetSurveys lists surveys.
func GetSurveys(c *gin.Context) {
	var surveys []models.Survey
	if err := database.DB.Preload("Creator").Order("created_at DESC").Find(&surveys).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve surveys")
		return
	}
	utils.OK(c, surveys)
}

// GetSurvey returns a single survey.
func GetSurvey(c *gin.Context) {
	var survey models.Survey
	if err := database.DB.Preload("Creator").First(&survey, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Survey not found")
		return
	}
	utils.OK(c, survey)
}

// CreateSurvey creates a survey (leader/admin).
func CreateSurvey(c *gin.Context) {
	var input struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		OpensAt     *time.Time `json:"opens_at"`
		ClosesAt    *time.Time `json:"closes_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if input.OpensAt != nil && input.ClosesAt != nil && !input.OpensAt.Before(*input.ClosesAt) {
		utils.Fail(c, http.StatusBadRequest, "opens_at must be before closes_at")
		return
	}

	survey := models.Survey{
		Title:       input.Title,
		Description: input.Description,
		OpensAt:     input.OpensAt,
		ClosesAt:    input.ClosesAt,
		CreatorID:   c.GetUint("user_id"),
	}
	if err := database.DB.Create(&survey).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to create survey")
		return
	}
	utils.OK(c, survey)
}

// DeleteSurvey removes a survey (leader/admin).
func DeleteSurvey(c *gin.Context) {
	if err := database.DB.Delete(&models.Survey{}, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to delete survey")
		return
	}
	utils.OKMessage(c, "Survey deleted")
}
