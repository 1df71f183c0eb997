package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// GetSuggestions lists suggestions. Members only see their own;
// leaders and admins see all.
func GetSuggestions(c *gin.Context) {
	query := database.DB.Preload("Author")
	if !models.UserRole(c.GetString("role")).Elevated() {
		query = query.Where("author_id = ?", c.GetUint("user_id"))
	}
	if v := c.Query("status"); v != "" {
		query = query.Where("status = ?", v)
	}

	var suggestions []models.Suggestion
	if err := query.Order("created_at DESC").Find(&suggestions).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve suggestions")
		return
	}
	utils.OK(c, suggestions)
}

// CreateSuggestion submits a suggestion from the caller.
func CreateSuggestion(c *gin.Context) {
	var input struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	suggestion := models.Suggestion{
		AuthorID: c.GetUint("user_id"),
		Title:    input.Title,
		Content:  input.Content,
		Status:   models.SuggestionPending,
	}
	if err := database.DB.Create(&suggestion).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to create suggestion")
		return
	}
	utils.OK(c, suggestion)
}

// RespondToSuggestion records a response and status (leader/admin).
func RespondToSuggestion(c *gin.Context) {
	var suggestion models.Suggestion
	if err := database.DB.First(&suggestion, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Suggestion not found")
		return
	}

	var input struct {
		Response string `json:"response" binding:"required"`
		Status   string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	status := models.SuggestionReviewed
	if input.Status != "" {
		status = models.SuggestionStatus(input.Status)
		if status != models.SuggestionReviewed && status != models.SuggestionResolved {
			utils.Fail(c, http.StatusBadRequest, "Invalid status")
			return
		}
	}

	suggestion.Response = input.Response
	suggestion.Status = status
	if err := database.DB.Save(&suggestion).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to update suggestion")
		return
	}
	utils.OK(c, suggestion)
}
