package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// GetDocuments lists document metadata with optional category filter.
func GetDocuments(c *gin.Context) {
	query := database.DB.Preload("Uploader")
	if v := c.Query("category"); v != "" {
		query = query.Where("category = ?", v)
	}
	if v := c.Query("unit_id"); v != "" {
		query = query.Where("unit_id = ?", v)
	}

	var documents []models.Document
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve documents")
		return
	}
	utils.OK(c, documents)
}

// GetDocument returns a single document's metadata.
func GetDocument(c *gin.Context) {
	var document models.Document
	if err := database.DB.Preload("Uploader").First(&document, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Document not found")
		return
	}
	utils.OK(c, document)
}

// CreateDocument registers document metadata (leader/admin). The file
// itself is uploaded to external storage elsewhere.
func CreateDocument(c *gin.Context) {
	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
		FileURL     string `json:"file_url" binding:"required"`
		UnitID      *uint  `json:"unit_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	document := models.Document{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		FileURL:     input.FileURL,
		UploaderID:  c.GetUint("user_id"),
		UnitID:      input.UnitID,
	}
	if err := database.DB.Create(&document).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to create document")
		return
	}
	utils.OK(c, document)
}

// DeleteDocument removes document metadata (leader/admin).
func DeleteDocument(c *gin.Context) {
	if err := database.DB.Delete(&models.Document{}, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to delete document")
		return
	}
	utils.OKMessage(c, "Document deleted")
}
