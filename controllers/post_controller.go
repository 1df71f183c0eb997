package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// GetPosts lists posts, pinned first, newest first.
func GetPosts(c *gin.Context) {
	query := database.DB.Preload("Author")
	if v := c.Query("unit_id"); v != "" {
		query = query.Where("unit_id = ?", v)
	}

	var posts []models.Post
	if err := query.Order("pinned DESC, created_at DESC").Find(&posts).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve posts")
		return
	}
	utils.OK(c, posts)
}

// GetPost returns a single post.
func GetPost(c *gin.Context) {
	var post models.Post
	if err := database.DB.Preload("Author").First(&post, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Post not found")
		return
	}
	utils.OK(c, post)
}

type postInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	UnitID  *uint  `json:"unit_id"`
	Pinned  bool   `json:"pinned"`
}

// CreatePost creates a post (leader/admin).
func CreatePost(c *gin.Context) {
	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	post := models.Post{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: c.GetUint("user_id"),
		UnitID:   input.UnitID,
		Pinned:   input.Pinned,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to create post")
		return
	}
	utils.OK(c, post)
}

// UpdatePost updates a post (leader/admin).
func UpdatePost(c *gin.Context) {
	var post models.Post
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Post not found")
		return
	}

	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	post.Title = input.Title
	post.Content = input.Content
	post.UnitID = input.UnitID
	post.Pinned = input.Pinned

	if err := database.DB.Save(&post).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to update post")
		return
	}
	utils.OK(c, post)
}

// DeletePost removes a post (leader/admin).
func DeletePost(c *gin.Context) {
	if err := database.DB.Delete(&models.Post{}, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to delete post")
		return
	}
	utils.OKMessage(c, "Post deleted")
}
