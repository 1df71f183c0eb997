package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// Register handles member registration
func Register(c *gin.Context) {
	var input struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"`
		UnitID   *uint  `json:"unit_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	// Check if a user with the same email already exists
	var existingUser models.User
	if err := database.DB.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		utils.Fail(c, http.StatusBadRequest, "User with this email already exists")
		return
	}

	user := models.User{
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Role:     models.RoleMember,
		UnitID:   input.UnitID,
		JoinedAt: time.Now(),
	}
	if err := user.HashPassword(input.Password); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if err := database.DB.Create(&user).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), user.UnitID)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.OK(c, gin.H{"user": user, "access_token": token})
}

// Login handles password-based login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !user.CheckPassword(input.Password) {
		utils.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	accessToken, err := utils.GenerateToken(user.ID, string(user.Role), user.UnitID)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to generate access token")
		return
	}

	refreshToken, refreshTokenExp, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	// Save the refresh token to the database
	user.RefreshToken = refreshToken
	user.RefreshTokenExp = refreshTokenExp
	if err := database.DB.Save(&user).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to save refresh token")
		return
	}

	utils.OK(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// RefreshToken handles access token refresh
func RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := utils.ValidateToken(input.RefreshToken)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	var user models.User
	if err := database.DB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		utils.Fail(c, http.StatusUnauthorized, "User not found")
		return
	}

	// Check if the refresh token matches and is not expired
	if user.RefreshToken != input.RefreshToken || time.Now().After(user.RefreshTokenExp) {
		utils.Fail(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	accessToken, err := utils.GenerateToken(user.ID, string(user.Role), user.UnitID)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to generate access token")
		return
	}

	utils.OK(c, gin.H{"access_token": accessToken})
}
