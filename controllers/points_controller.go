package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// GetLeaderboard returns the top users by points, optionally within
// one unit.
func GetLeaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.Fail(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	query := database.DB.Model(&models.User{})
	if v := c.Query("unit_id"); v != "" {
		query = query.Where("unit_id = ?", v)
	}

	var users []models.User
	if err := query.Order("points DESC, full_name ASC").Limit(limit).Find(&users).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve leaderboard")
		return
	}

	type entry struct {
		Rank     int    `json:"rank"`
		UserID   uint   `json:"user_id"`
		FullName string `json:"full_name"`
		UnitID   *uint  `json:"unit_id"`
		Points   int    `json:"points"`
	}
	entries := make([]entry, 0, len(users))
	for i, u := range users {
		entries = append(entries, entry{Rank: i + 1, UserID: u.ID, FullName: u.FullName, UnitID: u.UnitID, Points: u.Points})
	}
	utils.OK(c, entries)
}

// AdjustPoints applies a manual point adjustment (admin only). The
// counter update and the ledger row are written in one transaction.
func AdjustPoints(c *gin.Context) {
	var input struct {
		UserID uint   `json:"user_id" binding:"required"`
		Points int    `json:"points" binding:"required"`
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		utils.Fail(c, http.StatusBadRequest, "Reason is required")
		return
	}

	var user models.User
	if err := database.DB.First(&user, input.UserID).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	historyType := models.PointsEarn
	if input.Points < 0 {
		historyType = models.PointsDeduct
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			UpdateColumn("points", gorm.Expr("points + ?", input.Points)).Error; err != nil {
			return err
		}
		history := models.PointsHistory{
			UserID: user.ID,
			Points: input.Points,
			Reason: reason,
			Type:   historyType,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to adjust points")
		return
	}

	utils.OKMessage(c, "Points adjusted")
}
