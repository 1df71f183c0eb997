package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/middleware"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// GetUsers lists users. Leaders only see their own unit's roster.
func GetUsers(c *gin.Context) {
	query := database.DB.Preload("Unit")

	if models.UserRole(c.GetString("role")) == models.RoleLeader {
		unitID := middleware.CallerUnitID(c)
		if unitID == nil {
			utils.Fail(c, http.StatusForbidden, "Leader has no unit assigned")
			return
		}
		query = query.Where("unit_id = ?", *unitID)
	} else if v := c.Query("unit_id"); v != "" {
		query = query.Where("unit_id = ?", v)
	}

	var users []models.User
	if err := query.Order("full_name ASC").Find(&users).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	utils.OK(c, users)
}

// GetMe returns the authenticated caller's profile.
func GetMe(c *gin.Context) {
	var user models.User
	if err := database.DB.Preload("Unit").First(&user, c.GetUint("user_id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "User not found")
		return
	}
	utils.OK(c, user)
}

// GetUserByID returns a single user.
func GetUserByID(c *gin.Context) {
	var user models.User
	if err := database.DB.Preload("Unit").First(&user, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "User not found")
		return
	}
	utils.OK(c, user)
}

// UpdateUser updates a user's own profile fields. Admins may also
// change role and unit.
func UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid ID")
		return
	}

	callerRole := models.UserRole(c.GetString("role"))
	if callerRole != models.RoleAdmin && c.GetUint("user_id") != uint(id) {
		utils.Fail(c, http.StatusForbidden, "You do not have permission to update this user")
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	var input struct {
		FullName *string `json:"full_name"`
		Phone    *string `json:"phone"`
		Role     *string `json:"role"`
		UnitID   *uint   `json:"unit_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if callerRole == models.RoleAdmin {
		if input.Role != nil {
			role := models.UserRole(*input.Role)
			if role != models.RoleAdmin && role != models.RoleLeader && role != models.RoleMember {
				utils.Fail(c, http.StatusBadRequest, "Invalid role")
				return
			}
			user.Role = role
		}
		if input.UnitID != nil {
			user.UnitID = input.UnitID
		}
	}

	if err := database.DB.Save(&user).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	utils.OK(c, user)
}

// DeleteUser removes a user (admin only, soft delete).
func DeleteUser(c *gin.Context) {
	if err := database.DB.Delete(&models.User{}, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "User not found")
		return
	}
	utils.OKMessage(c, "User deleted")
}

// GetUserPointsHistory returns a user's ledger entries, newest first.
// Members may only read their own history.
func GetUserPointsHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid ID")
		return
	}

	role := models.UserRole(c.GetString("role"))
	if !role.Elevated() && c.GetUint("user_id") != uint(id) {
		utils.Fail(c, http.StatusForbidden, "You do not have permission to view this user's points")
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	var history []models.PointsHistory
	if err := database.DB.Where("user_id = ?", id).Order("created_at DESC").
		Find(&history).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve points history")
		return
	}

	utils.OK(c, gin.H{
		"points":  user.Points,
		"history": history,
	})
}
