package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/middleware"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/services"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// GetActivities retrieves a list of activities with optional filters
func GetActivities(c *gin.Context) {
	queryParams := struct {
		Status     string `form:"status"`
		Type       string `form:"type"`
		UnitID     string `form:"unit_id"`
		AfterTime  string `form:"after_time"`
		BeforeTime string `form:"before_time"`
		Limit      string `form:"limit"`
		Order      string `form:"order"` // "asc" or "desc"
	}{
		Order: "desc", // default to newest first
	}
	if err := c.ShouldBindQuery(&queryParams); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if queryParams.Order != "asc" && queryParams.Order != "desc" {
		utils.Fail(c, http.StatusBadRequest, "order must be either 'asc' or 'desc'")
		return
	}

	query := database.DB.Preload("Organizer").Preload("Unit")

	if queryParams.Status != "" {
		query = query.Where("status = ?", queryParams.Status)
	}
	if queryParams.Type != "" {
		query = query.Where("type = ?", queryParams.Type)
	}
	if queryParams.UnitID != "" {
		query = query.Where("unit_id = ?", queryParams.UnitID)
	}
	if queryParams.AfterTime != "" {
		t, err := time.Parse(time.RFC3339, queryParams.AfterTime)
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid after_time format. Use RFC3339 (e.g., 2026-02-01T00:00:00Z)")
			return
		}
		query = query.Where("start_time > ?", t)
	}
	if queryParams.BeforeTime != "" {
		t, err := time.Parse(time.RFC3339, queryParams.BeforeTime)
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid before_time format. Use RFC3339 (e.g., 2026-02-01T00:00:00Z)")
			return
		}
		query = query.Where("start_time < ?", t)
	}

	query = query.Order("start_time " + queryParams.Order)

	if queryParams.Limit != "" {
		limit, err := strconv.Atoi(queryParams.Limit)
		if err != nil || limit <= 0 {
			utils.Fail(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		query = query.Limit(limit)
	}

	var activities []models.Activity
	if err := query.Find(&activities).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve activities")
		return
	}
	utils.OK(c, activities)
}

type activityInput struct {
	Title                string     `json:"title" binding:"required"`
	Description          string     `json:"description"`
	Type                 string     `json:"type"`
	Status               string     `json:"status"`
	StartTime            *time.Time `json:"start_time"`
	EndTime              *time.Time `json:"end_time"`
	Location             string     `json:"location"`
	Latitude             float64    `json:"latitude"`
	Longitude            float64    `json:"longitude"`
	CheckInRadius        float64    `json:"check_in_radius"`
	UnitID               *uint      `json:"unit_id"`
	OnTimePoints         int        `json:"on_time_points"`
	LatePoints           int        `json:"late_points"`
	LateThresholdMinutes *int       `json:"late_threshold_minutes"`
}

func validateActivityTimes(start, end *time.Time) error {
	if (start == nil) != (end == nil) {
		return errors.New("start_time and end_time must both be nil or both have values")
	}
	if start != nil && !start.Before(*end) {
		return errors.New("start_time must be before end_time")
	}
	return nil
}

// CreateActivity creates a new activity (requires leader/admin).
// Leaders may only create activities for their own unit.
func CreateActivity(c *gin.Context) {
	var input activityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateActivityTimes(input.StartTime, input.EndTime); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if models.UserRole(c.GetString("role")) == models.RoleLeader {
		unitID := middleware.CallerUnitID(c)
		if unitID == nil || input.UnitID == nil || *input.UnitID != *unitID {
			utils.Fail(c, http.StatusForbidden, "Leaders may only create activities for their own unit")
			return
		}
	}

	status := models.ActivityStatus(input.Status)
	if status == "" {
		status = models.ActivityDraft
	}

	activity := models.Activity{
		Title:                input.Title,
		Description:          input.Description,
		Type:                 input.Type,
		Status:               status,
		StartTime:            input.StartTime,
		EndTime:              input.EndTime,
		Location:             input.Location,
		Latitude:             input.Latitude,
		Longitude:            input.Longitude,
		CheckInRadius:        input.CheckInRadius,
		CheckInCode:          uuid.NewString(),
		OrganizerID:          c.GetUint("user_id"),
		UnitID:               input.UnitID,
		OnTimePoints:         input.OnTimePoints,
		LatePoints:           input.LatePoints,
		LateThresholdMinutes: input.LateThresholdMinutes,
	}
	if err := database.DB.Create(&activity).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to create activity")
		return
	}
	utils.OK(c, activity)
}

// GetActivity retrieves details of a specific activity
func GetActivity(c *gin.Context) {
	var activity models.Activity
	if err := database.DB.Preload("Organizer").Preload("Unit").First(&activity, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Activity not found")
		return
	}
	utils.OK(c, activity)
}

// UpdateActivity updates activity details (requires leader/admin)
func UpdateActivity(c *gin.Context) {
	var activity models.Activity
	if err := database.DB.First(&activity, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Activity not found")
		return
	}
	if !canManageActivity(c, &activity) {
		utils.Fail(c, http.StatusForbidden, "You do not have permission to update this activity")
		return
	}

	var input activityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateActivityTimes(input.StartTime, input.EndTime); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	activity.Title = input.Title
	activity.Description = input.Description
	activity.Type = input.Type
	if input.Status != "" {
		activity.Status = models.ActivityStatus(input.Status)
	}
	activity.StartTime = input.StartTime
	activity.EndTime = input.EndTime
	activity.Location = input.Location
	activity.Latitude = input.Latitude
	activity.Longitude = input.Longitude
	activity.CheckInRadius = input.CheckInRadius
	activity.UnitID = input.UnitID
	activity.OnTimePoints = input.OnTimePoints
	activity.LatePoints = input.LatePoints
	activity.LateThresholdMinutes = input.LateThresholdMinutes

	if err := database.DB.Save(&activity).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to update activity")
		return
	}
	utils.OK(c, activity)
}

// DeleteActivity deletes an activity (requires admin)
func DeleteActivity(c *gin.Context) {
	if err := database.DB.Delete(&models.Activity{}, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to delete activity")
		return
	}
	utils.OKMessage(c, "Activity deleted")
}

// RegisterForActivity creates the caller's participation row.
func RegisterForActivity(c *gin.Context) {
	var activity models.Activity
	if err := database.DB.First(&activity, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Activity not found")
		return
	}
	if activity.Status != models.ActivityActive {
		utils.Fail(c, http.StatusBadRequest, "Activity is not open for registration")
		return
	}

	userID := c.GetUint("user_id")
	var existing models.ActivityParticipant
	if err := database.DB.Where("activity_id = ? AND user_id = ?", activity.ID, userID).
		First(&existing).Error; err == nil {
		utils.Fail(c, http.StatusBadRequest, "Already registered for this activity")
		return
	}

	participant := models.ActivityParticipant{
		ActivityID: activity.ID,
		UserID:     userID,
		Status:     models.ParticipantRegistered,
	}
	if err := database.DB.Create(&participant).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to register")
		return
	}
	utils.OK(c, participant)
}

// UnregisterFromActivity removes the caller's participation while it
// is still in REGISTERED state.
func UnregisterFromActivity(c *gin.Context) {
	userID := c.GetUint("user_id")
	var participant models.ActivityParticipant
	if err := database.DB.Where("activity_id = ? AND user_id = ?", c.Param("id"), userID).
		First(&participant).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "You are not registered for this activity")
		return
	}
	if participant.Status != models.ParticipantRegistered {
		utils.Fail(c, http.StatusBadRequest, "Cannot unregister after attendance has been recorded")
		return
	}
	if err := database.DB.Delete(&participant).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to unregister")
		return
	}
	utils.OKMessage(c, "Registration cancelled")
}

// SelfCheckIn handles QR/GPS check-in by the participant themselves.
func SelfCheckIn(c *gin.Context) {
	var input struct {
		Code      string   `json:"code" binding:"required"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var activity models.Activity
	if err := database.DB.First(&activity, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Activity not found")
		return
	}
	if activity.Status != models.ActivityActive {
		utils.Fail(c, http.StatusBadRequest, "Activity is not open for check-in")
		return
	}
	if input.Code != activity.CheckInCode {
		utils.Fail(c, http.StatusBadRequest, "Invalid check-in code")
		return
	}
	if activity.CheckInRadius > 0 {
		if input.Latitude == nil || input.Longitude == nil {
			utils.Fail(c, http.StatusBadRequest, "Location is required for this activity")
			return
		}
		distance := utils.DistanceMeters(*input.Latitude, *input.Longitude, activity.Latitude, activity.Longitude)
		if distance > activity.CheckInRadius {
			utils.Fail(c, http.StatusBadRequest, "You are too far from the activity location")
			return
		}
	}

	userID := c.GetUint("user_id")
	var participant models.ActivityParticipant
	if err := database.DB.Where("activity_id = ? AND user_id = ?", activity.ID, userID).
		First(&participant).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "You are not registered for this activity")
		return
	}
	if participant.CheckInTime != nil {
		utils.Fail(c, http.StatusBadRequest, "Already checked in")
		return
	}

	points, err := services.AwardCheckInPoints(database.DB, &activity, &participant, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrAlreadyCheckedIn) {
			utils.Fail(c, http.StatusBadRequest, "Already checked in")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, "Failed to check in")
		return
	}

	utils.OK(c, gin.H{
		"participant":   participant,
		"points_earned": points,
	})
}

// RotateCheckInCode replaces the activity's QR code (leader/admin).
func RotateCheckInCode(c *gin.Context) {
	var activity models.Activity
	if err := database.DB.First(&activity, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Activity not found")
		return
	}
	if !canManageActivity(c, &activity) {
		utils.Fail(c, http.StatusForbidden, "You do not have permission to manage this activity")
		return
	}

	activity.CheckInCode = uuid.NewString()
	if err := database.DB.Save(&activity).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to rotate check-in code")
		return
	}
	utils.OK(c, gin.H{"check_in_code": activity.CheckInCode})
}

// GetMyActivities lists the caller's participations with activities.
func GetMyActivities(c *gin.Context) {
	userID := c.GetUint("user_id")
	var participants []models.ActivityParticipant
	if err := database.DB.Preload("Activity").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&participants).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve activities")
		return
	}
	utils.OK(c, participants)
}

// CompleteActivity marks an activity completed and promotes all
// checked-in participants to COMPLETED.
func CompleteActivity(c *gin.Context) {
	var activity models.Activity
	if err := database.DB.First(&activity, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Activity not found")
		return
	}
	if !canManageActivity(c, &activity) {
		utils.Fail(c, http.StatusForbidden, "You do not have permission to manage this activity")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&activity).Update("status", models.ActivityCompleted).Error; err != nil {
			return err
		}
		return tx.Model(&models.ActivityParticipant{}).
			Where("activity_id = ? AND status = ?", activity.ID, models.ParticipantCheckedIn).
			Update("status", models.ParticipantCompleted).Error
	})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to complete activity")
		return
	}
	utils.OKMessage(c, "Activity completed")
}
