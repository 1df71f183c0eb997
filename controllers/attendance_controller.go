package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/middleware"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/services"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// canManageActivity applies the unit-scoping rule: admins manage any
// activity, leaders only activities belonging to their own unit.
func canManageActivity(c *gin.Context, activity *models.Activity) bool {
	role := models.UserRole(c.GetString("role"))
	if role == models.RoleAdmin {
		return true
	}
	if role != models.RoleLeader {
		return false
	}
	unitID := middleware.CallerUnitID(c)
	return unitID != nil && activity.UnitID != nil && *activity.UnitID == *unitID
}

type attendanceStats struct {
	Total          int    `json:"total"`
	Registered     int    `json:"registered"`
	CheckedIn      int    `json:"checked_in"`
	Absent         int    `json:"absent"`
	Completed      int    `json:"completed"`
	OnTime         int    `json:"on_time"`
	Late           int    `json:"late"`
	AttendanceRate string `json:"attendance_rate"`
	OnTimeRate     string `json:"on_time_rate"`
}

// buildAttendanceStats aggregates over the status-filtered (but not
// search-filtered) participant set.
func buildAttendanceStats(activity *models.Activity, participants []models.ActivityParticipant) attendanceStats {
	stats := attendanceStats{Total: len(participants)}
	for i := range participants {
		p := &participants[i]
		switch p.Status {
		case models.ParticipantRegistered:
			stats.Registered++
		case models.ParticipantCheckedIn:
			stats.CheckedIn++
			if p.CheckInTime != nil && activity.IsLate(*p.CheckInTime) {
				stats.Late++
			} else {
				stats.OnTime++
			}
		case models.ParticipantAbsent:
			stats.Absent++
		case models.ParticipantCompleted:
			stats.Completed++
		}
	}

	stats.AttendanceRate = "0.0"
	if stats.Total > 0 {
		stats.AttendanceRate = fmt.Sprintf("%.1f", float64(stats.CheckedIn)/float64(stats.Total)*100)
	}
	stats.OnTimeRate = "0.0"
	if stats.CheckedIn > 0 {
		stats.OnTimeRate = fmt.Sprintf("%.1f", float64(stats.OnTime)/float64(stats.CheckedIn)*100)
	}
	return stats
}

// matchesSearch checks the free-text filter against name (case
// insensitive), phone and email (case insensitive).
func matchesSearch(u *models.User, search string) bool {
	lower := strings.ToLower(search)
	return strings.Contains(strings.ToLower(u.FullName), lower) ||
		strings.Contains(u.Phone, search) ||
		strings.Contains(strings.ToLower(u.Email), lower)
}

type activitySummary struct {
	ID        uint                  `json:"id"`
	Title     string                `json:"title"`
	Type      string                `json:"type"`
	Status    models.ActivityStatus `json:"status"`
	StartTime *time.Time            `json:"start_time"`
	EndTime   *time.Time            `json:"end_time"`
	UnitID    *uint                 `json:"unit_id"`
	Organizer models.UserBrief      `json:"organizer"`
}

// GetActivityAttendance lists an activity's participants with
// check-in statistics, with optional status and search filters.
func GetActivityAttendance(c *gin.Context) {
	var activity models.Activity
	if err := database.DB.Preload("Organizer").First(&activity, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Activity not found")
		return
	}
	if !canManageActivity(c, &activity) {
		utils.Fail(c, http.StatusForbidden, "You do not have permission to view this activity's attendance")
		return
	}

	query := database.DB.Preload("User").Where("activity_id = ?", activity.ID)
	if status := c.Query("status"); status != "" {
		if !models.ParticipantStatus(status).Valid() {
			utils.Fail(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}

	var participants []models.ActivityParticipant
	if err := query.Find(&participants).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve participants")
		return
	}

	sort.SliceStable(participants, func(i, j int) bool {
		if participants[i].Status != participants[j].Status {
			return participants[i].Status < participants[j].Status
		}
		return participants[i].User.FullName < participants[j].User.FullName
	})

	// Stats are computed before the search filter narrows the list.
	stats := buildAttendanceStats(&activity, participants)

	if search := c.Query("search"); search != "" {
		filtered := make([]models.ActivityParticipant, 0, len(participants))
		for i := range participants {
			if matchesSearch(&participants[i].User, search) {
				filtered = append(filtered, participants[i])
			}
		}
		participants = filtered
	}

	utils.OK(c, gin.H{
		"activity": activitySummary{
			ID:        activity.ID,
			Title:     activity.Title,
			Type:      activity.Type,
			Status:    activity.Status,
			StartTime: activity.StartTime,
			EndTime:   activity.EndTime,
			UnitID:    activity.UnitID,
			Organizer: activity.Organizer.Brief(),
		},
		"participants": participants,
		"stats":        stats,
	})
}

// ReportAbsent lets the authenticated caller mark their own
// participation as absent with a reason.
func ReportAbsent(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
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

	var activity models.Activity
	if err := database.DB.First(&activity, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Activity not found")
		return
	}

	userID := c.GetUint("user_id")
	var participant models.ActivityParticipant
	if err := database.DB.Where("activity_id = ? AND user_id = ?", activity.ID, userID).
		First(&participant).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "You are not registered for this activity")
		return
	}

	// Only a registration that has not progressed can be reported.
	switch participant.Status {
	case models.ParticipantRegistered:
	case models.ParticipantAbsent:
		utils.Fail(c, http.StatusBadRequest, "Absence already reported")
		return
	default:
		utils.Fail(c, http.StatusBadRequest, "Cannot report absence after check-in")
		return
	}

	participant.Status = models.ParticipantAbsent
	participant.AbsentReason = &reason
	if err := database.DB.Save(&participant).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to update participation")
		return
	}

	utils.OK(c, participant)
}

type participantResponse struct {
	ID           uint                     `json:"id"`
	ActivityID   uint                     `json:"activity_id"`
	UserID       uint                     `json:"user_id"`
	Status       models.ParticipantStatus `json:"status"`
	CheckInTime  *time.Time               `json:"check_in_time"`
	PointsEarned *int                     `json:"points_earned"`
	AbsentReason *string                  `json:"absent_reason"`
	User         models.UserBrief         `json:"user"`
}

// UpdateAttendanceStatus sets a participant's status. The first
// transition to CHECKED_IN awards points through the shared check-in
// operation; repeated CHECKED_IN calls change nothing.
func UpdateAttendanceStatus(c *gin.Context) {
	var input struct {
		Status       string     `json:"status" binding:"required"`
		AbsentReason *string    `json:"absent_reason"`
		CheckInTime  *time.Time `json:"check_in_time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	status := models.ParticipantStatus(input.Status)
	if !status.Valid() {
		utils.Fail(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var activity models.Activity
	if err := database.DB.First(&activity, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Activity not found")
		return
	}
	if !canManageActivity(c, &activity) {
		utils.Fail(c, http.StatusForbidden, "You do not have permission to update this activity's attendance")
		return
	}

	var participant models.ActivityParticipant
	if err := database.DB.Preload("User").
		Where("id = ? AND activity_id = ?", c.Param("participantId"), activity.ID).
		First(&participant).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Participant not found")
		return
	}

	if status == models.ParticipantCheckedIn && participant.CheckInTime == nil {
		checkInTime := time.Now()
		if input.CheckInTime != nil {
			checkInTime = *input.CheckInTime
		}
		if _, err := services.AwardCheckInPoints(database.DB, &activity, &participant, checkInTime); err != nil &&
			!errors.Is(err, services.ErrAlreadyCheckedIn) {
			utils.Fail(c, http.StatusInternalServerError, "Failed to check in participant")
			return
		}
	} else {
		participant.Status = status
		if status == models.ParticipantAbsent && input.AbsentReason != nil {
			participant.AbsentReason = input.AbsentReason
		}
		if err := database.DB.Save(&participant).Error; err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Failed to update participation")
			return
		}
	}

	utils.OK(c, participantResponse{
		ID:           participant.ID,
		ActivityID:   participant.ActivityID,
		UserID:       participant.UserID,
		Status:       participant.Status,
		CheckInTime:  participant.CheckInTime,
		PointsEarned: participant.PointsEarned,
		AbsentReason: participant.AbsentReason,
		User:         participant.User.Brief(),
	})
}

type batchResult struct {
	UserID  uint   `json:"user_id"`
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// BatchCheckIn checks in a list of users for one activity. Items are
// processed independently; one failure never aborts the rest.
func BatchCheckIn(c *gin.Context) {
	var input struct {
		UserIDs []uint `json:"userIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(input.UserIDs) == 0 {
		utils.Fail(c, http.StatusBadRequest, "userIds must not be empty")
		return
	}

	var activity models.Activity
	if err := database.DB.First(&activity, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Activity not found")
		return
	}
	if !canManageActivity(c, &activity) {
		utils.Fail(c, http.StatusForbidden, "You do not have permission to update this activity's attendance")
		return
	}

	now := time.Now()
	results := make([]batchResult, 0, len(input.UserIDs))
	for _, userID := range input.UserIDs {
		var participant models.ActivityParticipant
		err := database.DB.Where("activity_id = ? AND user_id = ?", activity.ID, userID).
			First(&participant).Error
		if err != nil || participant.Status == models.ParticipantCheckedIn {
			results = append(results, batchResult{UserID: userID, Success: false, Reason: "Not found or already checked in"})
			continue
		}

		if _, err := services.AwardCheckInPoints(database.DB, &activity, &participant, now); err != nil {
			reason := err.Error()
			if errors.Is(err, services.ErrAlreadyCheckedIn) {
				reason = "Not found or already checked in"
			}
			results = append(results, batchResult{UserID: userID, Success: false, Reason: reason})
			continue
		}

		results = append(results, batchResult{UserID: userID, Success: true})
	}

	utils.OK(c, results)
}
