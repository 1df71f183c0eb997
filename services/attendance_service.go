package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/trungvu222/youth-handbook-sub003/models"
)

// ErrAlreadyCheckedIn is returned when the conditional update finds a
// participant whose check-in time is already set.
var ErrAlreadyCheckedIn = errors.New("already checked in")

// AwardCheckInPoints performs the one canonical check-in: classify the
// check-in time against the activity's late threshold, then in a
// single transaction flip the participant to CHECKED_IN, bump the
// user's points counter and append the ledger row. Every check-in entry
// point (admin update, batch, QR/GPS self check-in) goes through here
// so the side effects are identical regardless of path.
//
// The participant update is conditional on check_in_time IS NULL, so
// two concurrent calls award at most once; the loser gets
// ErrAlreadyCheckedIn.
func AwardCheckInPoints(db *gorm.DB, activity *models.Activity, participant *models.ActivityParticipant, checkInTime time.Time) (int, error) {
	points := activity.OnTimePoints
	reason := "Điểm danh đúng giờ: " + activity.Title
	if activity.IsLate(checkInTime) {
		points = activity.LatePoints
		reason = "Điểm danh trễ: " + activity.Title
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ActivityParticipant{}).
			Where("id = ? AND check_in_time IS NULL", participant.ID).
			Updates(map[string]interface{}{
				"status":        models.ParticipantCheckedIn,
				"check_in_time": checkInTime,
				"points_earned": points,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCheckedIn
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", participant.UserID).
			UpdateColumn("points", gorm.Expr("points + ?", points)).Error; err != nil {
			return err
		}

		history := models.PointsHistory{
			UserID:     participant.UserID,
			ActivityID: &activity.ID,
			Points:     points,
			Reason:     reason,
			Type:       models.PointsEarn,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return 0, err
	}

	participant.Status = models.ParticipantCheckedIn
	participant.CheckInTime = &checkInTime
	participant.PointsEarned = &points
	return points, nil
}

// CompleteExpiredActivities marks active activities whose end time has
// passed as completed. Run periodically from main.
func CompleteExpiredActivities(db *gorm.DB) {
	res := db.Model(&models.Activity{}).
		Where("status = ? AND end_time IS NOT NULL AND end_time < ?", models.ActivityActive, time.Now()).
		Update("status", models.ActivityCompleted)
	if res.Error != nil {
		log.Printf("Failed to complete expired activities: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Marked %d activities as completed", res.RowsAffected)
	}
}
