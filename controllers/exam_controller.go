package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// GetExams lists exams.
func GetExams(c *gin.Context) {
	var exams []models.Exam
	if err := database.DB.Preload("Creator").Order("created_at DESC").Find(&exams).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve exams")
		return
	}
	utils.OK(c, exams)
}

// GetExam returns one exam, with results for elevated callers.
func GetExam(c *gin.Context) {
	var exam models.Exam
	if err := database.DB.Preload("Creator").First(&exam, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Exam not found")
		return
	}

	if models.UserRole(c.GetString("role")).Elevated() {
		var results []models.ExamResult
		if err := database.DB.Preload("User").Where("exam_id = ?", exam.ID).
			Find(&results).Error; err != nil {
			utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve exam results")
			return
		}
		utils.OK(c, gin.H{"exam": exam, "results": results})
		return
	}
	utils.OK(c, exam)
}

// CreateExam creates an exam (leader/admin).
func CreateExam(c *gin.Context) {
	var input struct {
		Title        string     `json:"title" binding:"required"`
		Description  string     `json:"description"`
		OpensAt      *time.Time `json:"opens_at"`
		ClosesAt     *time.Time `json:"closes_at"`
		PassScore    int        `json:"pass_score"`
		RewardPoints int        `json:"reward_points"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	exam := models.Exam{
		Title:        input.Title,
		Description:  input.Description,
		OpensAt:      input.OpensAt,
		ClosesAt:     input.ClosesAt,
		PassScore:    input.PassScore,
		RewardPoints: input.RewardPoints,
		CreatorID:    c.GetUint("user_id"),
	}
	if err := database.DB.Create(&exam).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to create exam")
		return
	}
	utils.OK(c, exam)
}

// DeleteExam removes an exam (leader/admin).
func DeleteExam(c *gin.Context) {
	if err := database.DB.Delete(&models.Exam{}, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to delete exam")
		return
	}
	utils.OKMessage(c, "Exam deleted")
}

// SubmitExamResult records the caller's score. One attempt per exam;
// a passing score earns the exam's reward points through the ledger.
func SubmitExamResult(c *gin.Context) {
	var input struct {
		Score *int `json:"score" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if *input.Score < 0 || *input.Score > 100 {
		utils.Fail(c, http.StatusBadRequest, "Score must be between 0 and 100")
		return
	}

	var exam models.Exam
	if err := database.DB.First(&exam, c.Param("id")).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Exam not found")
		return
	}

	now := time.Now()
	if exam.OpensAt != nil && now.Before(*exam.OpensAt) {
		utils.Fail(c, http.StatusBadRequest, "Exam is not open yet")
		return
	}
	if exam.ClosesAt != nil && now.After(*exam.ClosesAt) {
		utils.Fail(c, http.StatusBadRequest, "Exam is closed")
		return
	}

	userID := c.GetUint("user_id")
	var existing models.ExamResult
	if err := database.DB.Where("exam_id = ? AND user_id = ?", exam.ID, userID).
		First(&existing).Error; err == nil {
		utils.Fail(c, http.StatusBadRequest, "Exam already submitted")
		return
	}

	passed := *input.Score >= exam.PassScore
	result := models.ExamResult{
		ExamID: exam.ID,
		UserID: userID,
		Score:  *input.Score,
		Passed: passed,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&result).Error; err != nil {
			return err
		}
		if !passed || exam.RewardPoints <= 0 {
			return nil
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", exam.RewardPoints)).Error; err != nil {
			return err
		}
		history := models.PointsHistory{
			UserID: userID,
			Points: exam.RewardPoints,
			Reason: "Hoàn thành bài thi: " + exam.Title,
			Type:   models.PointsEarn,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to submit exam result")
		return
	}

	utils.OK(c, result)
}
