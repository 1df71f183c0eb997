package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/models"
	"github.com/trungvu222/youth-handbook-sub003/routes"
	"github.com/trungvu222/youth-handbook-sub003/utils"
)

// setupTest opens a fresh in-memory database, installs it as the
// package-level handle and returns a router with all routes mounted.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps every query on the same in-memory DB.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	database.DB = db

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRoutes(router)
	return router
}

func createUnit(t *testing.T, name, code string) models.Unit {
	t.Helper()
	unit := models.Unit{Name: name, Code: code}
	if err := database.DB.Create(&unit).Error; err != nil {
		t.Fatalf("createUnit: %v", err)
	}
	return unit
}

func createUser(t *testing.T, fullName, email, phone string, role models.UserRole, unitID *uint) models.User {
	t.Helper()
	user := models.User{
		FullName: fullName,
		Email:    email,
		Phone:    phone,
		Role:     role,
		UnitID:   unitID,
		JoinedAt: time.Now(),
	}
	if err := user.HashPassword("password123"); err != nil {
		t.Fatalf("createUser: %v", err)
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("createUser: %v", err)
	}
	return user
}

func createActivity(t *testing.T, title string, start time.Time, onTimePoints, latePoints int, unitID *uint, organizer models.User) models.Activity {
	t.Helper()
	end := start.Add(2 * time.Hour)
	activity := models.Activity{
		Title:        title,
		Type:         "volunteer",
		Status:       models.ActivityActive,
		StartTime:    &start,
		EndTime:      &end,
		CheckInCode:  uuid.NewString(),
		OrganizerID:  organizer.ID,
		UnitID:       unitID,
		OnTimePoints: onTimePoints,
		LatePoints:   latePoints,
	}
	if err := database.DB.Create(&activity).Error; err != nil {
		t.Fatalf("createActivity: %v", err)
	}
	return activity
}

func addParticipant(t *testing.T, activity models.Activity, user models.User, status models.ParticipantStatus) models.ActivityParticipant {
	t.Helper()
	participant := models.ActivityParticipant{
		ActivityID: activity.ID,
		UserID:     user.ID,
		Status:     status,
	}
	if err := database.DB.Create(&participant).Error; err != nil {
		t.Fatalf("addParticipant: %v", err)
	}
	return participant
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, string(user.Role), user.UnitID)
	if err != nil {
		t.Fatalf("tokenFor: %v", err)
	}
	return "Bearer " + token
}

// doRequest performs a request with an optional JSON body and returns
// the recorder.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("doRequest: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v (body: %s)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	env := decode(t, rec)
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decodeData: %v (data: %s)", err, string(env.Data))
	}
}
