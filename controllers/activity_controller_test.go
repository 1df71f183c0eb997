package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trungvu222/youth-handbook-sub003/database"
	"github.com/trungvu222/youth-handbook-sub003/models"
)

func TestRegisterAndSelfCheckIn(t *testing.T) {
	router := setupTest(t)

	admin := createUser(t, "Admin", "admin@example.com", "0900000000", models.RoleAdmin, nil)
	activity := createActivity(t, "Ngày hội việc làm", time.Now().Add(-5*time.Minute), 10, 2, nil, admin)
	member := createUser(t, "Member", "m@example.com", "0911111111", models.RoleMember, nil)

	// join
	rec := doRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/activities/%d/register", activity.ID), tokenFor(t, member), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// duplicate join
	rec = doRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/activities/%d/register", activity.ID), tokenFor(t, member), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// wrong code
	rec = doRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/activities/%d/checkin", activity.ID), tokenFor(t, member),
		map[string]string{"code": "wrong-code"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// correct code, started 5 minutes ago so still on time
	rec = doRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/activities/%d/checkin", activity.ID), tokenFor(t, member),
		map[string]string{"code": activity.CheckInCode})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		PointsEarned int `json:"points_earned"`
	}
	decodeData(t, rec, &resp)
	assert.Equal(t, 10, resp.PointsEarned)

	// a repeat self check-in is rejected
	rec = doRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/activities/%d/checkin", activity.ID), tokenFor(t, member),
		map[string]string{"code": activity.CheckInCode})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// ledger row exists for the self check-in
	var history int64
	require.NoError(t, database.DB.Model(&models.PointsHistory{}).
		Where("user_id = ?", member.ID).Count(&history).Error)
	assert.Equal(t, int64(1), history)
}

func TestSelfCheckInRequiresRegistration(t *testing.T) {
	router := setupTest(t)

	admin := createUser(t, "Admin", "admin@example.com", "0900000000", models.RoleAdmin, nil)
	activity := createActivity(t, "Văn nghệ chào mừng", time.Now(), 10, 2, nil, admin)
	member := createUser(t, "Member", "m@example.com", "0911111111", models.RoleMember, nil)

	rec := doRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/activities/%d/checkin", activity.ID), tokenFor(t, member),
		map[string]string{"code": activity.CheckInCode})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelfCheckInGeofence(t *testing.T) {
	router := setupTest(t)

	admin := createUser(t, "Admin", "admin@example.com", "0900000000", models.RoleAdmin, nil)
	activity := createActivity(t, "Dọn vệ sinh bờ biển", time.Now(), 10, 2, nil, admin)
	// venue at the Nha Trang coast, 200m radius
	require.NoError(t, database.DB.Model(&activity).Updates(map[string]interface{}{
		"latitude":        12.2388,
		"longitude":       109.1967,
		"check_in_radius": 200.0,
	}).Error)

	member := createUser(t, "Member", "m@example.com", "0911111111", models.RoleMember, nil)
	addParticipant(t, activity, member, models.ParticipantRegistered)

	path := fmt.Sprintf("/api/activities/%d/checkin", activity.ID)

	// no coordinates supplied
	rec := doRequest(t, router, http.MethodPost, path, tokenFor(t, member),
		map[string]interface{}{"code": activity.CheckInCode})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// roughly 11km away
	rec = doRequest(t, router, http.MethodPost, path, tokenFor(t, member),
		map[string]interface{}{"code": activity.CheckInCode, "latitude": 12.3388, "longitude": 109.1967})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// at the venue
	rec = doRequest(t, router, http.MethodPost, path, tokenFor(t, member),
		map[string]interface{}{"code": activity.CheckInCode, "latitude": 12.2389, "longitude": 109.1968})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRotateCheckInCode(t *testing.T) {
	router := setupTest(t)

	admin := createUser(t, "Admin", "admin@example.com", "0900000000", models.RoleAdmin, nil)
	activity := createActivity(t, "Đại hội chi đoàn", time.Now(), 5, 1, nil, admin)
	oldCode := activity.CheckInCode

	rec := doRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/activities/%d/qr", activity.ID), tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CheckInCode string `json:"check_in_code"`
	}
	decodeData(t, rec, &resp)
	assert.NotEmpty(t, resp.CheckInCode)
	assert.NotEqual(t, oldCode, resp.CheckInCode)
}

func TestUnregisterFromActivity(t *testing.T) {
	router := setupTest(t)

	admin := createUser(t, "Admin", "admin@example.com", "0900000000", models.RoleAdmin, nil)
	activity := createActivity(t, "Trồng cây xanh", time.Now(), 5, 1, nil, admin)
	member := createUser(t, "Member", "m@example.com", "0911111111", models.RoleMember, nil)

	p := addParticipant(t, activity, member, models.ParticipantRegistered)

	rec := doRequest(t, router, http.MethodDelete,
		fmt.Sprintf("/api/activities/%d/register", activity.ID), tokenFor(t, member), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, database.DB.Model(&models.ActivityParticipant{}).
		Where("id = ?", p.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// cannot leave once attendance has been recorded
	p = addParticipant(t, activity, member, models.ParticipantRegistered)
	setCheckedIn(t, p, time.Now(), 5)
	rec = doRequest(t, router, http.MethodDelete,
		fmt.Sprintf("/api/activities/%d/register", activity.ID), tokenFor(t, member), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActivityCreateAccess(t *testing.T) {
	router := setupTest(t)

	unitA := createUnit(t, "Chi đoàn A", "CDA")
	unitB := createUnit(t, "Chi đoàn B", "CDB")
	leaderA := createUser(t, "Leader A", "la@example.com", "0911111111", models.RoleLeader, &unitA.ID)
	member := createUser(t, "Member", "m@example.com", "0922222222", models.RoleMember, &unitA.ID)

	start := time.Now().Add(24 * time.Hour)
	end := start.Add(2 * time.Hour)
	body := map[string]interface{}{
		"title":      "Sinh hoạt tháng",
		"status":     "active",
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
		"unit_id":    unitA.ID,
	}

	rec := doRequest(t, router, http.MethodPost, "/api/activities/", tokenFor(t, member), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/activities/", tokenFor(t, leaderA), body)
	require.Equal(t, http.StatusOK, rec.Code)

	// a leader may not create activities for another unit
	body["unit_id"] = unitB.ID
	rec = doRequest(t, router, http.MethodPost, "/api/activities/", tokenFor(t, leaderA), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeaderboard(t *testing.T) {
	router := setupTest(t)

	admin := createUser(t, "Admin", "admin@example.com", "0900000000", models.RoleAdmin, nil)
	u1 := createUser(t, "Nguyen Van A", "a@example.com", "0911111111", models.RoleMember, nil)
	u2 := createUser(t, "Tran Thi B", "b@example.com", "0922222222", models.RoleMember, nil)
	require.NoError(t, database.DB.Model(&models.User{}).Where("id = ?", u1.ID).Update("points", 30).Error)
	require.NoError(t, database.DB.Model(&models.User{}).Where("id = ?", u2.ID).Update("points", 50).Error)

	rec := doRequest(t, router, http.MethodGet, "/api/points/leaderboard?limit=2", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []struct {
		Rank   int  `json:"rank"`
		UserID uint `json:"user_id"`
		Points int  `json:"points"`
	}
	decodeData(t, rec, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, u2.ID, entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 50, entries[0].Points)
	assert.Equal(t, u1.ID, entries[1].UserID)
}
