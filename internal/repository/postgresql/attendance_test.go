package postgresql

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/division"
	"github.com/presensia/attendance-backend-go/internal/domain/user"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

func repoTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func truncateAttendanceTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()

	_, err := db.Exec(ctx, "TRUNCATE TABLE attendances, users CASCADE")
	require.NoError(t, err)
}

func createTestUser(t *testing.T, ctx context.Context, db *database.DB) user.User {
	t.Helper()

	u, err := NewUserRepository(db).Create(ctx, user.User{
		EmployeeCode: "EMP-0001",
		Name:         "Budi Santoso",
		Email:        "budi@presensia.id",
		PasswordHash: "not-a-real-hash",
		Division:     division.DivisionFinance,
		Role:         user.RoleUser,
		IsActive:     true,
	})
	require.NoError(t, err)
	return u
}

// An admin manual entry arrives at Create with both check-in and
// check-out already filled in; every field must survive the round trip.
func TestAttendanceCreate_PersistsCheckOutFields(t *testing.T) {
	db := repoTestDB(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx, db)

	u := createTestUser(t, ctx, db)
	repo := NewAttendanceRepository(db)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	checkIn := date.Add(8 * time.Hour)
	checkOut := date.Add(17*time.Hour + 30*time.Minute)
	checkOutLocation := "Kantor Pusat"

	created, err := repo.Create(ctx, attendance.Attendance{
		UserID:           u.ID,
		Date:             date,
		CheckInTime:      &checkIn,
		CheckOutTime:     &checkOut,
		CheckOutLocation: &checkOutLocation,
		OvertimeMinutes:  30,
		Status:           attendance.StatusPresent,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	require.NotNil(t, got.CheckOutTime)
	assert.True(t, got.CheckOutTime.Equal(checkOut), "check-out time must be persisted")
	require.NotNil(t, got.CheckOutLocation)
	assert.Equal(t, checkOutLocation, *got.CheckOutLocation)
	assert.Equal(t, 30, got.OvertimeMinutes)
}

func TestAttendanceCreate_DuplicateDateIsAlreadyCheckedIn(t *testing.T) {
	db := repoTestDB(t)
	ctx := context.Background()
	truncateAttendanceTables(t, ctx, db)

	u := createTestUser(t, ctx, db)
	repo := NewAttendanceRepository(db)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, attendance.Attendance{
		UserID: u.ID,
		Date:   date,
		Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{
		UserID: u.ID,
		Date:   date,
		Status: attendance.StatusPresent,
	})
	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}
