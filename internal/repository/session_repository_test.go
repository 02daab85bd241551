package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusplan/planner-api/internal/models"
)

func sessionRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "course_id", "type", "day_of_week", "start_time", "end_time", "location", "instructor", "created_at", "updated_at"}).
		AddRow("session-1", "user-1", "course-1", models.SessionLecture, 1, "09:00", "10:30", "Hall B", "Dr. Reyes", now, now)
}

func TestSessionRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(sqlmock.AnyArg(), "user-1", "course-1", models.SessionLecture, 1, "09:00", "10:30", "Hall B", "Dr. Reyes", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.Session{
		UserID:     "user-1",
		CourseID:   "course-1",
		Type:       models.SessionLecture,
		DayOfWeek:  1,
		StartTime:  "09:00",
		EndTime:    "10:30",
		Location:   "Hall B",
		Instructor: "Dr. Reyes",
	}
	require.NoError(t, repo.Create(context.Background(), session))
	assert.NotEmpty(t, session.ID)

	mock.ExpectQuery("SELECT .+ FROM sessions WHERE id = \\$1 AND user_id = \\$2").
		WithArgs("session-1", "user-1").
		WillReturnRows(sessionRows(time.Now()))

	got, err := repo.GetByID(context.Background(), "user-1", "session-1")
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListAllStableOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery("SELECT .+ FROM sessions WHERE user_id = \\$1 ORDER BY day_of_week ASC, start_time ASC, id ASC").
		WithArgs("user-1").
		WillReturnRows(sessionRows(time.Now()))

	sessions, err := repo.ListAll(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	day := 1
	mock.ExpectQuery("SELECT .+ FROM sessions WHERE user_id = \\$1 AND course_id = \\$2 AND day_of_week = \\$3").
		WithArgs("user-1", "course-1", day).
		WillReturnRows(sessionRows(time.Now()))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM sessions WHERE user_id = \\$1 AND course_id = \\$2 AND day_of_week = \\$3").
		WithArgs("user-1", "course-1", day).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	sessions, total, err := repo.List(context.Background(), "user-1", models.SessionFilter{CourseID: "course-1", DayOfWeek: &day})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
