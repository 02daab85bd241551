package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusplan/planner-api/internal/models"
)

func TestConstraintRepositoryCreateAndListAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewConstraintRepository(db)

	day := 5
	start := "12:00"
	end := "18:00"
	mock.ExpectExec("INSERT INTO constraints").
		WithArgs(sqlmock.AnyArg(), "user-1", models.ConstraintUnavailable, &day, &start, &end, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	constraint := &models.Constraint{
		UserID:    "user-1",
		Type:      models.ConstraintUnavailable,
		DayOfWeek: &day,
		StartTime: &start,
		EndTime:   &end,
	}
	require.NoError(t, repo.Create(context.Background(), constraint))
	assert.NotEmpty(t, constraint.ID)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "type", "day_of_week", "start_time", "end_time", "created_at", "updated_at"}).
		AddRow("constraint-1", "user-1", models.ConstraintUnavailable, day, start, end, now, now).
		AddRow("constraint-2", "user-1", models.ConstraintBreak, nil, nil, nil, now, now)
	mock.ExpectQuery("SELECT .+ FROM constraints WHERE user_id = \\$1 ORDER BY created_at ASC").
		WithArgs("user-1").
		WillReturnRows(rows)

	constraints, err := repo.ListAll(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, constraints, 2)
	require.NotNil(t, constraints[0].DayOfWeek)
	assert.Equal(t, 5, *constraints[0].DayOfWeek)
	assert.Nil(t, constraints[1].DayOfWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConstraintRepositoryListByType(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewConstraintRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "type", "day_of_week", "start_time", "end_time", "created_at", "updated_at"}).
		AddRow("constraint-1", "user-1", models.ConstraintUnavailable, nil, nil, nil, now, now)
	mock.ExpectQuery("SELECT .+ FROM constraints WHERE user_id = \\$1 AND type = \\$2").
		WithArgs("user-1", models.ConstraintUnavailable).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM constraints WHERE user_id = \\$1 AND type = \\$2").
		WithArgs("user-1", models.ConstraintUnavailable).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	constraints, total, err := repo.List(context.Background(), "user-1", models.ConstraintFilter{Type: models.ConstraintUnavailable})
	require.NoError(t, err)
	assert.Len(t, constraints, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
