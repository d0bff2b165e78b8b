package user

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var joinedColumns = []string{"id", "email", "first_name", "last_name", "id", "university_name", "gender", "year_joined", "department", "date_of_birth"}

func ptr[T any](v T) *T { return &v }

func newTeacher() *models.Teacher {
	return &models.Teacher{
		UserID:         5,
		UniversityName: "State University",
		Gender:         models.GenderFemale,
		YearJoined:     2015,
		Department:     ptr("Physics"),
	}
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts for active user", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)
		teacher := newTeacher()

		mock.ExpectQuery("INSERT INTO teachers").
			WithArgs(int64(5), "State University", "Female", 2015, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(8)))

		id, err := repo.CreateProfile(ctx, mock, teacher)
		require.NoError(t, err)
		assert.Equal(t, int64(8), id)
		assert.Equal(t, int64(8), teacher.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing or inactive user", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)

		mock.ExpectQuery("INSERT INTO teachers").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}))

		_, err := repo.CreateProfile(ctx, mock, newTeacher())
		assert.ErrorIs(t, err, apperrors.ErrForeignKeyViolation)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)

		mock.ExpectQuery("INSERT INTO teachers").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "teachers_user_id_fkey"})

		_, err := repo.CreateProfile(ctx, mock, newTeacher())
		assert.ErrorIs(t, err, apperrors.ErrForeignKeyViolation)
	})

	t.Run("profile already exists", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)

		mock.ExpectQuery("INSERT INTO teachers").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: TeacherUserConstraint})

		_, err := repo.CreateProfile(ctx, mock, newTeacher())
		assert.ErrorIs(t, err, apperrors.ErrProfileExists)
	})

	t.Run("gender rejected by enum", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)

		mock.ExpectQuery("INSERT INTO teachers").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation})

		_, err := repo.CreateProfile(ctx, mock, newTeacher())
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		var custom *apperrors.CustomError
		require.ErrorAs(t, err, &custom)
		assert.Equal(t, "gender", custom.Details["field"])
	})
}

func TestGetProfileJoinedWithIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("with profile", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)
		dob := time.Date(1985, 7, 14, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery("SELECT (.+) FROM users u LEFT JOIN teachers t ON t.user_id = u.id WHERE u.id = \\$1").
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows(joinedColumns).AddRow(
				int64(5), "jane@school.edu", "Jane", "Doe",
				ptr(int64(8)), ptr("State University"), ptr("Female"), ptr(2015), ptr("Physics"), &dob,
			))

		p, err := repo.GetProfileJoinedWithIdentity(ctx, 5)
		require.NoError(t, err)
		assert.True(t, p.HasProfile())
		assert.Equal(t, models.GenderFemale, *p.Gender)
		assert.Equal(t, 2015, *p.YearJoined)
		assert.Equal(t, dob, *p.DateOfBirth)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user without profile", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)

		mock.ExpectQuery("SELECT (.+) FROM users u LEFT JOIN teachers t").
			WithArgs(pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(joinedColumns).AddRow(
				int64(5), "jane@school.edu", "Jane", "Doe",
				nil, nil, nil, nil, nil, nil,
			))

		p, err := repo.GetProfileJoinedWithIdentity(ctx, 5)
		require.NoError(t, err)
		assert.False(t, p.HasProfile())
		assert.Nil(t, p.Gender)
		assert.Nil(t, p.UniversityName)
		assert.Equal(t, "Jane", p.FirstName)
	})

	t.Run("no such user", func(t *testing.T) {
		var logs bytes.Buffer
		logger.Configure(logger.Config{Level: "debug", Format: logger.FormatJSON, Output: &logs})
		t.Cleanup(func() { logger.Configure(logger.Config{Level: "info", Format: logger.FormatConsole}) })

		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)

		mock.ExpectQuery("SELECT (.+) FROM users u LEFT JOIN teachers t").
			WithArgs(pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows(joinedColumns))

		_, err := repo.GetProfileJoinedWithIdentity(ctx, 5)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Contains(t, logs.String(), `"level":"debug"`)
		assert.Contains(t, logs.String(), "Profile lookup for unknown user")
	})
}

func TestListActiveProfilesJoinedWithIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("ordered active teachers", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)

		mock.ExpectQuery("SELECT (.+) FROM teachers t JOIN users u ON u.id = t.user_id WHERE u.is_active = \\$1 ORDER BY u.first_name, u.last_name").
			WithArgs(true).
			WillReturnRows(pgxmock.NewRows(joinedColumns).
				AddRow(int64(2), "al@school.edu", "Al", "Bee", ptr(int64(1)), ptr("U1"), ptr("Male"), ptr(2001), nil, nil).
				AddRow(int64(1), "zo@school.edu", "Zoe", "Cox", ptr(int64(2)), ptr("U2"), ptr("Other"), ptr(2010), ptr("Maths"), nil))

		profiles, err := repo.ListActiveProfilesJoinedWithIdentity(ctx)
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, "Al", profiles[0].FirstName)
		assert.Equal(t, models.GenderOther, *profiles[1].Gender)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty listing is not nil", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)

		mock.ExpectQuery("SELECT (.+) FROM teachers t").
			WithArgs(true).
			WillReturnRows(pgxmock.NewRows(joinedColumns))

		profiles, err := repo.ListActiveProfilesJoinedWithIdentity(ctx)
		require.NoError(t, err)
		assert.NotNil(t, profiles)
		assert.Empty(t, profiles)
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewTeacherRepository(mock)

		mock.ExpectQuery("SELECT (.+) FROM teachers t").
			WithArgs(true).
			WillReturnError(errors.New("down"))

		_, err := repo.ListActiveProfilesJoinedWithIdentity(ctx)
		assert.Error(t, err)
	})
}
