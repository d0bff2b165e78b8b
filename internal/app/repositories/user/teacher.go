package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/db"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/dberrors"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/logger"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// TeacherUserConstraint is the one-profile-per-user constraint
const TeacherUserConstraint = "teachers_user_id_key"

var profileColumns = []string{
	"u.id", "u.email", "u.first_name", "u.last_name",
	"t.id", "t.university_name", "t.gender::text", "t.year_joined", "t.department", "t.date_of_birth",
}

// TeacherRepository handles teacher profile database operations
type TeacherRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(q db.Querier) *TeacherRepository {
	return &TeacherRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateProfile inserts the teacher row for teacher.UserID through q.
// The insert only happens while the user exists and is active; otherwise
// apperrors.ErrForeignKeyViolation is returned. A second profile for the
// same user yields apperrors.ErrProfileExists, and a gender label the
// teacher_gender enum rejects yields a validation error.
func (r *TeacherRepository) CreateProfile(ctx context.Context, q db.Querier, teacher *models.Teacher) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO teachers (user_id, university_name, gender, year_joined, department, date_of_birth)
		SELECT $1::bigint, $2::varchar, $3::teacher_gender, $4::integer, $5::varchar, $6::date
		WHERE EXISTS (SELECT 1 FROM users WHERE id = $1 AND is_active)
		RETURNING id`,
		teacher.UserID, teacher.UniversityName, string(teacher.Gender), teacher.YearJoined,
		teacher.Department, teacher.DateOfBirth).Scan(&id)

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), dberrors.IsForeignKeyViolation(err):
			logger.Warn().Int64("userID", teacher.UserID).Msg("Profile insert for missing or inactive user")
			return 0, apperrors.ErrForeignKeyViolation
		case dberrors.IsDuplicateConstraintError(err, TeacherUserConstraint):
			logger.Warn().Int64("userID", teacher.UserID).Msg("Attempted to create duplicate teacher profile")
			return 0, apperrors.ErrProfileExists
		case dberrors.IsInvalidEnumValue(err):
			logger.Debug().Str("gender", string(teacher.Gender)).Msg("Gender rejected by teacher_gender enum")
			return 0, apperrors.NewValidationError("gender", "gender must be one of Male, Female, Other")
		}
		logger.Error().Err(err).Int64("userID", teacher.UserID).Msg("Error executing create teacher query")
		return 0, fmt.Errorf("error creating teacher profile: %w", err)
	}

	teacher.ID = id
	return id, nil
}

// GetProfileJoinedWithIdentity returns the user with their profile fields, which are nil
// when no teachers row exists. A missing user yields apperrors.ErrUserNotFound.
func (r *TeacherRepository) GetProfileJoinedWithIdentity(ctx context.Context, userID int64) (*models.TeacherProfile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("users u").
		LeftJoin("teachers t ON t.user_id = u.id").
		Where(squirrel.Eq{"u.id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Debug().Int64("userID", userID).Msg("Profile lookup for unknown user")
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return profile, nil
}

// ListActiveProfilesJoinedWithIdentity lists active users that have a profile, by name
func (r *TeacherRepository) ListActiveProfilesJoinedWithIdentity(ctx context.Context) ([]models.TeacherProfile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("teachers t").
		Join("users u ON u.id = t.user_id").
		Where(squirrel.Eq{"u.is_active": true}).
		OrderBy("u.first_name", "u.last_name").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list profiles query")
		return nil, fmt.Errorf("error querying profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]models.TeacherProfile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning profile: %w", err)
		}
		profiles = append(profiles, *profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}

func scanProfile(row pgx.Row) (*models.TeacherProfile, error) {
	var (
		p      models.TeacherProfile
		gender *string
		dob    *time.Time
	)
	err := row.Scan(
		&p.UserID, &p.Email, &p.FirstName, &p.LastName,
		&p.TeacherID, &p.UniversityName, &gender, &p.YearJoined, &p.Department, &dob,
	)
	if err != nil {
		return nil, err
	}

	if gender != nil {
		g := models.Gender(*gender)
		p.Gender = &g
	}
	p.DateOfBirth = dob
	return &p, nil
}
