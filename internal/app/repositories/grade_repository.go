package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rjoshi/gradevault/internal/app/models"
	"github.com/rjoshi/gradevault/internal/app/models/dto"
)

// IGradeRepository defines grade persistence operations.
type IGradeRepository interface {
	Upsert(ctx context.Context, grade *models.Grade) (id string, created bool, err error)
	ListByCourse(ctx context.Context, courseID string) ([]dto.GradeRow, error)
}

// GradeRepository is the PostgreSQL-backed IGradeRepository.
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

// Upsert writes the caller's grade for a course. The uniqueness constraint
// on (user_id, course_id) makes this safe under concurrent submissions:
// two racing first submissions cannot both insert. xmax = 0 distinguishes
// a fresh insert from a conflict-resolved update.
func (r *GradeRepository) Upsert(ctx context.Context, grade *models.Grade) (string, bool, error) {
	query := `INSERT INTO grades (id, course_id, total_marks, grade, user_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT grades_user_course_key
		DO UPDATE SET total_marks = EXCLUDED.total_marks,
			grade = EXCLUDED.grade,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, (xmax = 0) AS inserted`

	var (
		id       string
		inserted bool
	)
	err := r.db.QueryRow(ctx, query,
		uuid.New().String(), grade.CourseID, grade.TotalMarks, grade.Grade, grade.UserID,
	).Scan(&id, &inserted)
	if err != nil {
		return "", false, err
	}
	return id, inserted, nil
}

// ListByCourse returns every grade row for a course. The projection omits
// the owning user on purpose; see the grade listing design note.
func (r *GradeRepository) ListByCourse(ctx context.Context, courseID string) ([]dto.GradeRow, error) {
	query := `SELECT course_id, grade, total_marks FROM grades WHERE course_id = $1`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := []dto.GradeRow{}
	for rows.Next() {
		var g dto.GradeRow
		if err := rows.Scan(&g.CourseID, &g.Grade, &g.TotalMarks); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}
