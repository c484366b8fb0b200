package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rjoshi/gradevault/internal/app/models"
)

// ICourseRepository defines course persistence operations.
type ICourseRepository interface {
	GetAll(ctx context.Context) ([]models.Course, error)
	Upsert(ctx context.Context, course *models.Course) error
}

// CourseRepository is the PostgreSQL-backed ICourseRepository.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// GetAll returns the full catalogue ordered by identifier ascending.
func (r *CourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	query := `SELECT id_sem, name, sem FROM courses ORDER BY id_sem ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Semester); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Upsert inserts a course, leaving an existing row untouched. Used by the
// seeder so restarts stay idempotent.
func (r *CourseRepository) Upsert(ctx context.Context, course *models.Course) error {
	query := `INSERT INTO courses (id_sem, name, sem) VALUES ($1, $2, $3)
		ON CONFLICT (id_sem) DO NOTHING`

	_, err := r.db.Exec(ctx, query, course.ID, course.Name, course.Semester)
	return err
}
