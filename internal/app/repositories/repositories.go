// Package repositories provides the persistence layer over PostgreSQL.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository implementations for dependency
// injection.
type Repositories struct {
	UserRepository   *UserRepository
	CourseRepository *CourseRepository
	GradeRepository  *GradeRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:   NewUserRepository(db),
		CourseRepository: NewCourseRepository(db),
		GradeRepository:  NewGradeRepository(db),
	}
}
