// Package seed loads the static course catalogue into the database.
package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/rjoshi/gradevault/internal/app/models"
	"github.com/rjoshi/gradevault/internal/app/repositories"
)

// catalogue is what GET /courses serves. Changing it here and restarting
// is the only way courses are managed; the API is read-only.
var catalogue = []models.Course{
	{ID: "MA6.101", Name: "Probability and Statistics", Semester: "Spring-2025"},
	{ID: "CS2.203", Name: "Language and Society", Semester: "Spring-2025"},
	{ID: "CL3.202", Name: "Computational Linguistics-2", Semester: "Spring-2025"},
	{ID: "CS1.301", Name: "Algorithm Analysis and Design", Semester: "Spring-2025"},
	{ID: "CS1.302", Name: "Automata Theory", Semester: "Spring-2025"},
	{ID: "CS4.301", Name: "Data and Applications", Semester: "Spring-2025"},
}

// Courses returns a copy of the seeded catalogue.
func Courses() []models.Course {
	return append([]models.Course(nil), catalogue...)
}

// CreateDefaultData seeds the course catalogue. Existing rows are left
// alone, so it is safe on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	courseRepo := repositories.NewCourseRepository(dbPool)

	lgr.Info().Int("count", len(catalogue)).Msg("Seeding course catalogue")
	for _, course := range catalogue {
		if err := courseRepo.Upsert(ctx, &course); err != nil {
			lgr.Error().Err(err).Str("course", course.ID).Msg("Failed to seed course")
			return err
		}
	}
	return nil
}
