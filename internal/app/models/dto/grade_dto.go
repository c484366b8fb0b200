package dto

// GradeSubmitRequest is the POST /grades body.
type GradeSubmitRequest struct {
	CourseID   string   `json:"course_id" binding:"required"`
	TotalMarks *float64 `json:"total_marks" binding:"required"`
	Grade      string   `json:"grade" binding:"required"`
}

// GradeSubmitResponse reports whether the caller's grade row was created
// or updated, with the row's id either way.
type GradeSubmitResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// GradeRow is one entry in a course's grade listing. The owning user is
// deliberately not part of the projection.
type GradeRow struct {
	CourseID   string  `json:"course_id"`
	Grade      string  `json:"grade"`
	TotalMarks float64 `json:"total_marks"`
}
