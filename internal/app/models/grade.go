package models

// Grade is one student's result in one course. At most one row exists per
// (user, course) pair, enforced by a database uniqueness constraint.
type Grade struct {
	ID         string  `json:"id"`
	CourseID   string  `json:"course_id"`
	TotalMarks float64 `json:"total_marks"`
	Grade      string  `json:"grade"`
	UserID     string  `json:"-"`
}
