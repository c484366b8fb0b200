package models

// Course is a semester-qualified course offering. The catalogue is seeded
// at startup and read-only through the API.
type Course struct {
	// ID is the semester-qualified identifier, e.g. "CS1.301".
	ID       string `json:"id"`
	Name     string `json:"name"`
	Semester string `json:"-"`
}
