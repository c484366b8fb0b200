package models

// User is a CAS-provisioned account. Users are created on first successful
// login and never deleted by this service.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	RollNo string `json:"rollno"`
}
