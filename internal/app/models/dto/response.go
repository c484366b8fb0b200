package dto

// MessageResponse is the uniform body for error-ish outcomes (401, 429).
type MessageResponse struct {
	Message string `json:"message"`
}

// HasLoginResponse answers the frontend's login probe.
type HasLoginResponse struct {
	Authenticated bool `json:"authenticated"`
}
