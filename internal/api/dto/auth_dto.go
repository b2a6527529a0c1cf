package dto

// Data Transfer Objects for the passwordless authentication flow

// EmailRequest: payload for requesting a confirmation code
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// EmailResponse echoes the email on success, or carries the structured
// rejection message for malformed input
type EmailResponse struct {
	Email string `json:"email"`
}

// TokenRequest: payload for exchanging an email + confirmation code
type TokenRequest struct {
	Email            string `json:"email" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required,max=100"`
}

// TokenResponse: the session credential pair
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest: payload for refreshing an access token
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshResponse: the refreshed access token
type RefreshResponse struct {
	Access string `json:"access"`
}
