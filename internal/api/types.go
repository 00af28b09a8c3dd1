// Package api defines the shared HTTP response payload types.
package api

// ErrorResponse is the generic error payload returned on 4xx/5xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the generic success payload for operations without data.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a freshly minted JWT and, when known, the user ID.
type TokenResponse struct {
	Token  string `json:"token"`
	UserID uint   `json:"user_id,omitempty"`
}

// ProfileResponse is the payload for GET /users/me, derived purely from
// verified token claims (never re-read from the store).
type ProfileResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Provider string `json:"provider,omitempty"`
	Username string `json:"username"`
}
