package dto

// Request bodies mirror what the SPA sends. None of them carry
// format or strength validation: empty fields flow through the
// ordinary store paths and fail (or succeed) there.

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyRequest struct {
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type CheckRequest struct {
	URL string `json:"url"`
}
