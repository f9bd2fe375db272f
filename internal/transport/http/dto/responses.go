package dto

// Success bodies are flat; the SPA reads res.data.email and
// res.data.message directly, so there is no data envelope.

type MessageResponse struct {
	Message string `json:"message"`
}

type EmailResponse struct {
	Email string `json:"email"`
}
