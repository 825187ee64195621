package dto

import "time"

// LoginRequest entrada para login de administrador.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdministratorResponse salida de un administrador (sin password).
type AdministratorResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token         string                `json:"token"`
	Administrator AdministratorResponse `json:"administrator"`
}
