package dto

import (
	"time"

	"github.com/stockline/stockline-api/internal/domain/entity"
)

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	CompanyName string `json:"company_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse representación pública de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	CompanyName string     `json:"company_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Roles       []string   `json:"roles"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginResponse token emitido tras autenticación exitosa.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ToUserResponse convierte la entidad usuario en su vista pública.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		CompanyName: u.CompanyName,
		Phone:       u.Phone,
		Roles:       u.Roles,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
	}
}
