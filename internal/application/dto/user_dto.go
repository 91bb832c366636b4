package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignupRequest entrada para registro (password en texto, se hashea en use case).
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=200"`
	Role     string `json:"role" validate:"required,oneof=customer salesperson admin"`
	Company  string `json:"company,omitempty"` // empresa del cliente (solo rol customer)
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT y la sesión iniciada.
type LoginResponse struct {
	Token     string       `json:"token"`
	SessionID string       `json:"session_id"`
	ExpiresAt time.Time    `json:"expires_at"`
	Home      string       `json:"home"` // portal del rol
	User      UserResponse `json:"user"`
}

// UpdateProfileRequest campos editables del perfil. Role presente = intento de cambio de rol (rechazado).
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
	Role   *string `json:"role,omitempty"`
}

// UserRow fila de la tabla de gestión de usuarios.
type UserRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamMemberRow fila del equipo comercial con sus métricas.
type TeamMemberRow struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	CustomerCount int             `json:"customers"`
	OrderCount    int             `json:"orders"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	Commissions   decimal.Decimal `json:"commissions"`
}
