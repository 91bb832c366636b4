package entity

import "time"

// Role es el rol de un usuario dentro del portal. Enumeración cerrada.
type Role string

// Roles válidos para User.
const (
	RoleCustomer    Role = "customer"
	RoleSalesperson Role = "salesperson"
	RoleAdmin       Role = "admin"
)

// Roles devuelve los roles válidos en orden estable.
func Roles() []Role {
	return []Role{RoleCustomer, RoleSalesperson, RoleAdmin}
}

// Valid informa si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSalesperson, RoleAdmin:
		return true
	}
	return false
}

// ParseRole convierte un string en Role; ok=false si no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// User representa un usuario del portal. Tiene exactamente un rol.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Avatar       string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session es la instantánea de identidad que se persiste al iniciar sesión.
// El rol del usuario queda fijado durante toda la vida de la sesión.
type Session struct {
	ID        string      `json:"id"`
	User      SessionUser `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// SessionUser es la parte pública del usuario que viaja dentro de la sesión (sin hash).
type SessionUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot construye la vista de sesión del usuario.
func (u *User) Snapshot() SessionUser {
	return SessionUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// Expired informa si la sesión venció en el instante now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
