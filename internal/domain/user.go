package domain

import "time"

// Role clasifica el tipo de cuenta de un usuario.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
)

// Valid indica si el valor corresponde a un rol conocido.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleApplicant, RoleEmployer:
		return true
	}
	return false
}

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	UserName     string     `json:"userName"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	DeletedAt    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PublicUser es la proyección de un usuario segura para devolver al cliente.
type PublicUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Role     Role   `json:"role"`
}

// Public devuelve la proyección sin hash de contraseña ni marcadores internos.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		UserName: u.UserName,
		Role:     u.Role,
	}
}
