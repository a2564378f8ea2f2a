package models

import "time"

// User defines the user model based on the 'usuarios' table
type User struct {
	ID          int64      `json:"id" db:"id"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"`
	Nombre      string     `json:"nombre" db:"nombre"`
	Apellido    string     `json:"apellido" db:"apellido"`
	Rol         RolUsuario `json:"rol" db:"rol"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
