package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"nombreUsuario" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"rolId" db:"role_id"`
	Active       bool      `json:"activo" db:"active"`
	CreatedAt    time.Time `json:"fechaCreacion" db:"created_at"`
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"nombreUsuario" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after a successful login or registration
type AuthResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"nombreUsuario"`
	Token    string `json:"token"`
	Role     string `json:"rol"`
}
