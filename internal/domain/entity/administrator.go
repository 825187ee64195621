package entity

import "time"

// Administrator es el operador del back-office; actor de movimientos y resoluciones.
type Administrator struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Email        string
	Role         string
	Permissions  string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
