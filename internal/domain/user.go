package domain

import "time"

// User representa la cuenta de la app de cuidado materno-infantil.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ProfileSnapshot es la proyección de solo lectura que el asistente
// usa para personalizar el prompt. No se muta desde el pipeline.
type ProfileSnapshot struct {
	Name     string     `json:"name,omitempty"`
	Birthday *time.Time `json:"birthday,omitempty"`
}
