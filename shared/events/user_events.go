package events

import (
	"github.com/google/uuid"
)

// Estos son contratos de integración, NO entidades del dominio
// Se definen planos para intercambio entre contextos.
type UserRegistered struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

type UserVerified struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}
