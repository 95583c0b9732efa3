package entity

import "time"

// User es el dueño de todas las entidades del inventario. La propiedad
// (UserID) es la única frontera de aislamiento: ninguna entidad es visible
// ni mutable entre usuarios.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
