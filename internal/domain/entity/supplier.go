package entity

// Supplier representa un proveedor. Name es único por usuario.
type Supplier struct {
	ID      string
	UserID  string
	Name    string
	Email   string
	Phone   string
	Address string
}
