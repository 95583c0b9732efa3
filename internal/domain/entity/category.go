package entity

// ProductCategory representa una categoría de productos. Name es único por usuario.
type ProductCategory struct {
	ID          string
	UserID      string
	Name        string
	Description string
}
