// Package apptest provee dobles en memoria de los puertos de persistencia
// para las pruebas de los casos de uso. El TxRunner imita el rollback real:
// toma una foto del estado antes del callback y la restaura si este falla.
package apptest

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// Store estado compartido de todos los repos falsos.
type Store struct {
	Products   map[string]*entity.Product
	Movements  []*entity.StockMovement
	Sales      []*entity.ProductSale
	Orders     map[string]*entity.PurchaseOrder
	Suppliers  map[string]*entity.Supplier
	Categories map[string]*entity.ProductCategory
	Users      map[string]*entity.User
}

// NewStore construye un estado vacío.
func NewStore() *Store {
	return &Store{
		Products:   map[string]*entity.Product{},
		Orders:     map[string]*entity.PurchaseOrder{},
		Suppliers:  map[string]*entity.Supplier{},
		Categories: map[string]*entity.ProductCategory{},
		Users:      map[string]*entity.User{},
	}
}

func (s *Store) clone() *Store {
	c := NewStore()
	for k, v := range s.Products {
		cp := *v
		c.Products[k] = &cp
	}
	for k, v := range s.Orders {
		cp := *v
		c.Orders[k] = &cp
	}
	for k, v := range s.Suppliers {
		cp := *v
		c.Suppliers[k] = &cp
	}
	for k, v := range s.Categories {
		cp := *v
		c.Categories[k] = &cp
	}
	for k, v := range s.Users {
		cp := *v
		c.Users[k] = &cp
	}
	for _, m := range s.Movements {
		cp := *m
		c.Movements = append(c.Movements, &cp)
	}
	for _, v := range s.Sales {
		cp := *v
		c.Sales = append(c.Sales, &cp)
	}
	return c
}

func (s *Store) restore(from *Store) {
	s.Products = from.Products
	s.Orders = from.Orders
	s.Suppliers = from.Suppliers
	s.Categories = from.Categories
	s.Users = from.Users
	s.Movements = from.Movements
	s.Sales = from.Sales
}

// TxRunner corre el callback contra el Store y revierte sus efectos si
// retorna error, como haría una transacción real.
type TxRunner struct {
	S *Store
}

// Run implementa ledger.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.ProductSaleRepository,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	snapshot := r.S.clone()
	err := fn(
		&MovementRepo{S: r.S},
		&ProductRepo{S: r.S},
		&SaleRepo{S: r.S},
		&OrderRepo{S: r.S},
		&SupplierRepo{S: r.S},
	)
	if err != nil {
		r.S.restore(snapshot)
	}
	return err
}

// ProductRepo repo de productos en memoria.
type ProductRepo struct{ S *Store }

func (r *ProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.S.Products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByOwner(id, userID string) (*entity.Product, error) {
	p, ok := r.S.Products[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) GetByOwnerForUpdate(id, userID string) (*entity.Product, error) {
	return r.GetByOwner(id, userID)
}

func (r *ProductRepo) GetBySKU(userID, sku string) (*entity.Product, error) {
	for _, p := range r.S.Products {
		if p.UserID == userID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) ListByOwner(userID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.S.Products {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.S.Products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) UpdateQuantity(productID string, quantity int64, at time.Time) error {
	if p, ok := r.S.Products[productID]; ok {
		p.Quantity = quantity
		p.LastUpdated = at
	}
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	delete(r.S.Products, id)
	return nil
}

func (r *ProductRepo) CountByCategory(categoryID string) (int64, error) {
	var n int64
	for _, p := range r.S.Products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepo) CountBySupplier(supplierID string) (int64, error) {
	var n int64
	for _, p := range r.S.Products {
		if p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepo) LowStockCount(userID string) (int64, error) {
	var n int64
	for _, p := range r.S.Products {
		if p.UserID == userID && p.Quantity > 0 && p.Quantity <= p.LowStockThreshold {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepo) OutOfStockCount(userID string) (int64, error) {
	var n int64
	for _, p := range r.S.Products {
		if p.UserID == userID && p.Quantity == 0 {
			n++
		}
	}
	return n, nil
}

// MovementRepo libro de movimientos en memoria (append-only).
type MovementRepo struct{ S *Store }

func (r *MovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.S.Movements = append(r.S.Movements, &cp)
	return nil
}

func (r *MovementRepo) ListByProduct(productID, userID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.S.Movements {
		if m.ProductID == productID && m.UserID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MovementRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	for _, m := range r.S.Movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// SaleRepo ventas en memoria (inmutables).
type SaleRepo struct{ S *Store }

func (r *SaleRepo) Create(s *entity.ProductSale) error {
	cp := *s
	r.S.Sales = append(r.S.Sales, &cp)
	return nil
}

func (r *SaleRepo) ListByOwner(userID string, limit, offset int) ([]*entity.ProductSale, error) {
	var out []*entity.ProductSale
	for _, s := range r.S.Sales {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SaleRepo) ListByProduct(productID, userID string) ([]*entity.ProductSale, error) {
	var out []*entity.ProductSale
	for _, s := range r.S.Sales {
		if s.ProductID == productID && s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SaleRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	for _, s := range r.S.Sales {
		if s.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// OrderRepo órdenes de compra en memoria.
type OrderRepo struct{ S *Store }

func (r *OrderRepo) Create(o *entity.PurchaseOrder) error {
	cp := *o
	r.S.Orders[o.ID] = &cp
	return nil
}

func (r *OrderRepo) GetByOwner(id, userID string) (*entity.PurchaseOrder, error) {
	o, ok := r.S.Orders[id]
	if !ok || o.UserID != userID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *OrderRepo) GetByOwnerForUpdate(id, userID string) (*entity.PurchaseOrder, error) {
	return r.GetByOwner(id, userID)
}

func (r *OrderRepo) ListByOwner(userID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.S.Orders {
		if o.UserID == userID && (status == "" || o.Status == status) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *OrderRepo) ListByGroupForUpdate(groupID, userID string) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.S.Orders {
		if o.GroupID == groupID && o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *OrderRepo) Update(o *entity.PurchaseOrder) error {
	cp := *o
	r.S.Orders[o.ID] = &cp
	return nil
}

func (r *OrderRepo) Delete(id string) error {
	delete(r.S.Orders, id)
	return nil
}

func (r *OrderRepo) PendingSummary(userID string) (int64, decimal.Decimal, error) {
	var count int64
	total := decimal.Zero
	for _, o := range r.S.Orders {
		if o.UserID != userID || o.Status != entity.OrderStatusPending {
			continue
		}
		count++
		if p, ok := r.S.Products[o.ProductID]; ok {
			total = total.Add(p.Price.Mul(decimal.NewFromInt(o.QuantityOrdered)))
		}
	}
	return count, total, nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ S *Store }

func (r *SupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.S.Suppliers[s.ID] = &cp
	return nil
}

func (r *SupplierRepo) GetByOwner(id, userID string) (*entity.Supplier, error) {
	s, ok := r.S.Suppliers[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *SupplierRepo) GetByName(userID, name string) (*entity.Supplier, error) {
	for _, s := range r.S.Suppliers {
		if s.UserID == userID && s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *SupplierRepo) ListByOwner(userID string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.S.Suppliers {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.S.Suppliers[s.ID] = &cp
	return nil
}

func (r *SupplierRepo) Delete(id string) error {
	delete(r.S.Suppliers, id)
	return nil
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ S *Store }

func (r *CategoryRepo) Create(c *entity.ProductCategory) error {
	cp := *c
	r.S.Categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) GetByOwner(id, userID string) (*entity.ProductCategory, error) {
	c, ok := r.S.Categories[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) GetByName(userID, name string) (*entity.ProductCategory, error) {
	for _, c := range r.S.Categories {
		if c.UserID == userID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) ListByOwner(userID string) ([]*entity.ProductCategory, error) {
	var out []*entity.ProductCategory
	for _, c := range r.S.Categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *CategoryRepo) Update(c *entity.ProductCategory) error {
	cp := *c
	r.S.Categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) Delete(id string) error {
	delete(r.S.Categories, id)
	return nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ S *Store }

func (r *UserRepo) Create(u *entity.User) error {
	cp := *u
	r.S.Users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.S.Users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.S.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
